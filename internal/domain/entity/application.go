package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is a recruitment/volunteer form submission.
type Application struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name       string              `json:"name" bson:"name"`
	Email      string              `json:"email" bson:"email"`
	Phone      string              `json:"phone" bson:"phone"`
	Position   string              `json:"position" bson:"position"`
	Bureau     string              `json:"bureau,omitempty" bson:"bureau,omitempty"`
	Message    string              `json:"message,omitempty" bson:"message,omitempty"`
	ResumeURL  string              `json:"resume_url,omitempty" bson:"resumeUrl,omitempty"`
	ResumeFile string              `json:"resume_file,omitempty" bson:"resumeFile,omitempty"`
	Status     ApplicationStatus   `json:"status" bson:"status"`
	Notes      string              `json:"notes,omitempty" bson:"notes,omitempty"`
	ReviewedBy *primitive.ObjectID `json:"reviewed_by,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt *time.Time          `json:"reviewed_at,omitempty" bson:"reviewedAt,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updatedAt"`
}

package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramKind selects one of the three program collections. Projects,
// activities and initiatives share one document shape.
type ProgramKind string

const (
	ProgramKindProject    ProgramKind = "project"
	ProgramKindActivity   ProgramKind = "activity"
	ProgramKindInitiative ProgramKind = "initiative"
)

func (k ProgramKind) Valid() bool {
	return k == ProgramKindProject || k == ProgramKindActivity || k == ProgramKindInitiative
}

// Plural is used for collection names, storage modules and routes.
func (k ProgramKind) Plural() string {
	switch k {
	case ProgramKindActivity:
		return "activities"
	case ProgramKindInitiative:
		return "initiatives"
	}
	return "projects"
}

func (k ProgramKind) Label() string {
	switch k {
	case ProgramKindActivity:
		return "Activity"
	case ProgramKindInitiative:
		return "Initiative"
	}
	return "Project"
}

type ProgramStatus string

const (
	ProgramStatusPlanning  ProgramStatus = "planning"
	ProgramStatusOngoing   ProgramStatus = "ongoing"
	ProgramStatusCompleted ProgramStatus = "completed"
	ProgramStatusArchived  ProgramStatus = "archived"
)

func (s ProgramStatus) Valid() bool {
	switch s {
	case ProgramStatusPlanning, ProgramStatusOngoing, ProgramStatusCompleted, ProgramStatusArchived:
		return true
	}
	return false
}

type Program struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind        ProgramKind        `json:"kind" bson:"kind"`
	Title       Bilingual          `json:"title" bson:"title"`
	Description Bilingual          `json:"description" bson:"description"`
	Location    Bilingual          `json:"location" bson:"location"`
	Bureau      string             `json:"bureau" bson:"bureau"`
	Status      ProgramStatus      `json:"status" bson:"status"`
	StartDate   *time.Time         `json:"start_date,omitempty" bson:"startDate,omitempty"`
	EndDate     *time.Time         `json:"end_date,omitempty" bson:"endDate,omitempty"`
	Tags        []string           `json:"tags" bson:"tags"`
	Featured    bool               `json:"featured" bson:"featured"`
	Published   bool               `json:"published" bson:"published"`
	CreatedBy   primitive.ObjectID `json:"created_by" bson:"createdBy"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updatedAt"`
}

func (p *Program) Localize(lang Language) interface{} {
	return struct {
		*Program
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Location    string   `json:"location"`
		Lang        Language `json:"lang"`
	}{p, p.Title.Resolve(lang), p.Description.Resolve(lang), p.Location.Resolve(lang), lang}
}

// ProgramImage lives in the <kind>_images side collection. At most one image
// per parent is primary.
type ProgramImage struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ParentID      primitive.ObjectID `json:"parent_id" bson:"parentId"`
	Kind          ProgramKind        `json:"kind" bson:"kind"`
	URL           string             `json:"url" bson:"url"`
	ThumbnailURL  string             `json:"thumbnail_url,omitempty" bson:"thumbnailUrl,omitempty"`
	FileName      string             `json:"file_name" bson:"fileName"`
	ThumbnailName string             `json:"-" bson:"thumbnailName,omitempty"`
	Caption       Bilingual          `json:"caption" bson:"caption"`
	IsPrimary     bool               `json:"is_primary" bson:"isPrimary"`
	Order         int                `json:"order" bson:"order"`
	CreatedAt     time.Time          `json:"created_at" bson:"createdAt"`
}

func (i *ProgramImage) Localize(lang Language) interface{} {
	return struct {
		*ProgramImage
		Caption string   `json:"caption"`
		Lang    Language `json:"lang"`
	}{i, i.Caption.Resolve(lang), lang}
}

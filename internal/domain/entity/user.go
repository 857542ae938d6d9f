package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleUser
}

// Capability names one thing a role may do. Every authorization decision
// goes through Role.Can.
type Capability string

const (
	CapPlaceOrders    Capability = "place_orders"
	CapManageCatalog  Capability = "manage_catalog"
	CapManageContent  Capability = "manage_content"
	CapManageOrders   Capability = "manage_orders"
	CapVerifyPayments Capability = "verify_payments"
	CapManageFiles    Capability = "manage_files"
	CapManageSettings Capability = "manage_settings"
	CapReviewForms    Capability = "review_applications"
	CapViewDashboard  Capability = "view_dashboard"
)

var roleCapabilities = map[Role][]Capability{
	RoleEditor: {CapPlaceOrders, CapManageCatalog, CapManageContent, CapViewDashboard},
	RoleUser:   {CapPlaceOrders},
}

func (r Role) Can(c Capability) bool {
	if r == RoleAdmin {
		return true
	}
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Name         string             `json:"name" bson:"name"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Role         Role               `json:"role" bson:"role"`
	Active       bool               `json:"active" bson:"active"`
	LastLoginAt  *time.Time         `json:"last_login_at,omitempty" bson:"lastLoginAt,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"`
}

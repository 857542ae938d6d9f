package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActivityOrderCreated      = "order.created"
	ActivityPaymentVerified   = "order.payment_verified"
	ActivityPaymentRejected   = "order.payment_rejected"
	ActivityOrderUpdated      = "order.updated"
	ActivityOrderDeleted      = "order.deleted"
	ActivityContentChanged    = "content.changed"
	ActivityCatalogChanged    = "catalog.changed"
	ActivityProgramChanged    = "program.changed"
	ActivityApplicationFiled  = "application.received"
	ActivitySettingsUpdated   = "settings.updated"
	ActivityFilesDeleted      = "files.deleted"
	ActivityApplicationReview = "application.reviewed"
)

// ActivityLog backs the admin dashboard feed.
type ActivityLog struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Action     string             `json:"action" bson:"action"`
	EntityType string             `json:"entity_type" bson:"entityType"`
	EntityID   string             `json:"entity_id,omitempty" bson:"entityId,omitempty"`
	ActorID    string             `json:"actor_id,omitempty" bson:"actorId,omitempty"`
	Message    string             `json:"message" bson:"message"`
	CreatedAt  time.Time          `json:"created_at" bson:"createdAt"`
}

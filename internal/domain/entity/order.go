package entity

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

type ShippingStatus string

const (
	ShippingStatusPending    ShippingStatus = "pending"
	ShippingStatusProcessing ShippingStatus = "processing"
	ShippingStatusShipped    ShippingStatus = "shipped"
	ShippingStatusDelivered  ShippingStatus = "delivered"
)

var shippingRank = map[ShippingStatus]int{
	ShippingStatusPending:    0,
	ShippingStatusProcessing: 1,
	ShippingStatusShipped:    2,
	ShippingStatusDelivered:  3,
}

func (s ShippingStatus) Valid() bool {
	_, ok := shippingRank[s]
	return ok
}

type ProductType string

const (
	ProductTypeBook   ProductType = "book"
	ProductTypeEbook  ProductType = "ebook"
	ProductTypePoster ProductType = "poster"
)

func (t ProductType) Valid() bool {
	return t == ProductTypeBook || t == ProductTypeEbook || t == ProductTypePoster
}

// Physical products need shipping.
func (t ProductType) Physical() bool {
	return t == ProductTypeBook || t == ProductTypePoster
}

type Customer struct {
	UserID primitive.ObjectID `json:"user_id" bson:"userId"`
	Name   string             `json:"name" bson:"name"`
	Email  string             `json:"email" bson:"email"`
	Phone  string             `json:"phone,omitempty" bson:"phone,omitempty"`
}

type OrderItem struct {
	ProductID   primitive.ObjectID `json:"product_id" bson:"productId"`
	ProductType ProductType        `json:"product_type" bson:"productType"`
	Title       string             `json:"title" bson:"title"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	UnitPrice   float64            `json:"unit_price" bson:"unitPrice"`
	Subtotal    float64            `json:"subtotal" bson:"subtotal"`
}

type Payment struct {
	Method          string              `json:"method" bson:"method"`
	ProofFile       string              `json:"proof_file" bson:"proofFile"`
	TransactionRef  string              `json:"transaction_ref,omitempty" bson:"transactionRef,omitempty"`
	Amount          float64             `json:"amount" bson:"amount"`
	Status          PaymentStatus       `json:"status" bson:"status"`
	VerifiedBy      *primitive.ObjectID `json:"verified_by,omitempty" bson:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time          `json:"verified_at,omitempty" bson:"verifiedAt,omitempty"`
	RejectionReason string              `json:"rejection_reason,omitempty" bson:"rejectionReason,omitempty"`
}

type Address struct {
	Line1      string `json:"line1" bson:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city" bson:"city" validate:"required"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postal_code" bson:"postalCode" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
}

type Shipping struct {
	Enabled        bool           `json:"enabled" bson:"enabled"`
	Address        Address        `json:"address" bson:"address"`
	Cost           float64        `json:"cost" bson:"cost"`
	Status         ShippingStatus `json:"status" bson:"status"`
	TrackingNumber string         `json:"tracking_number,omitempty" bson:"trackingNumber,omitempty"`
	ShippedAt      *time.Time     `json:"shipped_at,omitempty" bson:"shippedAt,omitempty"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty" bson:"deliveredAt,omitempty"`
}

type Totals struct {
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
	ShippingCost float64 `json:"shipping_cost" bson:"shippingCost"`
	Tax          float64 `json:"tax" bson:"tax"`
	Total        float64 `json:"total" bson:"total"`
}

type Order struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber          string             `json:"order_number" bson:"orderNumber"`
	Customer             Customer           `json:"customer" bson:"customer"`
	Items                []OrderItem        `json:"items" bson:"items"`
	Payment              Payment            `json:"payment" bson:"payment"`
	Shipping             Shipping           `json:"shipping" bson:"shipping"`
	Totals               Totals             `json:"totals" bson:"totals"`
	Status               OrderStatus        `json:"status" bson:"status"`
	Notes                string             `json:"notes,omitempty" bson:"notes,omitempty"`
	AdminNotes           string             `json:"admin_notes,omitempty" bson:"adminNotes,omitempty"`
	VerificationDeadline time.Time          `json:"verification_deadline" bson:"verificationDeadline"`
	CreatedAt            time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updatedAt"`

	// Version increments on every write and guards read-modify-write updates.
	Version int64 `json:"-" bson:"version"`
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// RecalculateTotals recomputes line subtotals and the totals block so that
// total == Σ subtotal + shipping (when enabled) + tax.
func (o *Order) RecalculateTotals() {
	var subtotal float64
	for i := range o.Items {
		o.Items[i].Subtotal = roundMoney(float64(o.Items[i].Quantity) * o.Items[i].UnitPrice)
		subtotal += o.Items[i].Subtotal
	}

	o.Totals.Subtotal = roundMoney(subtotal)
	o.Totals.ShippingCost = 0
	if o.Shipping.Enabled {
		o.Totals.ShippingCost = roundMoney(o.Shipping.Cost)
	}
	o.Totals.Tax = roundMoney(o.Totals.Tax)
	o.Totals.Total = roundMoney(o.Totals.Subtotal + o.Totals.ShippingCost + o.Totals.Tax)
}

// DeletableOrderStatuses are the statuses an order may be removed in.
var DeletableOrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusCancelled}

// CanDelete reports whether the order may be removed.
func (o *Order) CanDelete() bool {
	for _, s := range DeletableOrderStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

func (o *Order) IsOwnedBy(userID primitive.ObjectID) bool {
	return !userID.IsZero() && o.Customer.UserID == userID
}

// ApplyShippingStatus advances the shipping status. Moving backwards is an
// error; repeating the current status keeps the recorded timestamps.
func (o *Order) ApplyShippingStatus(status ShippingStatus, trackingNumber string, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("invalid shipping status %q", status)
	}
	current := o.Shipping.Status
	if current == "" {
		current = ShippingStatusPending
	}
	if shippingRank[status] < shippingRank[current] {
		return fmt.Errorf("shipping status cannot move from %s to %s", current, status)
	}

	o.Shipping.Status = status
	if trackingNumber != "" {
		o.Shipping.TrackingNumber = trackingNumber
	}

	if shippingRank[status] >= shippingRank[ShippingStatusShipped] && o.Shipping.ShippedAt == nil {
		t := now
		o.Shipping.ShippedAt = &t
	}
	if status == ShippingStatusDelivered && o.Shipping.DeliveredAt == nil {
		t := now
		o.Shipping.DeliveredAt = &t
	}

	switch status {
	case ShippingStatusProcessing:
		o.Status = OrderStatusProcessing
	case ShippingStatusShipped:
		o.Status = OrderStatusShipped
	case ShippingStatusDelivered:
		o.Status = OrderStatusDelivered
	}

	return nil
}

// FormatOrderNumber builds "TLS" + the last 8 digits of the unix time +
// a 4-digit sequence.
func FormatOrderNumber(t time.Time, seq int64) string {
	stamp := fmt.Sprintf("%d", t.Unix())
	if len(stamp) > 8 {
		stamp = stamp[len(stamp)-8:]
	}
	return fmt.Sprintf("TLS%s%04d", stamp, seq%10000)
}

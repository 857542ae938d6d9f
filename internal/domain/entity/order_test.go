package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecalculateTotals(t *testing.T) {
	o := &Order{
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: 120.25},
			{Quantity: 1, UnitPrice: 59.5},
		},
		Shipping: Shipping{Enabled: true, Cost: 40},
		Totals:   Totals{Tax: 15},
	}

	o.RecalculateTotals()

	assert.Equal(t, 240.5, o.Items[0].Subtotal)
	assert.Equal(t, 300.0, o.Totals.Subtotal)
	assert.Equal(t, 40.0, o.Totals.ShippingCost)
	assert.Equal(t, 355.0, o.Totals.Total)

	o.Shipping.Enabled = false
	o.RecalculateTotals()
	assert.Zero(t, o.Totals.ShippingCost)
	assert.Equal(t, 315.0, o.Totals.Total)
}

func TestCanDelete(t *testing.T) {
	for status, want := range map[OrderStatus]bool{
		OrderStatusPending:    true,
		OrderStatusCancelled:  true,
		OrderStatusConfirmed:  false,
		OrderStatusProcessing: false,
		OrderStatusShipped:    false,
		OrderStatusDelivered:  false,
	} {
		o := &Order{Status: status}
		assert.Equal(t, want, o.CanDelete(), string(status))
	}
}

func TestApplyShippingStatus(t *testing.T) {
	first := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)
	o := &Order{Status: OrderStatusConfirmed}

	require.NoError(t, o.ApplyShippingStatus(ShippingStatusShipped, "TRK1", first))
	assert.Equal(t, OrderStatusShipped, o.Status)
	assert.Equal(t, "TRK1", o.Shipping.TrackingNumber)
	require.NotNil(t, o.Shipping.ShippedAt)
	assert.Equal(t, first, *o.Shipping.ShippedAt)

	require.NoError(t, o.ApplyShippingStatus(ShippingStatusShipped, "", later))
	assert.Equal(t, first, *o.Shipping.ShippedAt)
	assert.Equal(t, "TRK1", o.Shipping.TrackingNumber)

	require.NoError(t, o.ApplyShippingStatus(ShippingStatusDelivered, "", later))
	assert.Equal(t, OrderStatusDelivered, o.Status)
	require.NotNil(t, o.Shipping.DeliveredAt)
	assert.Equal(t, later, *o.Shipping.DeliveredAt)

	assert.Error(t, o.ApplyShippingStatus(ShippingStatusProcessing, "", later))
	assert.Error(t, o.ApplyShippingStatus("lost", "", later))
}

func TestApplyShippingStatus_SkippingToDeliveredSetsBothTimestamps(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	o := &Order{}

	require.NoError(t, o.ApplyShippingStatus(ShippingStatusDelivered, "", now))
	require.NotNil(t, o.Shipping.ShippedAt)
	require.NotNil(t, o.Shipping.DeliveredAt)
}

func TestFormatOrderNumber(t *testing.T) {
	ts := time.Unix(1712345678, 0)

	assert.Equal(t, "TLS123456780042", FormatOrderNumber(ts, 42))
	assert.Equal(t, "TLS123456780001", FormatOrderNumber(ts, 10001))
}

func TestIsOwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	o := &Order{Customer: Customer{UserID: owner}}

	assert.True(t, o.IsOwnedBy(owner))
	assert.False(t, o.IsOwnedBy(primitive.NewObjectID()))
	assert.False(t, o.IsOwnedBy(primitive.NilObjectID))
}

package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID   primitive.ObjectID `json:"product_id" bson:"productId"`
	ProductType ProductType        `json:"product_type" bson:"productType"`
	Title       string             `json:"title" bson:"title"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	UnitPrice   float64            `json:"unit_price" bson:"unitPrice"`
	Subtotal    float64            `json:"subtotal" bson:"subtotal"`
}

// Cart is one document per user.
type Cart struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"userId"`
	Items     []CartItem         `json:"items" bson:"items"`
	Subtotal  float64            `json:"subtotal" bson:"subtotal"`
	ItemCount int                `json:"item_count" bson:"itemCount"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"`
}

func (c *Cart) Recalculate() {
	var subtotal float64
	count := 0
	for i := range c.Items {
		c.Items[i].Subtotal = roundMoney(float64(c.Items[i].Quantity) * c.Items[i].UnitPrice)
		subtotal += c.Items[i].Subtotal
		count += c.Items[i].Quantity
	}
	c.Subtotal = roundMoney(subtotal)
	c.ItemCount = count
}

// SetQuantity replaces the quantity of a line, adding it when missing.
// A quantity of zero or less removes the line.
func (c *Cart) SetQuantity(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			if item.Quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i] = item
			}
			c.Recalculate()
			return
		}
	}
	if item.Quantity > 0 {
		c.Items = append(c.Items, item)
	}
	c.Recalculate()
}

func (c *Cart) Find(productID primitive.ObjectID) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

package model

import "time"

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "COD"
	PaymentStripe   PaymentMethod = "Stripe"
	PaymentRazorpay PaymentMethod = "Razorpay"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Order Placed"
	StatusPacking        OrderStatus = "Packing"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for delivery"
	StatusDelivered      OrderStatus = "Delivered"
)

var statusRank = map[OrderStatus]int{
	StatusPlaced:         0,
	StatusPacking:        1,
	StatusShipped:        2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether an order may move from s to next.
// Fulfillment only moves forward; re-applying the current status is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

type OrderItem struct {
	ItemID   string  `bson:"itemId" json:"_id"`
	Name     string  `bson:"name" json:"name"`
	Size     string  `bson:"size" json:"size"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"` // unit price when the order was placed
}

type Address struct {
	FirstName string `bson:"firstName" json:"firstName" validate:"required"`
	LastName  string `bson:"lastName" json:"lastName" validate:"required"`
	Email     string `bson:"email" json:"email" validate:"required,email"`
	Street    string `bson:"street" json:"street" validate:"required"`
	City      string `bson:"city" json:"city" validate:"required"`
	State     string `bson:"state" json:"state" validate:"required"`
	Zipcode   string `bson:"zipcode" json:"zipcode" validate:"required"`
	Country   string `bson:"country" json:"country" validate:"required"`
	Phone     string `bson:"phone" json:"phone" validate:"required"`
}

type Order struct {
	ID                string        `gorm:"primaryKey;size:64;not null" bson:"_id" json:"_id"`
	UserID            string        `gorm:"size:64;index;not null" bson:"userId" json:"userId"`
	Items             []OrderItem   `gorm:"serializer:json" bson:"items" json:"items"`
	Amount            float64       `gorm:"not null" bson:"amount" json:"amount"`
	Address           Address       `gorm:"serializer:json" bson:"address" json:"address"`
	Status            OrderStatus   `gorm:"size:32;not null" bson:"status" json:"status"`
	PaymentMethod     PaymentMethod `gorm:"size:16;not null" bson:"paymentMethod" json:"paymentMethod"`
	Payment           bool          `gorm:"not null;default:false" bson:"payment" json:"payment"`
	ProviderOrderID   *string       `gorm:"size:128;uniqueIndex" bson:"providerOrderId,omitempty" json:"providerOrderId,omitempty"`
	ProviderPaymentID string        `gorm:"size:128" bson:"providerPaymentId,omitempty" json:"providerPaymentId,omitempty"`
	Date              time.Time     `gorm:"index;not null" bson:"date" json:"date"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem references a purchased product.
type OrderItem struct {
	Product primitive.ObjectID `bson:"product"        json:"product"`
	Name    string             `bson:"name"           json:"name"`
	Price   float64            `bson:"price"          json:"price"`
	Qty     int                `bson:"qty,omitempty"  json:"qty,omitempty"`
}

// PaymentResult records the gateway's answer when an order is marked paid.
type PaymentResult struct {
	ID           string `bson:"id,omitempty"            json:"id,omitempty"`
	Status       string `bson:"status,omitempty"        json:"status,omitempty"`
	UpdateTime   string `bson:"update_time,omitempty"   json:"update_time,omitempty"`
	EmailAddress string `bson:"email_address,omitempty" json:"email_address,omitempty"`
}

// SubscriptionDetails carries the delivered account credentials for a
// subscription product.
type SubscriptionDetails struct {
	AccountEmail    string `bson:"accountEmail,omitempty"    json:"accountEmail,omitempty"`
	AccountPassword string `bson:"accountPassword,omitempty" json:"accountPassword,omitempty"`
	ActivationCode  string `bson:"activationCode,omitempty"  json:"activationCode,omitempty"`
	ExpiryDate      string `bson:"expiryDate,omitempty"      json:"expiryDate,omitempty"`
}

// Order is a purchase, from checkout through payment and delivery.
type Order struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty"                 json:"_id"`
	User                primitive.ObjectID   `bson:"user"                          json:"user"`
	OrderItems          []OrderItem          `bson:"orderItems"                    json:"orderItems"`
	PaymentMethod       string               `bson:"paymentMethod,omitempty"       json:"paymentMethod,omitempty"`
	TotalPrice          float64              `bson:"totalPrice"                    json:"totalPrice"`
	CustomerEmail       string               `bson:"customerEmail,omitempty"       json:"customerEmail,omitempty"`
	GatewayOrderID      string               `bson:"orderId,omitempty"             json:"orderId,omitempty"`
	GatewayPaymentID    string               `bson:"paymentId,omitempty"           json:"paymentId,omitempty"`
	Status              string               `bson:"status,omitempty"              json:"status,omitempty"`
	IsPaid              bool                 `bson:"isPaid"                        json:"isPaid"`
	PaidAt              *time.Time           `bson:"paidAt,omitempty"              json:"paidAt,omitempty"`
	PaymentResult       *PaymentResult       `bson:"paymentResult,omitempty"       json:"paymentResult,omitempty"`
	IsDelivered         bool                 `bson:"isDelivered"                   json:"isDelivered"`
	DeliveredAt         *time.Time           `bson:"deliveredAt,omitempty"         json:"deliveredAt,omitempty"`
	SubscriptionDetails *SubscriptionDetails `bson:"subscriptionDetails,omitempty" json:"subscriptionDetails,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt"                     json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt"                     json:"updatedAt"`
}

package order

import (
	"errors"

	"github.com/subkart/core/internal/models"
)

type CreateDTO struct {
	OrderItems    []OrderItemDTO `json:"orderItems"    binding:"required,min=1,dive"`
	PaymentMethod string         `json:"paymentMethod"`
	TotalPrice    float64        `json:"totalPrice"    binding:"required,gt=0"`
	CustomerEmail string         `json:"customerEmail" binding:"omitempty,email"`
}

type OrderItemDTO struct {
	Product string  `json:"product" binding:"required"`
	Name    string  `json:"name"    binding:"required"`
	Price   float64 `json:"price"   binding:"required,gt=0"`
	Qty     int     `json:"qty"`
}

// PayDTO mirrors the gateway's capture payload forwarded by the client.
type PayDTO struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

type DeliverDTO struct {
	SubscriptionDetails *models.SubscriptionDetails `json:"subscriptionDetails"`
}

type SubscriptionDTO struct {
	AccountEmail    string `json:"accountEmail"`
	AccountPassword string `json:"accountPassword"`
	ActivationCode  string `json:"activationCode"`
	ExpiryDate      string `json:"expiryDate"`
}

var (
	errOrderNotFound = errors.New("order not found")
	errNotYourOrder  = errors.New("not authorized to view this order")
)

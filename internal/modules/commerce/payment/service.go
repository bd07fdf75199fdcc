// Package payment handles the Razorpay checkout leg: creating the gateway
// order and verifying the capture signature before an order is persisted as
// paid.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/subkart/core/internal/config"
	"github.com/subkart/core/internal/database"
	"github.com/subkart/core/internal/models"
)

var errBadSignature = errors.New("invalid payment signature")

type Service struct {
	gateway *razorpayClient
	secret  string
	db      *mongo.Database
}

func NewService(cfg config.RazorpayConfig, db *mongo.Database) *Service {
	return &Service{
		gateway: newRazorpayClient(cfg),
		secret:  cfg.KeySecret,
		db:      db,
	}
}

// CreateOrder registers the checkout amount with the gateway.
func (s *Service) CreateOrder(ctx context.Context, dto *CreateOrderDTO) (*gatewayOrder, error) {
	return s.gateway.CreateOrder(ctx, dto.Amount, dto.Currency)
}

// VerifySignature checks the gateway's capture proof: HMAC-SHA256 over
// "orderId|paymentId" keyed by the API secret, hex encoded. Constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Confirm validates the capture signature and, if genuine, persists the
// completed order for the paying user.
func (s *Service) Confirm(ctx context.Context, userID primitive.ObjectID, dto *VerifyDTO) (*models.Order, error) {
	if !VerifySignature(s.secret, dto.RazorpayOrderID, dto.RazorpayPaymentID, dto.RazorpaySignature) {
		return nil, errBadSignature
	}

	items := make([]models.OrderItem, 0, len(dto.OrderItems))
	for _, it := range dto.OrderItems {
		pid, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil {
			continue
		}
		items = append(items, models.OrderItem{
			Product: pid,
			Name:    it.Name,
			Price:   it.Price,
			Qty:     it.Qty,
		})
	}

	now := time.Now()
	o := models.Order{
		User:             userID,
		OrderItems:       items,
		PaymentMethod:    "razorpay",
		TotalPrice:       dto.TotalPrice,
		CustomerEmail:    dto.CustomerEmail,
		GatewayOrderID:   dto.RazorpayOrderID,
		GatewayPaymentID: dto.RazorpayPaymentID,
		Status:           "completed",
		IsPaid:           true,
		PaidAt:           &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	res, err := s.db.Collection(database.ColOrders).InsertOne(ctx, &o)
	if err != nil {
		return nil, err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return &o, nil
}

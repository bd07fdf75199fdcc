// Package order tracks purchases from checkout through payment capture and
// delivery of the subscription credentials.
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/subkart/core/internal/database"
	"github.com/subkart/core/internal/models"
)

type Service struct {
	db *mongo.Database
}

func NewService(db *mongo.Database) *Service { return &Service{db: db} }

func (s *Service) col() *mongo.Collection {
	return s.db.Collection(database.ColOrders)
}

func sortNewest() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// Create records a new unpaid order for the user.
func (s *Service) Create(ctx context.Context, userID primitive.ObjectID, dto *CreateDTO) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(dto.OrderItems))
	for _, it := range dto.OrderItems {
		pid, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil {
			return nil, errors.New("invalid product id: " + it.Product)
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
		User:          userID,
		OrderItems:    items,
		PaymentMethod: dto.PaymentMethod,
		TotalPrice:    dto.TotalPrice,
		CustomerEmail: strings.ToLower(strings.TrimSpace(dto.CustomerEmail)),
		Status:        "created",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	res, err := s.col().InsertOne(ctx, &o)
	if err != nil {
		return nil, err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return &o, nil
}

// Get returns an order. Non-admin callers may only read their own orders.
func (s *Service) Get(ctx context.Context, id string, userID primitive.ObjectID, isAdmin bool) (*models.Order, error) {
	o, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.User != userID {
		return nil, errNotYourOrder
	}
	return o, nil
}

func (s *Service) byID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errOrderNotFound
	}
	var o models.Order
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns every order, newest first.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

// ListByUser returns the caller's own orders.
func (s *Service) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user": userID})
}

// ListUndelivered returns paid orders still awaiting delivery.
func (s *Service) ListUndelivered(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{"isPaid": true, "isDelivered": false})
}

// ListByEmail returns orders captured under the given customer email.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"customerEmail": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cur, err := s.col().Find(ctx, filter, sortNewest())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPaid records a successful payment capture on the order.
func (s *Service) MarkPaid(ctx context.Context, id string, dto *PayDTO) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errOrderNotFound
	}
	now := time.Now()
	set := bson.M{
		"isPaid":    true,
		"paidAt":    now,
		"status":    "paid",
		"updatedAt": now,
		"paymentResult": models.PaymentResult{
			ID:           dto.ID,
			Status:       dto.Status,
			UpdateTime:   dto.UpdateTime,
			EmailAddress: dto.EmailAddress,
		},
	}
	return s.updateOne(ctx, oid, set)
}

// MarkDelivered flags the order delivered, optionally attaching the
// subscription credentials handed to the customer.
func (s *Service) MarkDelivered(ctx context.Context, id string, details *models.SubscriptionDetails) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errOrderNotFound
	}
	now := time.Now()
	set := bson.M{
		"isDelivered": true,
		"deliveredAt": now,
		"status":      "delivered",
		"updatedAt":   now,
	}
	if details != nil {
		set["subscriptionDetails"] = details
	}
	return s.updateOne(ctx, oid, set)
}

// UpdateSubscription replaces the stored subscription credentials.
func (s *Service) UpdateSubscription(ctx context.Context, id string, dto *SubscriptionDTO) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errOrderNotFound
	}
	set := bson.M{
		"updatedAt": time.Now(),
		"subscriptionDetails": models.SubscriptionDetails{
			AccountEmail:    dto.AccountEmail,
			AccountPassword: dto.AccountPassword,
			ActivationCode:  dto.ActivationCode,
			ExpiryDate:      dto.ExpiryDate,
		},
	}
	return s.updateOne(ctx, oid, set)
}

func (s *Service) updateOne(ctx context.Context, oid primitive.ObjectID, set bson.M) (*models.Order, error) {
	res := s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var o models.Order
	if err := res.Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errOrderNotFound
	}
	res, err := s.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errOrderNotFound
	}
	return nil
}

// Package product owns the catalog: public listing and the admin CRUD plus
// the activation toggles.
package product

import (
	"context"
	"errors"
	"regexp"
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
	return s.db.Collection(database.ColProducts)
}

// List returns the catalog, optionally filtered by a case-insensitive
// keyword match on the name.
func (s *Service) List(ctx context.Context, keyword string) ([]models.Product, error) {
	filter := bson.M{}
	if keyword != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}
	}
	cur, err := s.col().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errProductNotFound
	}
	var p models.Product
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a catalog item. New products default to active.
func (s *Service) Create(ctx context.Context, dto *CreateDTO) (*models.Product, error) {
	now := time.Now()
	p := models.Product{
		Name:        dto.Name,
		Image:       dto.Image,
		Description: dto.Description,
		Price:       dto.Price,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	res, err := s.col().InsertOne(ctx, &p)
	if err != nil {
		return nil, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return &p, nil
}

// Update applies the provided fields and returns the updated document.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateDTO) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errProductNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if dto.Name != "" {
		set["name"] = dto.Name
	}
	if dto.Image != "" {
		set["image"] = dto.Image
	}
	if dto.Description != "" {
		set["description"] = dto.Description
	}
	if dto.Price != nil {
		set["price"] = *dto.Price
	}
	if dto.IsActive != nil {
		set["isActive"] = *dto.IsActive
	}

	res := s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var p models.Product
	if err := res.Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SetActive flips the activation flag.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errProductNotFound
	}
	res := s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var p models.Product
	if err := res.Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errProductNotFound
	}
	res, err := s.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errProductNotFound
	}
	return nil
}

// Package user owns the credential store: registration, login, profile, and
// the admin user listing. Its service doubles as the user lookup for the
// token and OTP flows.
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/subkart/core/internal/database"
	"github.com/subkart/core/internal/models"
)

type Service struct {
	db *mongo.Database
}

func NewService(db *mongo.Database) *Service { return &Service{db: db} }

func (s *Service) col() *mongo.Collection {
	return s.db.Collection(database.ColUsers)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByID resolves a user by hex object id. Returns (nil, nil) when the id
// is unknown or not a valid object id.
func (s *Service) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, nil
	}
	var u models.User
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail resolves a user by email. Returns (nil, nil) when absent.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col().FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetPassword replaces the stored credential hash. Terminal action of the
// OTP reset flow.
func (s *Service) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":  hash,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errUserNotFound
	}
	return nil
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.User, error) {
	email := normalizeEmail(dto.Email)

	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := models.User{
		Name:      dto.Name,
		Email:     email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.col().InsertOne(ctx, &u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errEmailTaken
		}
		return nil, err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return &u, nil
}

// Login checks credentials and returns the user on success.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return u, nil
}

// UpdateProfile applies the provided (non-empty) fields to the user.
func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, dto *UpdateProfileDTO) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if dto.Name != "" {
		set["name"] = dto.Name
	}
	if dto.Email != "" {
		set["email"] = normalizeEmail(dto.Email)
	}
	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		set["password"] = string(hash)
	}

	res := s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		mongoFindOneAndUpdateReturnAfter(),
	)
	var u models.User
	if err := res.Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users, newest first. Admin only.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.col().Find(ctx, bson.M{}, mongoFindSortCreatedDesc())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user by id. Admin only.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errUserNotFound
	}
	return nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a shop customer or administrator. Password holds the bcrypt hash
// and never leaves the API.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"_id"`
	Name      string             `bson:"name"                json:"name"`
	Email     string             `bson:"email"               json:"email"`
	Password  string             `bson:"password"            json:"-"`
	IsAdmin   bool               `bson:"isAdmin"             json:"isAdmin"`
	CreatedAt time.Time          `bson:"createdAt"           json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"           json:"updatedAt"`
}

package otp

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/subkart/core/internal/models"
)

// Record is one password-reset request. It is JSON-encoded into the kv store
// under the request's opaque identifier.
//
// Lifecycle: Created -> Verified -> Consumed (deleted). Expiry can strike at
// any point before consumption.
type Record struct {
	Email     string    `json:"email"`
	Code      int       `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
	Verified  bool      `json:"verified"`
}

func (r *Record) expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Mailer delivers the reset code. Implemented by mail.Sender.
type Mailer interface {
	SendPasswordResetOTP(ctx context.Context, to string, code int) error
}

// UserStore is the slice of the credential store the reset flow needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

package db

import (
	"time"

	"github.com/google/uuid"
)

// User is the only persisted entity. A record is keyed by exactly one identity:
// a local credential (Email + PasswordHash), a GoogleID or a FacebookID.
// Empty strings mean "absent" and are stored as NULL / omitted so the unique
// indexes only apply to present values.
type User struct {
	ID           string    `json:"id" db:"id" bson:"_id"`
	Name         string    `json:"name" db:"name" bson:"name"`
	Email        string    `json:"email,omitempty" db:"email" bson:"email,omitempty"`
	PasswordHash string    `json:"-" db:"password_hash" bson:"password,omitempty"` // Never expose password in JSON
	GoogleID     string    `json:"google_id,omitempty" db:"google_id" bson:"googleId,omitempty"`
	FacebookID   string    `json:"facebook_id,omitempty" db:"facebook_id" bson:"facebookId,omitempty"`
	Provider     string    `json:"provider" db:"provider" bson:"provider"`
	Secret       *string   `json:"secret,omitempty" db:"secret" bson:"secret,omitempty"` // nil until a secret is submitted
	CreatedAt    time.Time `json:"created_at" db:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" bson:"updatedAt"`
}

// NewUser creates a new User with a generated UUID
func NewUser(name, provider string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Provider:  provider,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

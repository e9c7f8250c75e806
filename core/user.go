package core

import (
	"context"
	"time"
)

// User user model
type User struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	UserID    string    `sql:"size:36;unique_index:user_idx" json:"user_id,omitempty"`
	Role      string    `sql:"size:24" json:"role,omitempty"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// IUserStore user store interface
//
// Find returns an empty record with ID == 0 when the user is unknown.
type IUserStore interface {
	Create(ctx context.Context, user *User) error
	Find(ctx context.Context, userID string) (*User, error)
	All(ctx context.Context) ([]*User, error)
}

package stores

import (
	"errors"
	"time"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrEmailTaken    = errors.New("email already in use")
)

// Store is a vendor account. It authenticates separately from its owning
// buyer account and owns products.
type Store struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Logo         string    `json:"logo,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

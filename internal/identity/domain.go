// internal/identity/domain.go
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is a registered caller. ID is the opaque token the core services
// compare; they never see the credential material.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential holds the caller's login material.
type Credential struct {
	IdentityID   string `json:"-"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
}

// IdentityRegisteredEvent is published when a new identity registers.
type IdentityRegisteredEvent struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	At    time.Time `json:"at"`
}

func newIdentityID() string {
	return uuid.NewString()
}

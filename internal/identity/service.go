// internal/identity/service.go
package identity

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("identity not found")
	ErrInvalidArgument    = errors.New("invalid identity argument")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("registration rate limit exceeded")
)

// Service authenticates callers on behalf of the execution environment. The
// core services trust the token subject unconditionally; all verification
// happens here.
type Service interface {
	Register(ctx context.Context, email, name, password string) (*Identity, error)
	// Login verifies the credentials and returns a signed bearer token
	// whose subject is the identity id.
	Login(ctx context.Context, email, password string) (string, error)
	Get(ctx context.Context, id string) (*Identity, error)
}

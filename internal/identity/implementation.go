// internal/identity/implementation.go
package identity

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Inn-Chain/innchain-contract/internal/auth"
)

// EventSink receives identity events for downstream observers.
type EventSink interface {
	Append(ctx context.Context, aggregateID, aggregateType, eventType string, payload any) error
}

// service implements the Service interface with in-process records.
type service struct {
	mu          sync.Mutex
	byEmail     map[string]*Identity
	byID        map[string]*Identity
	credentials map[string]*Credential
	jwtSecret   []byte
	tokenTTL    time.Duration
	rateLimiter *rate.Limiter
	events      EventSink
}

// NewService creates a new identity service instance.
func NewService(jwtSecret []byte, tokenTTL time.Duration, events EventSink) Service {
	return &service{
		byEmail:     make(map[string]*Identity),
		byID:        make(map[string]*Identity),
		credentials: make(map[string]*Credential),
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute), 5),
		events:      events,
	}
}

// Register creates a new identity.
func (s *service) Register(ctx context.Context, email, name, password string) (*Identity, error) {
	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", ErrInvalidArgument)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name must not be empty: %w", ErrInvalidArgument)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", ErrInvalidArgument)
	}

	passwordHash, salt, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	id := &Identity{
		ID:        newIdentityID(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.byEmail[email] = id
	s.byID[id.ID] = id
	s.credentials[id.ID] = &Credential{
		IdentityID:   id.ID,
		PasswordHash: passwordHash,
		Salt:         salt,
	}

	if s.events != nil {
		if err := s.events.Append(ctx, id.ID, "identity", "IdentityRegistered", IdentityRegisteredEvent{
			ID:    id.ID,
			Email: email,
			Name:  name,
			At:    id.CreatedAt,
		}); err != nil {
			log.Printf("identity: failed to append registration event for %s: %v", id.ID, err)
		}
	}

	clone := *id
	return &clone, nil
}

// Login verifies the credentials and mints a bearer token.
func (s *service) Login(_ context.Context, email, password string) (string, error) {
	s.mu.Lock()
	id, ok := s.byEmail[email]
	var cred *Credential
	if ok {
		cred = s.credentials[id.ID]
	}
	s.mu.Unlock()

	if !ok || cred == nil {
		return "", ErrInvalidCredentials
	}

	valid, err := verifyPassword(password, cred.Salt, cred.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return "", ErrInvalidCredentials
	}

	token, err := auth.MintToken(s.jwtSecret, id.ID, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	return token, nil
}

// Get retrieves an identity by id.
func (s *service) Get(_ context.Context, id string) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("identity %s: %w", id, ErrNotFound)
	}
	clone := *record
	return &clone, nil
}

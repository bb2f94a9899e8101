package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mnmarket/marketlink-backend/internal/cart"
	"github.com/mnmarket/marketlink-backend/pkg/config"
	redisclient "github.com/mnmarket/marketlink-backend/pkg/redis"
)

const tokenBytes = 32

// ErrNotFound is returned when no session exists for a token.
var ErrNotFound = errors.New("session not found")

// State is everything a browsing session owns: the (optional) customer
// identity bound on first checkout, the latest name/email the visitor typed,
// and the cart being accumulated. It travels through the request context and
// is parked in Redis between requests.
type State struct {
	Token      string     `json:"-"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Email      string     `json:"email,omitempty"`
	Cart       *cart.Cart `json:"cart"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(token string) string
}

// Store persists session state under namespaced Redis keys with a TTL.
type Store struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewStore constructs a session store backed by Redis.
func NewStore(client *redisclient.Client, cfg config.SessionConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Store{store: client, keyer: client, ttl: cfg.TTL}, nil
}

// NewState creates a fresh session with an empty cart and a random token.
func NewState() (*State, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	return &State{Token: token, Cart: cart.New()}, nil
}

// Load fetches the session for a token. ErrNotFound when absent or expired.
func (s *Store) Load(ctx context.Context, token string) (*State, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotFound
	}
	raw, err := s.store.Get(ctx, s.keyer.SessionKey(token))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	state.Token = token
	if state.Cart == nil {
		state.Cart = cart.New()
	}
	return &state, nil
}

// Save writes the session back, refreshing its TTL.
func (s *Store) Save(ctx context.Context, state *State) error {
	if state == nil || strings.TrimSpace(state.Token) == "" {
		return fmt.Errorf("session token is required")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.SessionKey(state.Token), string(raw), s.ttl); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Delete drops the session for a token.
func (s *Store) Delete(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.store.Del(ctx, s.keyer.SessionKey(token))
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

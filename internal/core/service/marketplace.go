package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cosmicchronic/marketplace/internal/core/domain"
	"github.com/cosmicchronic/marketplace/internal/core/ports"
	"github.com/cosmicchronic/marketplace/internal/core/seed"
)

// Repositories bundles the storage the marketplace owns.
type Repositories struct {
	Users          ports.UserRepository
	Products       ports.ProductRepository
	Chat           ports.ChatRepository
	DirectMessages ports.DirectMessageRepository
	Sessions       ports.SessionStore
}

// Marketplace is the single authoritative holder of users, products, both
// message streams and the live sessions. Mutations are serialised by mu.
type Marketplace struct {
	users    ports.UserRepository
	products ports.ProductRepository
	chat     ports.ChatRepository
	dms      ports.DirectMessageRepository
	sessions ports.SessionStore
	log      zerolog.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
	last  time.Time // latest timestamp handed out by tick
}

// Option customises a Marketplace.
type Option func(*Marketplace)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Marketplace) { m.now = now }
}

// WithIDGenerator replaces the uuid generator used for entity ids.
func WithIDGenerator(newID func() string) Option {
	return func(m *Marketplace) { m.newID = newID }
}

// NewMarketplace returns a Marketplace over repos. Call Reset to load the
// seed before serving.
func NewMarketplace(repos Repositories, log zerolog.Logger, opts ...Option) *Marketplace {
	m := &Marketplace{
		users:    repos.Users,
		products: repos.Products,
		chat:     repos.Chat,
		dms:      repos.DirectMessages,
		sessions: repos.Sessions,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Reset restores every collection to the seed dataset.
func (m *Marketplace) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data := seed.Build(m.now().UTC().Truncate(time.Millisecond))

	if err := m.users.Reset(ctx, data.Users); err != nil {
		return fmt.Errorf("reset users: %w", err)
	}
	if err := m.products.Reset(ctx, data.Products); err != nil {
		return fmt.Errorf("reset products: %w", err)
	}
	if err := m.chat.Reset(ctx, data.ChatMessages); err != nil {
		return fmt.Errorf("reset chat: %w", err)
	}
	if err := m.dms.Reset(ctx, data.PrivateMessages); err != nil {
		return fmt.Errorf("reset direct messages: %w", err)
	}

	m.last = time.Time{}
	for _, msg := range data.ChatMessages {
		if msg.Timestamp.After(m.last) {
			m.last = msg.Timestamp
		}
	}
	for _, msg := range data.PrivateMessages {
		if msg.Timestamp.After(m.last) {
			m.last = msg.Timestamp
		}
	}

	m.log.Info().
		Int("users", len(data.Users)).
		Int("products", len(data.Products)).
		Msg("marketplace seeded")
	return nil
}

// tick returns a strictly increasing millisecond timestamp. Every message and
// read marker is stamped through here, so a message created after a read
// marker always sorts after it. Callers must hold mu.
func (m *Marketplace) tick() time.Time {
	now := m.now().UTC().Truncate(time.Millisecond)
	if !now.After(m.last) {
		now = m.last.Add(time.Millisecond)
	}
	m.last = now
	return now
}

// Login opens a session for the first user whose username and password match
// exactly. Passwords are compared as plaintext.
func (m *Marketplace) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := m.users.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := &domain.Session{
		ID:          m.newID(),
		User:        user.Clone(),
		ReadMarkers: make(map[string]time.Time),
		CreatedAt:   m.now().UTC(),
	}
	if err := m.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	m.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session opened")
	return sess, nil
}

// Logout ends the session. Unknown ids are ignored.
func (m *Marketplace) Logout(ctx context.Context, sessionID string) error {
	if err := m.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	m.log.Debug().Str("session_id", sessionID).Msg("session closed")
	return nil
}

// Session returns the live session with the given id.
func (m *Marketplace) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return m.sessions.Get(ctx, sessionID)
}

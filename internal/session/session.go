// Package session keeps each visitor's listing screen and navigation state in
// an in-memory scs session.
package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/stay-browser/server/internal/listing"
)

const (
	screenKey       = "listing.screen"
	confirmationKey = "navigation.confirmation"
)

func init() {
	gob.Register(listing.Screen{})
	gob.Register(listing.Confirmation{})
}

// Options configures the session cookie.
type Options struct {
	Lifetime   time.Duration
	CookieName string
	Secure     bool
}

// Manager stores screen state per visitor. Nothing is written to disk.
type Manager struct {
	sm *scs.SessionManager
}

// NewManager creates a session manager backed by an in-memory store.
func NewManager(opts Options) *Manager {
	sm := scs.New()
	sm.Store = memstore.New()
	if opts.Lifetime > 0 {
		sm.Lifetime = opts.Lifetime
	}
	if opts.CookieName != "" {
		sm.Cookie.Name = opts.CookieName
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = opts.Secure
	return &Manager{sm: sm}
}

// LoadAndSave is the middleware that loads the session for each request.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.sm.LoadAndSave(next)
}

// Screen returns the mounted listing screen, if any.
func (m *Manager) Screen(ctx context.Context) (*listing.Screen, bool) {
	s, ok := m.sm.Get(ctx, screenKey).(listing.Screen)
	if !ok {
		return nil, false
	}
	return &s, true
}

// SaveScreen stores the screen after a transition.
func (m *Manager) SaveScreen(ctx context.Context, s *listing.Screen) {
	m.sm.Put(ctx, screenKey, *s)
}

// Unmount drops the listing screen so the next visit fetches afresh.
func (m *Manager) Unmount(ctx context.Context) {
	m.sm.Remove(ctx, screenKey)
}

// PutConfirmation hands a reservation to the confirmation screen.
func (m *Manager) PutConfirmation(ctx context.Context, c listing.Confirmation) {
	m.sm.Put(ctx, confirmationKey, c)
}

// Confirmation returns the reservation handed over by navigation, if any.
func (m *Manager) Confirmation(ctx context.Context) (listing.Confirmation, bool) {
	c, ok := m.sm.Get(ctx, confirmationKey).(listing.Confirmation)
	return c, ok
}

// ClearConfirmation drops the navigation state once the listing is back.
func (m *Manager) ClearConfirmation(ctx context.Context) {
	m.sm.Remove(ctx, confirmationKey)
}

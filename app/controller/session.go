package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"legacy-peptides/cart"
)

const (
	sessionName  = "lp_session"
	sessionIDKey = "sid"
)

// SessionManager resolves the shopper's cart session from the session cookie
type SessionManager struct {
	store    sessions.Store
	registry *cart.Registry
}

// NewSessionManager creates a cookie-backed session manager. An empty secret
// gets a random per-process key, so sessions do not survive a restart.
func NewSessionManager(secret string, secure bool, registry *cart.Registry) *SessionManager {
	if secret == "" {
		zap.S().Warnf("⚠️ SessionManager: SESSION_SECRET is not set, using a random key")
		secret = uuid.NewString() + uuid.NewString()
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode

	return &SessionManager{store: store, registry: registry}
}

// Session returns the cart session for the request, issuing a cookie on first visit.
// Must be called before anything is written to w.
func (m *SessionManager) Session(w http.ResponseWriter, r *http.Request) (*cart.Session, error) {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		zap.S().Warnf("⚠️ Session: Discarding unreadable session cookie: %v", err)
	}

	id, _ := s.Values[sessionIDKey].(string)
	if id == "" {
		id = uuid.NewString()
		s.Values[sessionIDKey] = id
		if err := s.Save(r, w); err != nil {
			return nil, err
		}
		zap.S().Infof("🆕 Session: Started session %s", id)
	}

	return m.registry.Get(id), nil
}

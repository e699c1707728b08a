package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/cart"
)

const (
	sessionCookieName = "trinetra-session"

	cartStateKey = "cart"

	maxSessionBytes = 64 * 1024

	defaultSessionDir = "trinetra-sessions"
)

var ErrNoResponseWriter = errors.New("session cannot be saved without a response writer")

type Options struct {
	AuthKey []byte
	EncKey  []byte
	// Dir holds the session files. Empty means the OS temp directory.
	Dir    string
	Secure bool
}

type SessionStore struct {
	store sessions.Store
}

func NewSessionStore(opts Options) *SessionStore {
	cookieOpts := &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	// the cookie carries only the session id; a cart outgrows the 4KB
	// cookie limit after a handful of lines
	dir := opts.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), defaultSessionDir)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		zap.S().Errorf("NewSessionStore: failed to create session directory %s: %v", dir, err)
	}

	fs := sessions.NewFilesystemStore(dir, opts.AuthKey, opts.EncKey)
	fs.MaxLength(maxSessionBytes)
	fs.Options = cookieOpts
	return &SessionStore{store: fs}
}

func (s *SessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := s.store.Get(r, sessionCookieName)
	if err != nil {
		// a stale or tampered cookie still yields a fresh session
		zap.S().Debugf("SessionStore.getSession: discarding unreadable session: %v", err)
	}
	return session
}

// Cart returns a persister that keeps the cart in this request's session.
func (s *SessionStore) Cart(w http.ResponseWriter, r *http.Request) cart.Persister {
	return &sessionCart{store: s, w: w, r: r}
}

func (s *SessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := s.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

type sessionCart struct {
	store *SessionStore
	w     http.ResponseWriter
	r     *http.Request
}

func (c *sessionCart) Load() (cart.State, error) {
	session := c.store.getSession(c.r)
	raw, ok := session.Values[cartStateKey].(string)
	if !ok || raw == "" {
		return cart.State{}, nil
	}

	var state cart.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return cart.State{}, err
	}
	return state, nil
}

func (c *sessionCart) Save(state cart.State) error {
	if c.w == nil {
		return ErrNoResponseWriter
	}
	body, err := json.Marshal(state)
	if err != nil {
		return err
	}

	session := c.store.getSession(c.r)
	session.Values[cartStateKey] = string(body)
	return session.Save(c.r, c.w)
}

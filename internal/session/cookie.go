package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "printprofit_session"

// Manager ties HTTP requests to stored session state through a signed cookie
// carrying the session id.
type Manager struct {
	store    *Store
	secret   []byte
	newState func(id string) State
}

// NewManager returns a Manager. An empty secret is replaced by a random one,
// so cookies only stay valid for the life of the process. newState builds the
// state of a brand new session.
func NewManager(store *Store, secret string, newState func(id string) State) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return &Manager{store: store, secret: key, newState: newState}, nil
}

// Load returns the state of the request's session. A missing, forged or
// expired cookie starts a new session and sets its cookie on w.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) State {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if id, ok := m.verify(cookie.Value); ok {
			if state, ok := m.store.Get(id); ok {
				return state
			}
		}
	}

	state := m.newState(uuid.NewString())
	m.store.Put(state)
	m.setCookie(w, state.ID)
	return state
}

// Save replaces the stored state of state.ID.
func (m *Manager) Save(state State) {
	m.store.Put(state)
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(value string) (string, bool) {
	id, signature, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}

	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(id))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}
	return id, true
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

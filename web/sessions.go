package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	sessionCookie = "concierge_session"
	stateCookie   = "concierge_state"
	sessionTTL    = 24 * time.Hour
)

// webSession holds a logged-in dashboard user
type webSession struct {
	User      discordUser
	Guilds    []userGuild
	Token     *oauth2.Token
	ExpiresAt time.Time
}

// sessionStore keeps sessions in memory. A restart logs everyone out,
// which is acceptable for a read-only dashboard.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*webSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*webSession)}
}

// Create stores a new session and returns its token
func (s *sessionStore) Create(user discordUser, guilds []userGuild, token *oauth2.Token) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &webSession{
		User:      user,
		Guilds:    guilds,
		Token:     token,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	return id
}

// Get returns the session for a token, or nil if it is missing or expired
func (s *sessionStore) Get(id string) *webSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		delete(s.sessions, id)
		return nil
	}
	return session
}

// Delete removes a session
func (s *sessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// signState binds an OAuth2 state value to the server secret so the
// callback can verify it was issued here
func signState(secret, state string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(state))
	return state + "." + hex.EncodeToString(mac.Sum(nil))
}

// verifyState checks a signed state value and returns the raw state
func verifyState(secret, signed string) (string, bool) {
	idx := strings.LastIndex(signed, ".")
	if idx < 0 {
		return "", false
	}
	state, sig := signed[:idx], signed[idx+1:]

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(state))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return state, true
}

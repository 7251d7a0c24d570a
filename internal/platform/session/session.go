// Package session implements the client-held session: an encrypted,
// tamper-evident cookie carrying the authenticated user's id and
// nothing else. There is no server-side counterpart.
package session

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/securecookie"
)

// Session is the decoded cookie payload. The zero value means
// unauthenticated.
type Session struct {
	UserID string `json:"user_id"`
}

func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}

type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	secure     bool
}

// NewManager derives the HMAC and AES keys from the single configured
// secret. secure marks the cookie Secure for production deployments.
func NewManager(secret, cookieName string, secure bool) *Manager {
	hashKey := sha256.Sum256([]byte(secret + "/hash"))
	blockKey := sha256.Sum256([]byte(secret + "/block"))

	return &Manager{
		codec:      securecookie.New(hashKey[:], blockKey[:]),
		cookieName: cookieName,
		secure:     secure,
	}
}

// Load decodes the session cookie from the request. An absent,
// expired, or tampered cookie yields the zero session; the caller
// cannot distinguish the cases, all collapse to unauthenticated.
func (m *Manager) Load(r *http.Request) Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return Session{}
	}

	var sess Session
	if err := m.codec.Decode(m.cookieName, cookie.Value, &sess); err != nil {
		return Session{}
	}
	return sess
}

// Save encrypts the session into a response cookie.
func (m *Manager) Save(w http.ResponseWriter, sess Session) error {
	encoded, err := m.codec.Encode(m.cookieName, sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy expires the cookie, invalidating the client-held session
// immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

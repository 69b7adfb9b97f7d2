package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// Manager writes the session cookies. Both are HttpOnly and SameSite=Lax.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) write(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.Domain,
		MaxAge:   maxAge,
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetPair stores both tokens, each living until its own expiry.
func (m *Manager) SetPair(c *gin.Context, access string, accessExp time.Time, refresh string, refreshExp time.Time) {
	m.write(c, AccessCookie, access, secondsUntil(accessExp))
	m.write(c, RefreshCookie, refresh, secondsUntil(refreshExp))
}

// Clear expires both cookies on the client.
func (m *Manager) Clear(c *gin.Context) {
	m.write(c, AccessCookie, "", -1)
	m.write(c, RefreshCookie, "", -1)
}

func secondsUntil(t time.Time) int {
	return max(int(time.Until(t)/time.Second), 0)
}

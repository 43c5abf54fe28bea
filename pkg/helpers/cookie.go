package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names the auth middleware and handlers agree on.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// Manager writes and clears the auth cookie pair. Cookies are HttpOnly and
// SameSite=Lax; Secure follows deployment config.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	m.set(c, AccessCookie, access, aexp)
	m.set(c, RefreshCookie, refresh, rexp)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func (m *Manager) set(c *gin.Context, name, value string, exp time.Time) {
	maxAge := int(time.Until(exp).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetCookie(name, value, maxAge, "/", m.Domain, m.Secure, true)
}

package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/shared/config"
)

const RefreshTokenCookie = "refreshToken"

// CookieSettings controls the refresh token cookie attributes.
type CookieSettings struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// NewCookieSettings derives cookie attributes from configuration. Cookies are
// Secure outside development modes, or whenever configured explicitly.
func NewCookieSettings(cfg config.CookieConfig, server config.ServerConfig) CookieSettings {
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	return CookieSettings{
		Domain:   cfg.Domain,
		Path:     path,
		Secure:   cfg.Secure || !server.IsDevelopment(),
		SameSite: parseSameSite(cfg.SameSite),
	}
}

// SetRefreshTokenCookie stores the refresh token as an HttpOnly cookie that
// lives until expiresAt.
func SetRefreshTokenCookie(c *gin.Context, s CookieSettings, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(s.SameSite)
	c.SetCookie(RefreshTokenCookie, token, maxAge, s.Path, s.Domain, s.Secure, true)
}

// ClearRefreshTokenCookie expires the refresh token cookie.
func ClearRefreshTokenCookie(c *gin.Context, s CookieSettings) {
	c.SetSameSite(s.SameSite)
	c.SetCookie(RefreshTokenCookie, "", -1, s.Path, s.Domain, s.Secure, true)
}

// RefreshTokenFromCookie returns the refresh token cookie value, or "".
func RefreshTokenFromCookie(c *gin.Context) string {
	token, err := c.Cookie(RefreshTokenCookie)
	if err != nil {
		return ""
	}
	return token
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

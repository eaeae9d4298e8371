package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Transport moves a raw token between client and server over one HTTP
// channel: the Authorization header or a named cookie.
type Transport interface {
	// GetToken extracts the raw token from the request; ok is false when
	// the channel carries no token.
	GetToken(c *fiber.Ctx) (raw string, ok bool)
	// WriteToken places an issued token into the outbound response.
	WriteToken(c *fiber.Ctx, token string) error
	// ClearToken removes any token this transport previously set.
	ClearToken(c *fiber.Ctx)
}

// BearerTransport reads tokens from "Authorization: <scheme> <token>".
// It is stateless: writing a token into the response body is the caller's
// concern, so WriteToken and ClearToken touch nothing.
type BearerTransport struct {
	Scheme string
}

var _ Transport = (*BearerTransport)(nil)

func NewBearerTransport(scheme string) *BearerTransport {
	if scheme == "" {
		scheme = "Bearer"
	}
	return &BearerTransport{Scheme: scheme}
}

func (t *BearerTransport) GetToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	l := len(t.Scheme)

	if len(header) <= l+1 || !strings.EqualFold(header[:l], t.Scheme) || header[l] != ' ' {
		return "", false
	}

	raw := strings.TrimSpace(header[l:])
	if raw == "" {
		return "", false
	}

	return raw, true
}

func (t *BearerTransport) WriteToken(*fiber.Ctx, string) error {
	return nil
}

func (t *BearerTransport) ClearToken(*fiber.Ctx) {}

// CookieTransport moves tokens in a named cookie. Names are unique per
// backend so access and refresh cookies coexist without collision.
type CookieTransport struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

var _ Transport = (*CookieTransport)(nil)

func NewCookieTransport(name string, maxAge time.Duration, secure bool) *CookieTransport {
	return &CookieTransport{
		Name:   name,
		MaxAge: maxAge,
		Secure: secure,
	}
}

func (t *CookieTransport) GetToken(c *fiber.Ctx) (string, bool) {
	raw := c.Cookies(t.Name)
	return raw, raw != ""
}

func (t *CookieTransport) WriteToken(c *fiber.Ctx, token string) error {
	c.Cookie(&fiber.Cookie{
		Name:     t.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(t.MaxAge / time.Second),
		Expires:  time.Now().Add(t.MaxAge),
		HTTPOnly: true,
		Secure:   t.Secure,
		SameSite: "Lax",
	})
	return nil
}

func (t *CookieTransport) ClearToken(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     t.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   t.Secure,
		SameSite: "Lax",
	})
}

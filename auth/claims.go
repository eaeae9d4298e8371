package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OriginClaimKey is the reserved claim under which origin-bound strategies
// embed the issuing client's address and port.
const OriginClaimKey = "request_origin"

// TokenClaims is the signed payload carried by every issued token: subject
// (user id), audience, issue/expiry times, and optionally the issuing
// request's origin as a [host, port] pair.
type TokenClaims struct {
	jwt.RegisteredClaims
	Origin []string `json:"request_origin,omitempty"`
}

// UserID returns the subject claim.
func (c *TokenClaims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time.
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued-at time.
func (c *TokenClaims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// BoundOrigin returns the embedded origin and whether one is present.
func (c *TokenClaims) BoundOrigin() (Origin, bool) {
	if len(c.Origin) != 2 {
		return Origin{}, false
	}
	return Origin{Host: c.Origin[0], Port: c.Origin[1]}, true
}

// BindOrigin embeds the given origin under the reserved claim.
func (c *TokenClaims) BindOrigin(origin Origin) {
	c.Origin = []string{origin.Host, origin.Port}
}

package auth

import (
	"context"
)

// OriginStrategy is a hardened JWTStrategy that binds tokens to the
// network location they were issued to. A token carried off to another
// host or port reads as ErrOriginMismatch, a distinct signal from a merely
// invalid token, so replay attempts can be surfaced in logs.
type OriginStrategy struct {
	*JWTStrategy
}

var _ Strategy = (*OriginStrategy)(nil)

// NewOriginStrategy builds an origin-bound strategy from deployment
// configuration.
func NewOriginStrategy(cfg Config, opts ...StrategyOption) *OriginStrategy {
	return &OriginStrategy{JWTStrategy: NewJWTStrategy(cfg, opts...)}
}

// WriteToken embeds the issuing request's client address and port, when
// known, under the reserved origin claim.
func (s *OriginStrategy) WriteToken(ctx context.Context, user *User) (string, error) {
	claims := s.newClaims(user)

	if origin, ok := OriginFromContext(ctx); ok && !origin.isZero() {
		claims.BindOrigin(origin)
	}

	return s.signClaims(claims)
}

// ReadToken verifies raw and enforces the origin binding: a token without
// the claim resolves to no identity, a token bound to a different origin
// fails with ErrOriginMismatch.
func (s *OriginStrategy) ReadToken(ctx context.Context, raw string, resolver IdentityResolver) (*User, error) {
	claims, err := s.parseClaims(raw)
	if err != nil || claims == nil {
		return nil, err
	}

	bound, ok := claims.BoundOrigin()
	if !ok {
		return nil, nil
	}

	origin, ok := OriginFromContext(ctx)
	if !ok || bound != origin {
		return nil, ErrOriginMismatch
	}

	return s.resolveSubject(ctx, claims, resolver)
}

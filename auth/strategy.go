package auth

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// Strategy encodes and decodes identity into signed tokens.
//
// ReadToken fails silently (nil, nil) on missing or garbled tokens and on
// unresolvable subjects, but returns ErrTokenExpired for structurally valid
// tokens past expiry and ErrTokenInvalid for signature, algorithm, or
// audience failures, so callers can tell "log in again" from "tampered
// request".
type Strategy interface {
	WriteToken(ctx context.Context, user *User) (string, error)
	ReadToken(ctx context.Context, raw string, resolver IdentityResolver) (*User, error)
}

// StrategyFactory builds the strategy instance a backend uses per request.
type StrategyFactory func() Strategy

// JWTStrategy signs and verifies HMAC JWTs carrying subject, audience and
// expiry. Multiple strategies derive different lifetimes from the shared
// base via a coefficient: access tokens short, refresh tokens long.
type JWTStrategy struct {
	signingKey []byte
	method     string
	lifetime   time.Duration
	audience   jwt.ClaimStrings
	logger     Logger
}

type StrategyOption func(*JWTStrategy)

// WithLifetimeCoefficient scales the configured base lifetime.
func WithLifetimeCoefficient(coef float64) StrategyOption {
	return func(s *JWTStrategy) {
		s.lifetime = time.Duration(math.Round(float64(s.lifetime) * coef))
	}
}

// WithTokenAudience replaces the deployment audience, for purpose-scoped
// tokens such as password reset and verification.
func WithTokenAudience(audience ...string) StrategyOption {
	return func(s *JWTStrategy) {
		s.audience = append(jwt.ClaimStrings{}, audience...)
	}
}

func WithStrategyLogger(logger Logger) StrategyOption {
	return func(s *JWTStrategy) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewJWTStrategy builds a strategy from deployment configuration: shared
// secret, pinned algorithm, audience, and base lifetime in seconds.
func NewJWTStrategy(cfg Config, opts ...StrategyOption) *JWTStrategy {
	s := &JWTStrategy{
		signingKey: []byte(cfg.GetSigningKey()),
		method:     cfg.GetSigningMethod(),
		lifetime:   time.Duration(cfg.GetTokenExpiration()) * time.Second,
		audience:   append(jwt.ClaimStrings{}, cfg.GetAudience()...),
		logger:     defLogger{},
	}

	if s.method == "" {
		s.method = "HS256"
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Lifetime returns the effective token lifetime after any coefficient.
func (s *JWTStrategy) Lifetime() time.Duration {
	return s.lifetime
}

// WriteToken serializes the user's identity, audience and expiry into a
// signed compact token.
func (s *JWTStrategy) WriteToken(_ context.Context, user *User) (string, error) {
	return s.signClaims(s.newClaims(user))
}

// ReadToken verifies raw and resolves its subject back to a user record.
func (s *JWTStrategy) ReadToken(ctx context.Context, raw string, resolver IdentityResolver) (*User, error) {
	claims, err := s.parseClaims(raw)
	if err != nil || claims == nil {
		return nil, err
	}

	return s.resolveSubject(ctx, claims, resolver)
}

func (s *JWTStrategy) newClaims(user *User) *TokenClaims {
	now := time.Now()

	return &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Audience:  append(jwt.ClaimStrings{}, s.audience...),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
}

func (s *JWTStrategy) signClaims(claims *TokenClaims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	method := jwt.GetSigningMethod(s.method)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return "", goerrors.New(
			fmt.Sprintf("unsupported signing method: %s", s.method),
			goerrors.CategoryOperation,
		)
	}

	token := jwt.NewWithClaims(method, claims)

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// parseClaims maps verification failures into the token error taxonomy:
// garbage in, nil out; expired and invalid are distinct signals.
func (s *JWTStrategy) parseClaims(raw string) (*TokenClaims, error) {
	if raw == "" {
		return nil, nil
	}

	parserOptions := make([]jwt.ParserOption, 0, 1)
	if len(s.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(s.audience...))
	}

	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			s.logger.Error("token strategy encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		if alg, _ := t.Header["alg"].(string); alg != s.method {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, parserOptions...)

	if err != nil {
		switch {
		case goerrors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case goerrors.Is(err, jwt.ErrTokenMalformed):
			return nil, nil
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func (s *JWTStrategy) resolveSubject(ctx context.Context, claims *TokenClaims, resolver IdentityResolver) (*User, error) {
	if claims.UserID() == "" {
		return nil, nil
	}

	user, err := resolver.ResolveIdentity(ctx, claims.UserID())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve token subject")
	}

	return user, nil
}

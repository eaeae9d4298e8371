package auth

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// Authenticator ties the Manager to a backend Registry: it runs the
// credential check, mints one token per backend, and lets each backend's
// transport place its token on the response.
type Authenticator struct {
	manager  *Manager
	registry *Registry
	logger   Logger
}

// IssuedToken pairs a minted token with the backend that produced it.
type IssuedToken struct {
	Backend string `json:"backend"`
	Token   string `json:"token"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User   *User
	Tokens []IssuedToken
}

type AuthenticatorOption func(*Authenticator)

func WithAuthenticatorLogger(logger Logger) AuthenticatorOption {
	return func(a *Authenticator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAuthenticator(manager *Manager, registry *Registry, opts ...AuthenticatorOption) *Authenticator {
	a := &Authenticator{
		manager:  manager,
		registry: registry,
		logger:   defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

func (a *Authenticator) Manager() *Manager {
	return a.manager
}

func (a *Authenticator) Registry() *Registry {
	return a.registry
}

// Login authenticates the credentials and issues a token through every
// registered backend. Issuance is all or nothing: every strategy must mint
// its token before any transport writes to the response, so a failure
// partway leaves the client with no new tokens at all.
func (a *Authenticator) Login(c *fiber.Ctx, email, password string) (*LoginResult, error) {
	ctx := WithRequestOrigin(c.UserContext(), Origin{
		Host: c.IP(),
		Port: c.Port(),
	})

	user, err := a.manager.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	backends := a.registry.Backends()
	tokens := make([]IssuedToken, 0, len(backends))

	for _, b := range backends {
		if err := ctx.Err(); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "login canceled during token issuance")
		}

		token, err := b.Strategy().WriteToken(ctx, user)
		if err != nil {
			a.logger.Error("token issuance failed", "backend", b.Name, "error", err)
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue token").
				WithMetadata(map[string]any{"backend": b.Name})
		}

		tokens = append(tokens, IssuedToken{Backend: b.Name, Token: token})
	}

	for i, b := range backends {
		if err := b.Transport.WriteToken(c, tokens[i].Token); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write token").
				WithMetadata(map[string]any{"backend": b.Name})
		}
	}

	a.logger.Info("user logged in", "user_id", user.ID.String(), "backends", a.registry.Names())

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Logout clears every backend's transport. Tokens already in the wild stay
// valid until they expire; logout only removes them from the client.
func (a *Authenticator) Logout(c *fiber.Ctx) {
	for _, b := range a.registry.Backends() {
		b.Transport.ClearToken(c)
	}
}

package auth

import (
	"fmt"
	"math"
	"time"
)

// Backend is a named pairing of a transport and a strategy factory.
type Backend struct {
	Name      string
	Transport Transport
	Strategy  StrategyFactory
}

// Registry is the ordered, immutable set of authentication backends for
// the process. It is built once at startup and never mutated in the
// request path, so it needs no locking.
type Registry struct {
	backends []Backend
	index    map[string]int
}

// NewRegistry validates and freezes the backend list. A process must not
// serve traffic on a registry error.
func NewRegistry(backends ...Backend) (*Registry, error) {
	if len(backends) == 0 {
		return nil, backendConfigError("backend registry requires at least one backend")
	}

	index := make(map[string]int, len(backends))
	for i, b := range backends {
		if b.Name == "" {
			return nil, backendConfigError(fmt.Sprintf("backend at position %d has no name", i))
		}
		if b.Transport == nil || b.Strategy == nil {
			return nil, backendConfigError(fmt.Sprintf("backend %q is missing a transport or strategy", b.Name))
		}
		if _, dup := index[b.Name]; dup {
			return nil, backendConfigError(fmt.Sprintf("backend name %q registered twice", b.Name))
		}
		index[b.Name] = i
	}

	return &Registry{
		backends: append([]Backend{}, backends...),
		index:    index,
	}, nil
}

// MustNewRegistry is NewRegistry for startup wiring that treats a bad
// backend list as fatal.
func MustNewRegistry(backends ...Backend) *Registry {
	r, err := NewRegistry(backends...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds a backend by name.
func (r *Registry) Lookup(name string) (Backend, error) {
	i, ok := r.index[name]
	if !ok {
		return Backend{}, unknownBackend(name)
	}
	return r.backends[i], nil
}

// At finds a backend by ordinal position.
func (r *Registry) At(i int) (Backend, error) {
	if i < 0 || i >= len(r.backends) {
		return Backend{}, unknownBackend(fmt.Sprintf("#%d", i))
	}
	return r.backends[i], nil
}

// Backends returns a copy of the registered backends in order.
func (r *Registry) Backends() []Backend {
	return append([]Backend{}, r.backends...)
}

// Names returns the backend names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name
	}
	return names
}

func (r *Registry) Len() int {
	return len(r.backends)
}

// DefaultBackends wires the standard deployment: an origin-bound
// "access-token" cookie at the base lifetime and an origin-bound
// "refresh-token" cookie at ten times the base lifetime.
func DefaultBackends(cfg Config) []Backend {
	names := []string{"access-token", "refresh-token"}
	coefs := []float64{1, 10}

	backends := make([]Backend, 0, len(names))
	for i, name := range names {
		coef := coefs[i]
		backends = append(backends, NewCookieBackend(cfg, name, coef))
	}

	return backends
}

// NewCookieBackend builds an origin-bound cookie backend whose cookie
// lifetime matches its strategy lifetime.
func NewCookieBackend(cfg Config, name string, coef float64) Backend {
	lifetime := scaledLifetime(cfg, coef)

	return Backend{
		Name:      name,
		Transport: NewCookieTransport(name, lifetime, cfg.GetCookieSecure()),
		Strategy: func() Strategy {
			return NewOriginStrategy(cfg, WithLifetimeCoefficient(coef))
		},
	}
}

// NewBearerBackend is the simpler deployment mode: one stateless bearer
// backend at the base lifetime, tokens returned in the response body.
func NewBearerBackend(cfg Config) Backend {
	return Backend{
		Name:      "bearer-jwt",
		Transport: NewBearerTransport(cfg.GetTokenPrefix()),
		Strategy: func() Strategy {
			return NewJWTStrategy(cfg)
		},
	}
}

func scaledLifetime(cfg Config, coef float64) time.Duration {
	seconds := math.Round(float64(cfg.GetTokenExpiration()) * coef)
	return time.Duration(seconds) * time.Second
}

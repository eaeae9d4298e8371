package auth_test

import (
	"testing"
	"time"

	"github.com/phreshco/phresh/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackend(name string) auth.Backend {
	cfg := newTestConfig()
	return auth.Backend{
		Name:      name,
		Transport: auth.NewBearerTransport("Bearer"),
		Strategy: func() auth.Strategy {
			return auth.NewJWTStrategy(cfg)
		},
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := auth.NewRegistry(testBackend("one"), testBackend("two"))
	require.NoError(t, err)

	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, []string{"one", "two"}, registry.Names())

	b, err := registry.Lookup("two")
	require.NoError(t, err)
	assert.Equal(t, "two", b.Name)

	b, err = registry.At(0)
	require.NoError(t, err)
	assert.Equal(t, "one", b.Name)
}

func TestNewRegistryRejectsBadLists(t *testing.T) {
	_, err := auth.NewRegistry()
	assert.Error(t, err)

	_, err = auth.NewRegistry(testBackend(""))
	assert.Error(t, err)

	_, err = auth.NewRegistry(testBackend("dup"), testBackend("dup"))
	assert.Error(t, err)

	broken := testBackend("broken")
	broken.Strategy = nil
	_, err = auth.NewRegistry(broken)
	assert.Error(t, err)
}

func TestRegistryUnknownBackend(t *testing.T) {
	registry, err := auth.NewRegistry(testBackend("one"))
	require.NoError(t, err)

	_, err = registry.Lookup("nope")
	require.Error(t, err)
	assert.True(t, auth.IsUnknownBackend(err))

	_, err = registry.At(7)
	require.Error(t, err)
	assert.True(t, auth.IsUnknownBackend(err))
}

func TestRegistryBackendsIsACopy(t *testing.T) {
	registry, err := auth.NewRegistry(testBackend("one"))
	require.NoError(t, err)

	backends := registry.Backends()
	backends[0].Name = "mutated"

	b, err := registry.At(0)
	require.NoError(t, err)
	assert.Equal(t, "one", b.Name)
}

func TestDefaultBackends(t *testing.T) {
	cfg := newTestConfig()

	backends := auth.DefaultBackends(cfg)
	require.Len(t, backends, 2)

	assert.Equal(t, "access-token", backends[0].Name)
	assert.Equal(t, "refresh-token", backends[1].Name)

	access, ok := backends[0].Strategy().(*auth.OriginStrategy)
	require.True(t, ok)
	assert.Equal(t, time.Hour, access.Lifetime())

	refresh, ok := backends[1].Strategy().(*auth.OriginStrategy)
	require.True(t, ok)
	assert.Equal(t, 10*time.Hour, refresh.Lifetime())

	// Cookie lifetimes follow the strategy lifetimes.
	accessCookie, ok := backends[0].Transport.(*auth.CookieTransport)
	require.True(t, ok)
	assert.Equal(t, time.Hour, accessCookie.MaxAge)

	refreshCookie, ok := backends[1].Transport.(*auth.CookieTransport)
	require.True(t, ok)
	assert.Equal(t, 10*time.Hour, refreshCookie.MaxAge)
}

func TestNewBearerBackend(t *testing.T) {
	cfg := newTestConfig()

	b := auth.NewBearerBackend(cfg)
	assert.Equal(t, "bearer-jwt", b.Name)

	_, ok := b.Transport.(*auth.BearerTransport)
	assert.True(t, ok)

	_, ok = b.Strategy().(*auth.JWTStrategy)
	assert.True(t, ok)
}

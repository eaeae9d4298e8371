package auth_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phreshco/phresh/auth"
)

type testConfig struct {
	signingKey    string
	signingMethod string
	expiration    int
	audience      []string
	tokenPrefix   string
	cookieSecure  bool
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey:    "test-signing-key",
		signingMethod: "HS256",
		expiration:    3600,
		audience:      []string{"phresh:auth"},
		tokenPrefix:   "Bearer",
	}
}

func (c *testConfig) GetSigningKey() string    { return c.signingKey }
func (c *testConfig) GetSigningMethod() string { return c.signingMethod }
func (c *testConfig) GetTokenExpiration() int  { return c.expiration }
func (c *testConfig) GetAudience() []string    { return c.audience }
func (c *testConfig) GetTokenPrefix() string   { return c.tokenPrefix }
func (c *testConfig) GetCookieSecure() bool    { return c.cookieSecure }

// memStore is an in-memory UserStore for exercising the manager without a
// database.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newMemStore() *memStore {
	return &memStore{users: map[uuid.UUID]*auth.User{}}
}

func (s *memStore) GetUserByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}

	clone := *user
	return &clone, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}

	return nil, nil
}

func (s *memStore) CreateUser(_ context.Context, user *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	clone := *user
	s.users[user.ID] = &clone

	return user, nil
}

func (s *memStore) UpdateUser(_ context.Context, user *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *user
	s.users[user.ID] = &clone

	return user, nil
}

// resolverFunc adapts a function to auth.IdentityResolver.
type resolverFunc func(ctx context.Context, subject string) (*auth.User, error)

func (f resolverFunc) ResolveIdentity(ctx context.Context, subject string) (*auth.User, error) {
	return f(ctx, subject)
}

func staticResolver(user *auth.User) resolverFunc {
	return func(_ context.Context, subject string) (*auth.User, error) {
		if user != nil && subject == user.ID.String() {
			clone := *user
			return &clone, nil
		}
		return nil, nil
	}
}

func testUser() *auth.User {
	return &auth.User{
		ID:       uuid.New(),
		Name:     "peppercat",
		Email:    "pepper@phresh.io",
		IsActive: true,
	}
}

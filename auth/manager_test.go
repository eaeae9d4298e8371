package auth_test

import (
	"context"
	"testing"

	"github.com/phreshco/phresh/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPassword = "correct-horse7"

func newTestManager(t *testing.T) (*auth.Manager, *memStore) {
	t.Helper()

	store := newMemStore()
	manager := auth.NewManager(store, newTestConfig())

	return manager, store
}

func registerTestUser(t *testing.T, manager *auth.Manager) *auth.User {
	t.Helper()

	user, err := manager.Register(context.Background(), auth.RegisterPayload{
		Email:    "pepper@phresh.io",
		Name:     "peppercat",
		Password: goodPassword,
	})
	require.NoError(t, err)

	return user
}

func TestManagerRegister(t *testing.T) {
	manager, _ := newTestManager(t)

	user := registerTestUser(t, manager)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "pepper@phresh.io", user.Email)
	assert.Equal(t, "peppercat", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, goodPassword, user.PasswordHash)
}

func TestManagerRegisterNormalizesEmail(t *testing.T) {
	manager, _ := newTestManager(t)

	user, err := manager.Register(context.Background(), auth.RegisterPayload{
		Email:    "  Pepper@Phresh.IO ",
		Name:     "peppercat",
		Password: goodPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "pepper@phresh.io", user.Email)
}

func TestManagerRegisterDuplicateEmail(t *testing.T) {
	manager, _ := newTestManager(t)
	registerTestUser(t, manager)

	_, err := manager.Register(context.Background(), auth.RegisterPayload{
		Email:    "PEPPER@phresh.io",
		Name:     "otherperson",
		Password: goodPassword,
	})
	require.Error(t, err)
	assert.True(t, auth.IsDuplicateEmail(err))
}

func TestManagerRegisterInvalidName(t *testing.T) {
	manager, _ := newTestManager(t)

	for _, name := range []string{"ab", "", "way-too-long-for-a-name-here", "has space"} {
		_, err := manager.Register(context.Background(), auth.RegisterPayload{
			Email:    "someone@phresh.io",
			Name:     name,
			Password: goodPassword,
		})
		require.Error(t, err, "name=%q", name)
		assert.True(t, auth.IsInvalidName(err), "name=%q", name)
	}
}

func TestManagerRegisterWeakPassword(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.Register(context.Background(), auth.RegisterPayload{
		Email:    "someone@phresh.io",
		Name:     "someperson",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, auth.IsInvalidPassword(err))
}

func TestManagerRegisterFiresHook(t *testing.T) {
	store := newMemStore()

	var registered *auth.User
	hooks := hookRecorder{onRegister: func(user *auth.User) {
		registered = user
	}}

	manager := auth.NewManager(store, newTestConfig(), auth.WithHooks(hooks))

	user := registerTestUser(t, manager)

	require.NotNil(t, registered)
	assert.Equal(t, user.ID, registered.ID)
}

func TestManagerAuthenticate(t *testing.T) {
	manager, _ := newTestManager(t)
	created := registerTestUser(t, manager)

	user, err := manager.Authenticate(context.Background(), "pepper@phresh.io", goodPassword)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestManagerAuthenticateFailures(t *testing.T) {
	manager, store := newTestManager(t)
	registerTestUser(t, manager)

	inactive, err := manager.Register(context.Background(), auth.RegisterPayload{
		Email:    "gone@phresh.io",
		Name:     "goneperson",
		Password: goodPassword,
	})
	require.NoError(t, err)

	inactive.IsActive = false
	_, err = store.UpdateUser(context.Background(), inactive)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@phresh.io", goodPassword},
		{"wrong password", "pepper@phresh.io", "not-the-password1"},
		{"inactive account", "gone@phresh.io", goodPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manager.Authenticate(context.Background(), tc.email, tc.password)
			require.Error(t, err)
			assert.True(t, auth.IsBadCredentials(err))
		})
	}
}

func TestManagerResolveIdentity(t *testing.T) {
	manager, _ := newTestManager(t)
	created := registerTestUser(t, manager)

	user, err := manager.ResolveIdentity(context.Background(), created.ID.String())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	// Unparseable and unknown subjects are a silent none.
	user, err = manager.ResolveIdentity(context.Background(), "not-a-uuid")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = manager.ResolveIdentity(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestManagerForgotAndResetPassword(t *testing.T) {
	manager, _ := newTestManager(t)
	registerTestUser(t, manager)

	token, err := manager.ForgotPassword(context.Background(), "pepper@phresh.io")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	const newPassword = "fresh-horse42"

	require.NoError(t, manager.ResetPassword(context.Background(), token, newPassword))

	_, err = manager.Authenticate(context.Background(), "pepper@phresh.io", goodPassword)
	require.Error(t, err)

	user, err := manager.Authenticate(context.Background(), "pepper@phresh.io", newPassword)
	require.NoError(t, err)
	assert.Equal(t, "pepper@phresh.io", user.Email)
}

func TestManagerForgotPasswordUnknownEmail(t *testing.T) {
	manager, _ := newTestManager(t)

	token, err := manager.ForgotPassword(context.Background(), "nobody@phresh.io")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestManagerResetPasswordRejectsSessionToken(t *testing.T) {
	manager, _ := newTestManager(t)
	user := registerTestUser(t, manager)

	// A session token must not pass for a reset token.
	session, err := auth.NewJWTStrategy(newTestConfig()).WriteToken(context.Background(), user)
	require.NoError(t, err)

	err = manager.ResetPassword(context.Background(), session, "fresh-horse42")
	require.Error(t, err)
}

func TestManagerVerification(t *testing.T) {
	manager, _ := newTestManager(t)
	registerTestUser(t, manager)

	token, err := manager.RequestVerification(context.Background(), "pepper@phresh.io")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := manager.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// Already verified accounts are a silent no-op on a new request.
	token, err = manager.RequestVerification(context.Background(), "pepper@phresh.io")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestManagerVerifyBadToken(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.Verify(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, auth.IsTokenInvalid(err))
}

// hookRecorder captures hook invocations for assertions.
type hookRecorder struct {
	onRegister func(*auth.User)
}

func (h hookRecorder) OnAfterRegister(_ context.Context, user *auth.User) error {
	if h.onRegister != nil {
		h.onRegister(user)
	}
	return nil
}

func (h hookRecorder) OnAfterForgotPassword(context.Context, *auth.User, string) error {
	return nil
}

func (h hookRecorder) OnAfterRequestVerify(context.Context, *auth.User, string) error {
	return nil
}

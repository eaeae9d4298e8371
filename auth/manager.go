package auth

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Purpose-scoped audiences keep reset and verification tokens from ever
// verifying as session tokens.
const (
	ResetTokenAudience  = "phresh:reset"
	VerifyTokenAudience = "phresh:verify"
)

// Manager orchestrates registration, credential authentication, and
// identity resolution against a UserStore. It owns no storage and keeps no
// per-request state.
type Manager struct {
	store   UserStore
	policy  *PasswordPolicy
	hooks   Hooks
	logger  Logger
	parseID func(string) (uuid.UUID, error)

	deterministicIDs bool

	resetTokens  *JWTStrategy
	verifyTokens *JWTStrategy
}

var _ IdentityResolver = (*Manager)(nil)

type ManagerOption func(*Manager)

func WithPasswordPolicy(policy *PasswordPolicy) ManagerOption {
	return func(m *Manager) {
		if policy != nil {
			m.policy = policy
		}
	}
}

func WithHooks(hooks Hooks) ManagerOption {
	return func(m *Manager) {
		m.hooks = normalizeHooks(hooks)
	}
}

func WithManagerLogger(logger Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDeterministicIDs derives user ids from the registration email
// instead of random UUIDs.
func WithDeterministicIDs() ManagerOption {
	return func(m *Manager) {
		m.deterministicIDs = true
	}
}

// WithIDCodec replaces the subject parser used when resolving token
// subjects back into store lookups.
func WithIDCodec(parse func(string) (uuid.UUID, error)) ManagerOption {
	return func(m *Manager) {
		if parse != nil {
			m.parseID = parse
		}
	}
}

// NewManager builds a Manager. cfg supplies the signing configuration for
// the purpose-scoped reset and verification tokens.
func NewManager(store UserStore, cfg Config, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:        store,
		policy:       DefaultPasswordPolicy(),
		hooks:        noopHooks{},
		logger:       defLogger{},
		parseID:      uuid.Parse,
		resetTokens:  NewJWTStrategy(cfg, WithTokenAudience(ResetTokenAudience)),
		verifyTokens: NewJWTStrategy(cfg, WithTokenAudience(VerifyTokenAudience)),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// RegisterPayload carries a registration request. The plaintext password
// is accepted only at this boundary and discarded after hashing.
type RegisterPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Name, validation.Required, validation.Length(MinNameLength, MaxNameLength), validation.Match(NamePattern)),
		validation.Field(&p.Password, validation.Required),
	)
}

// Register creates a new user: name and email rules, password policy,
// duplicate check, bcrypt hash, persist, post-register hook. The policy
// always runs before the password is persisted.
func (m *Manager) Register(ctx context.Context, payload RegisterPayload) (*User, error) {
	if !ValidName(payload.Name) {
		return nil, ErrInvalidName
	}

	// Normalize before validating so padded or mixed-case emails pass the
	// format rule and dedupe against the stored form.
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithCode(goerrors.CodeBadRequest)
	}

	if err := m.policy.Validate(payload.Password); err != nil {
		return nil, err
	}

	email := payload.Email

	existing, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check registration email")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Email:        email,
		Name:         payload.Name,
		PasswordHash: hash,
		IsActive:     true,
	}

	if m.deterministicIDs {
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		}
	}

	created, err := m.store.CreateUser(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	m.fireHook(ctx, "register", func() error {
		return m.hooks.OnAfterRegister(ctx, created)
	})

	return created, nil
}

// Authenticate verifies email/password credentials. Unknown email, wrong
// password, and inactive accounts all fail with the same ErrBadCredentials
// so the outcome reveals nothing about which factor was wrong.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := m.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user during authentication")
	}

	if user == nil {
		compareAgainstGuardHash(password)
		return nil, ErrBadCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrBadCredentials
	}

	if !user.IsActive {
		return nil, ErrBadCredentials
	}

	return user, nil
}

// ResolveIdentity materializes a token subject back into a user record.
// Unparseable and unknown ids are a silent none, never an error.
func (m *Manager) ResolveIdentity(ctx context.Context, subject string) (*User, error) {
	id, err := m.parseID(subject)
	if err != nil {
		return nil, nil
	}

	return m.store.GetUserByID(ctx, id)
}

// ForgotPassword issues a reset token for the account, if one exists, and
// fires the forgot-password hook. Unknown emails are a silent no-op so the
// endpoint cannot be used to enumerate accounts. The token is returned for
// delivery by the hook's side channel.
func (m *Manager) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := m.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user for password reset")
	}
	if user == nil || !user.IsActive {
		return "", nil
	}

	token, err := m.resetTokens.WriteToken(ctx, user)
	if err != nil {
		return "", err
	}

	m.fireHook(ctx, "forgot-password", func() error {
		return m.hooks.OnAfterForgotPassword(ctx, user, token)
	})

	return token, nil
}

// ResetPassword consumes a reset token and persists a new password after
// re-running the policy.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := m.resetTokens.ReadToken(ctx, token, m)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrTokenInvalid
	}

	if err := m.policy.Validate(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user.PasswordHash = hash
	if _, err := m.store.UpdateUser(ctx, user); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist new password")
	}

	return nil
}

// RequestVerification issues a verification token for the account, if one
// exists, and fires the request-verify hook. Unknown emails are a silent
// no-op.
func (m *Manager) RequestVerification(ctx context.Context, email string) (string, error) {
	user, err := m.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user for verification")
	}
	if user == nil || user.IsVerified {
		return "", nil
	}

	token, err := m.verifyTokens.WriteToken(ctx, user)
	if err != nil {
		return "", err
	}

	m.fireHook(ctx, "request-verify", func() error {
		return m.hooks.OnAfterRequestVerify(ctx, user, token)
	})

	return token, nil
}

// Verify consumes a verification token and marks the account verified.
func (m *Manager) Verify(ctx context.Context, token string) (*User, error) {
	user, err := m.verifyTokens.ReadToken(ctx, token, m)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}

	if user.IsVerified {
		return user, nil
	}

	user.IsVerified = true
	updated, err := m.store.UpdateUser(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist verification")
	}

	return updated, nil
}

// fireHook runs a lifecycle hook; hook failures never fail the primary
// operation.
func (m *Manager) fireHook(_ context.Context, name string, fn func() error) {
	if err := fn(); err != nil {
		m.logger.Warn("lifecycle hook failed", "hook", name, "error", err)
	}
}

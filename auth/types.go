package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetTokenExpiration() int
	GetAudience() []string
	GetTokenPrefix() string
	GetCookieSecure() bool
}

// UserStore is the persistence surface the auth core requires from the
// storage layer. Lookups return (nil, nil) when no record matches; errors
// are reserved for storage failures.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateUser(ctx context.Context, user *User) (*User, error)
}

// IdentityResolver materializes token claims back into a user record.
// A nil user with a nil error means the subject could not be resolved.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, subject string) (*User, error)
}

// Hooks receive side-channel notifications after manager operations. Hook
// failures are logged and never fail the primary operation.
type Hooks interface {
	OnAfterRegister(ctx context.Context, user *User) error
	OnAfterForgotPassword(ctx context.Context, user *User, token string) error
	OnAfterRequestVerify(ctx context.Context, user *User, token string) error
}

type noopHooks struct{}

func (noopHooks) OnAfterRegister(context.Context, *User) error               { return nil }
func (noopHooks) OnAfterForgotPassword(context.Context, *User, string) error { return nil }
func (noopHooks) OnAfterRequestVerify(context.Context, *User, string) error  { return nil }

func normalizeHooks(hooks Hooks) Hooks {
	if hooks == nil {
		return noopHooks{}
	}
	return hooks
}

// LogHooks is the default Hooks implementation: it records each lifecycle
// event through the configured logger.
type LogHooks struct {
	Logger Logger
}

func (h LogHooks) logger() Logger {
	if h.Logger == nil {
		return defLogger{}
	}
	return h.Logger
}

func (h LogHooks) OnAfterRegister(_ context.Context, user *User) error {
	h.logger().Info("user has registered", "user_id", user.ID.String())
	return nil
}

func (h LogHooks) OnAfterForgotPassword(_ context.Context, user *User, token string) error {
	h.logger().Info("user has forgotten their password", "user_id", user.ID.String(), "reset_token", token)
	return nil
}

func (h LogHooks) OnAfterRequestVerify(_ context.Context, user *User, token string) error {
	h.logger().Info("verification requested", "user_id", user.ID.String(), "verify_token", token)
	return nil
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println(logLine("ERR", msg, args...))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println(logLine("WRN", msg, args...))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println(logLine("INF", msg, args...))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println(logLine("DBG", msg, args...))
}

// logLine renders slog-style trailing key-value pairs, matching the call
// convention of the structured loggers callers normally inject.
func logLine(level, msg string, args ...any) string {
	var b strings.Builder

	b.WriteString("[" + level + "] AUTH " + msg)

	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}

	if len(args)%2 == 1 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}

	return b.String()
}

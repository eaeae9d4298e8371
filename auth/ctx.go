package auth

import (
	"context"
)

var userCtxKey = &contextKey{"user"}
var originCtxKey = &contextKey{"origin"}

type contextKey struct {
	name string
}

// Origin identifies the network location a request came from.
type Origin struct {
	Host string
	Port string
}

func (o Origin) String() string {
	return o.Host + ":" + o.Port
}

func (o Origin) isZero() bool {
	return o.Host == "" && o.Port == ""
}

// WithRequestOrigin records the client address of the current request so
// origin-bound strategies can embed and verify it.
func WithRequestOrigin(ctx context.Context, origin Origin) context.Context {
	return context.WithValue(ctx, originCtxKey, origin)
}

// OriginFromContext returns the request origin, if one was recorded.
func OriginFromContext(ctx context.Context) (Origin, bool) {
	origin, ok := ctx.Value(originCtxKey).(Origin)
	return origin, ok
}

// WithUserContext sets the authenticated User in the given context
func WithUserContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext finds the authenticated user from the context.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userCtxKey).(*User)
	return user, ok
}

package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeBadCredentials  = "BAD_CREDENTIALS"
	textCodeDuplicateEmail  = "EMAIL_TAKEN"
	textCodeInvalidName     = "INVALID_NAME"
	textCodeInvalidPassword = "INVALID_PASSWORD"
	textCodeTokenExpired    = "TOKEN_EXPIRED"
	textCodeTokenInvalid    = "TOKEN_INVALID"
	textCodeOriginMismatch  = "ORIGIN_MISMATCH"
	textCodeUnknownBackend  = "UNKNOWN_BACKEND"
	textCodeBackendConfig   = "INVALID_BACKEND_CONFIG"
)

// ErrBadCredentials covers unknown email, wrong password, and inactive
// accounts alike so callers cannot enumerate which factor failed.
var ErrBadCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(textCodeBadCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrDuplicateEmail is returned when registering an email that already has
// an account. Safe to disclose: it concerns the registering user's own input.
var ErrDuplicateEmail = goerrors.New("email already registered", goerrors.CategoryConflict).
	WithTextCode(textCodeDuplicateEmail).
	WithCode(goerrors.CodeConflict)

// ErrInvalidName is returned when a display name fails the length or
// charset rule.
var ErrInvalidName = goerrors.New("name must be 4-20 characters of letters, digits, '-' or '_'", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidName).
	WithCode(goerrors.CodeBadRequest)

// ErrTokenExpired marks a structurally valid token past its expiry: the
// client should log in again.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInvalid marks a token that failed signature, algorithm, or
// audience verification: a tampered or misdirected request.
var ErrTokenInvalid = goerrors.New("token is invalid", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenInvalid).
	WithCode(goerrors.CodeUnauthorized)

// ErrOriginMismatch marks a valid token replayed from a network location
// other than the one it was issued to. Callers should log it as a security
// signal before collapsing it into a generic reauthentication response.
var ErrOriginMismatch = goerrors.New("token origin mismatch", goerrors.CategoryAuth).
	WithTextCode(textCodeOriginMismatch).
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the internal bcrypt comparison failure.
var ErrMismatchedHashAndPassword = goerrors.New("mismatched hash and password", goerrors.CategoryAuth).
	WithTextCode(textCodeBadCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidPassword).
	WithCode(goerrors.CodeBadRequest)

// InvalidPassword builds a policy rejection whose reason names the rule
// that failed. The reason concerns the candidate password, not an existing
// secret, so it is safe to surface.
func InvalidPassword(reason string) *goerrors.Error {
	return goerrors.New(reason, goerrors.CategoryValidation).
		WithTextCode(textCodeInvalidPassword).
		WithCode(goerrors.CodeBadRequest)
}

func unknownBackend(name string) *goerrors.Error {
	return goerrors.New("unknown authentication backend", goerrors.CategoryBadInput).
		WithTextCode(textCodeUnknownBackend).
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(map[string]any{"backend": name})
}

func backendConfigError(msg string) *goerrors.Error {
	return goerrors.New(msg, goerrors.CategoryOperation).
		WithTextCode(textCodeBackendConfig).
		WithCode(goerrors.CodeInternal)
}

func textCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}

// IsBadCredentials reports whether err is the uniform credential rejection.
func IsBadCredentials(err error) bool {
	return textCode(err) == textCodeBadCredentials
}

// IsDuplicateEmail reports whether err is a duplicate registration.
func IsDuplicateEmail(err error) bool {
	return textCode(err) == textCodeDuplicateEmail
}

// IsInvalidPassword reports whether err is a password policy rejection.
func IsInvalidPassword(err error) bool {
	return textCode(err) == textCodeInvalidPassword
}

// IsInvalidName reports whether err is a display name rejection.
func IsInvalidName(err error) bool {
	return textCode(err) == textCodeInvalidName
}

// IsTokenExpired reports whether err marks an expired token.
func IsTokenExpired(err error) bool {
	return textCode(err) == textCodeTokenExpired
}

// IsTokenInvalid reports whether err marks a tampered or misdirected token.
func IsTokenInvalid(err error) bool {
	return textCode(err) == textCodeTokenInvalid
}

// IsOriginMismatch reports whether err marks a cross-origin token replay.
func IsOriginMismatch(err error) bool {
	return textCode(err) == textCodeOriginMismatch
}

// IsUnknownBackend reports whether err is a registry miss.
func IsUnknownBackend(err error) bool {
	return textCode(err) == textCodeUnknownBackend
}

package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSession is returned when a token is requested but nobody is
// signed in.
var ErrNoSession = errors.New("identity: no active session")

// ProviderError is a rejection from the identity provider: bad
// credentials, duplicate account, disabled user. Distinct from backend
// errors so callers can surface it verbatim without guessing which
// layer failed.
type ProviderError struct {
	Code    string // provider error code, e.g. EMAIL_EXISTS
	Message string // stable human-readable message
}

func (e *ProviderError) Error() string {
	return e.Message
}

// providerMessages maps Identity Toolkit error codes to messages fit
// for an error banner. Unknown codes fall through to a generic line
// carrying the raw code.
var providerMessages = map[string]string{
	"EMAIL_EXISTS":                "an account already exists for this email",
	"EMAIL_NOT_FOUND":             "incorrect email or password",
	"INVALID_PASSWORD":            "incorrect email or password",
	"INVALID_LOGIN_CREDENTIALS":   "incorrect email or password",
	"INVALID_EMAIL":               "invalid email address",
	"USER_DISABLED":               "this account has been disabled",
	"WEAK_PASSWORD":               "password should be at least 6 characters",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "too many attempts, please try again later",
	"TOKEN_EXPIRED":               "session expired, please log in again",
	"INVALID_REFRESH_TOKEN":       "session expired, please log in again",
}

// newProviderError normalizes a raw Identity Toolkit code. Some codes
// arrive with a trailing explanation ("WEAK_PASSWORD : Password should
// be ..."); only the leading token identifies the failure.
func newProviderError(raw string) *ProviderError {
	code := raw
	if i := strings.Index(raw, " "); i > 0 {
		code = raw[:i]
	}
	msg, ok := providerMessages[code]
	if !ok {
		msg = fmt.Sprintf("authentication failed (%s)", code)
	}
	return &ProviderError{Code: code, Message: msg}
}

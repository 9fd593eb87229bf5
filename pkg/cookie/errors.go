package cookie

import "errors"

var (
	ErrNoSecret       = errors.New("cookie.no_secret")
	ErrKeyDerivation  = errors.New("cookie.key_derivation_failed")
	ErrCookieNotFound = errors.New("cookie.not_found")
	ErrInvalidFormat  = errors.New("cookie.invalid_format")
	ErrInvalidCookie  = errors.New("cookie.invalid_attributes")
)

package cookie

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Reader is satisfied by *http.Request.
type Reader interface {
	Cookie(name string) (*http.Cookie, error)
}

// Format returns the literal Set-Cookie header value.
func Format(name, value string, opts ...Option) string {
	o := applyOptions(opts)
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
	return c.String()
}

// Validate reports whether a cookie with this name and attributes can be
// rendered. http.Cookie.String silently returns "" for an invalid name.
func Validate(name string, opts ...Option) error {
	o := applyOptions(opts)
	c := &http.Cookie{
		Name:   name,
		Value:  "v",
		Path:   o.Path,
		Domain: o.Domain,
	}
	if err := c.Valid(); err != nil {
		return errors.Join(ErrInvalidCookie, err)
	}
	return nil
}

// Expire returns a Set-Cookie header value that removes the named cookie.
func Expire(name string, opts ...Option) string {
	o := applyOptions(opts)
	c := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
	return c.String()
}

// Value reads the named cookie.
func Value(r Reader, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Join builds a dot-delimited "<value>.<signature>" pair.
func Join(value, signature string) string {
	return value + "." + signature
}

// Split parses a "<value>.<signature>" pair. Both halves must be non-empty
// and the signature must not contain another dot.
func Split(raw string) (value, signature string, err error) {
	value, signature, ok := strings.Cut(raw, ".")
	if !ok || value == "" || signature == "" || strings.Contains(signature, ".") {
		return "", "", ErrInvalidFormat
	}
	return value, signature, nil
}

// Package cookie signs session identifiers and renders Set-Cookie header values.
//
// # Signing
//
// Signer computes HMAC-SHA256 over a value using a key derived from each
// configured secret with HKDF. The first secret signs new values; all secrets
// are accepted during verification so secrets can be rotated without
// invalidating live cookies. Signatures are base64url without padding, which
// keeps them free of the '.' separator used by Join and Split.
//
//	signer, err := cookie.NewSigner("current-secret", "previous-secret")
//	if err != nil {
//	    return err
//	}
//	value := cookie.Join(id, signer.Sign(id))
//
// # Headers
//
// Format and Expire build header values through net/http so attribute
// quoting and validation follow the standard library. Defaults are Path=/,
// HttpOnly and SameSite=Lax; override them with Option values.
//
//	w.Header().Add("Set-Cookie", cookie.Format("sid", value, cookie.WithMaxAge(3600), cookie.WithSecure(true)))
//
// net/http renders nothing for a name it considers invalid, such as one
// containing a space. Check names and attributes once at startup:
//
//	if err := cookie.Validate("sid", cookie.WithPath("/app")); err != nil {
//	    return err
//	}
//
// # Reading
//
// Value reads a cookie from anything with a Cookie(name) method, usually an
// *http.Request. Split separates the value from its signature and rejects
// anything with more or fewer than one '.'.
//
//	raw, err := cookie.Value(r, "sid")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//	    // first visit
//	}
//	id, sig, err := cookie.Split(raw)
//	if err != nil || !signer.Verify(id, sig) {
//	    // tampered or malformed
//	}
//
// # Errors
//
// Sentinels usable with errors.Is:
//
//   - ErrNoSecret       - NewSigner called without a non-empty secret
//   - ErrKeyDerivation  - HKDF failed to derive a signing key
//   - ErrCookieNotFound - the request carries no cookie with that name
//   - ErrInvalidFormat  - the value has no "<value>.<signature>" shape
//   - ErrInvalidCookie  - name or attributes cannot be rendered by net/http
package cookie

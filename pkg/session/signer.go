package session

// Signer binds a cookie value to the server secret.
// Verify must compare in constant time.
type Signer interface {
	Sign(value string) string
	Verify(value, signature string) bool
}

package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"io"
	"slices"

	"golang.org/x/crypto/hkdf"
)

const keyInfo = "sessionkit/cookie-signature/v1"

// Signer produces HMAC-SHA256 signatures over cookie values.
// The first secret signs; every secret verifies, which allows rotation.
type Signer struct {
	keys [][]byte
}

// NewSigner derives one signing key per non-empty secret.
func NewSigner(secrets ...string) (*Signer, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([][]byte, 0, len(secrets))
	for _, secret := range secrets {
		key, err := deriveKey(secret)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return &Signer{keys: keys}, nil
}

// Sign returns the base64url signature of value under the primary key.
func (s *Signer) Sign(value string) string {
	return base64.RawURLEncoding.EncodeToString(s.mac(s.keys[0], value))
}

// Verify reports whether signature matches value under any known key.
// Every key is tried so the run time does not reveal which one matched.
func (s *Signer) Verify(value, signature string) bool {
	given, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	matched := 0
	for _, key := range s.keys {
		matched |= subtle.ConstantTimeCompare(given, s.mac(key, value))
	}
	return matched == 1
}

func (s *Signer) mac(key []byte, value string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(value))
	return h.Sum(nil)
}

func deriveKey(secret string) ([]byte, error) {
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, errors.Join(ErrKeyDerivation, err)
	}
	return key, nil
}

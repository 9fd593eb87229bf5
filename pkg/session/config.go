package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// Secret signs session cookies. Comma-separated values enable rotation:
	// the first signs, all verify.
	Secret string `env:"SESSION_SECRET,required,notEmpty"`

	AbsoluteDeadlineOffset time.Duration `env:"SESSION_ABSOLUTE_DEADLINE_OFFSET" envDefault:"24h"`
	IdleDeadlineOffset     time.Duration `env:"SESSION_IDLE_DEADLINE_OFFSET" envDefault:"30m"`
	RenewalDeadlineOffset  time.Duration `env:"SESSION_RENEWAL_DEADLINE_OFFSET" envDefault:"1h"`

	CookiePath   string `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieDomain string `env:"SESSION_COOKIE_DOMAIN"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// CleanupInterval for the default memory store (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns default session configuration. Secret is left empty.
func DefaultConfig() Config {
	return Config{
		CookieName:             "sid",
		AbsoluteDeadlineOffset: 24 * time.Hour,
		IdleDeadlineOffset:     30 * time.Minute,
		RenewalDeadlineOffset:  time.Hour,
		CookiePath:             "/",
		CleanupInterval:        5 * time.Minute,
	}
}

// Secrets splits Secret into its non-empty, trimmed parts.
func (c Config) Secrets() []string {
	parts := strings.Split(c.Secret, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// Validate reports every missing or non-positive setting and any cookie
// name, path or domain that net/http would refuse to render.
func (c Config) Validate() error {
	var errs []error
	if c.CookieName == "" {
		errs = append(errs, errors.New("cookie name is required"))
	} else if err := cookie.Validate(c.CookieName, cookie.WithPath(c.CookiePath), cookie.WithDomain(c.CookieDomain)); err != nil {
		errs = append(errs, fmt.Errorf("cookie %q attributes: %w", c.CookieName, err))
	}
	if len(c.Secrets()) == 0 {
		errs = append(errs, errors.New("secret is required"))
	}
	for name, d := range map[string]time.Duration{
		"absolute deadline offset": c.AbsoluteDeadlineOffset,
		"idle deadline offset":     c.IdleDeadlineOffset,
		"renewal deadline offset":  c.RenewalDeadlineOffset,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}

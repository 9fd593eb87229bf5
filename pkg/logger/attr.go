package logger

import (
	"log/slog"
	"strconv"
)

// sessionIDPrefix is how much of a session id is safe to log.
const sessionIDPrefix = 8

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// SessionID records a truncated session id under "session_id".
// Full ids are bearer credentials and never reach the log.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	if len(id) > sessionIDPrefix {
		id = id[:sessionIDPrefix] + "…"
	}
	return slog.String("session_id", id)
}

// GroupID records the session chain id under "group_id".
func GroupID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("group_id", id)
}

// Store records the session store backend under "store".
func Store(name string) slog.Attr {
	return slog.String("store", name)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Attempt records a retry attempt number under "attempt".
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

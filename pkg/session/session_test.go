package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestData_Predicates(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := session.Data[profile]{
		ID:               "id",
		AbsoluteDeadline: base.Add(time.Hour),
		IdleDeadline:     base.Add(15 * time.Minute),
		RenewalDeadline:  base.Add(30 * time.Minute),
	}

	tests := []struct {
		name     string
		at       time.Time
		absolute bool
		idle     bool
		renewal  bool
		usable   bool
	}{
		{name: "fresh", at: base, usable: true},
		{name: "just before idle", at: base.Add(15*time.Minute - time.Nanosecond), usable: true},
		{name: "at idle deadline", at: base.Add(15 * time.Minute), idle: true},
		{name: "at renewal deadline", at: base.Add(30 * time.Minute), idle: true, renewal: true},
		{name: "at absolute deadline", at: base.Add(time.Hour), absolute: true, idle: true, renewal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.absolute, d.IsAbsoluteExpired(tt.at))
			assert.Equal(t, tt.idle, d.IsIdleExpired(tt.at))
			assert.Equal(t, tt.renewal, d.IsRenewalDue(tt.at))
			assert.Equal(t, tt.usable, d.IsUsable(tt.at))
		})
	}
}

func TestData_RetiredIsNeverUsable(t *testing.T) {
	t.Parallel()

	now := time.Now()
	d := session.Data[profile]{
		AbsoluteDeadline: now.Add(time.Hour),
		IdleDeadline:     now.Add(time.Hour),
		RenewalDeadline:  now.Add(time.Hour),
		IsRetired:        true,
	}
	assert.False(t, d.IsUsable(now))
	assert.False(t, d.IsAbsoluteExpired(now))
	assert.False(t, d.IsIdleExpired(now))
}

func TestData_AbsoluteExpiryIsMonotonic(t *testing.T) {
	t.Parallel()

	now := time.Now()
	d := session.Data[profile]{
		AbsoluteDeadline: now.Add(time.Minute),
		IdleDeadline:     now.Add(time.Hour),
		RenewalDeadline:  now.Add(time.Hour),
	}
	assert.True(t, d.IsUsable(now))
	for step := time.Duration(0); step < 10*time.Minute; step += 17 * time.Second {
		at := now.Add(time.Minute + step)
		assert.True(t, d.IsAbsoluteExpired(at))
		assert.False(t, d.IsUsable(at))
	}
}

func TestSession_Accessors(t *testing.T) {
	t.Parallel()

	var nilSess *session.Session[profile]
	assert.Empty(t, nilSess.ID())

	sess := &session.Session[profile]{Data: session.Data[profile]{ID: "abc"}}
	assert.Equal(t, "abc", sess.ID())
	sess.Values().Visits++
	assert.Equal(t, 1, sess.Data.Values.Visits)
}

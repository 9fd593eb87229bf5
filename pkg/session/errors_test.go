package session_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	errs := session.Errors{
		{Kind: session.KindBadSignature},
		{Kind: session.KindNotRecoverable, Err: cause},
	}

	t.Run("has", func(t *testing.T) {
		t.Parallel()
		assert.True(t, errs.Has(session.KindBadSignature))
		assert.True(t, errs.Has(session.KindNotRecoverable))
		assert.False(t, errs[:1].Has(session.KindNotRecoverable))
	})

	t.Run("errors.Is through the composite", func(t *testing.T) {
		t.Parallel()
		var err error = errs
		assert.ErrorIs(t, err, session.ErrBadSignature)
		assert.ErrorIs(t, err, session.ErrNotRecoverable)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("message keeps order", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "session.bad_signature; session.not_recoverable: dial tcp: refused", errs.Error())
	})

	t.Run("empty set is nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, session.Errors(nil).Err())
		assert.Error(t, errs.Err())
	})

	t.Run("HasKind", func(t *testing.T) {
		t.Parallel()
		assert.False(t, session.HasKind(nil, session.KindBadSignature))
		assert.True(t, session.HasKind(fmt.Errorf("wrapped: %w", errs), session.KindNotRecoverable))
		single := &session.Error{Kind: session.KindNotRecoverable, Err: cause}
		assert.True(t, session.HasKind(single, session.KindNotRecoverable))
		assert.False(t, session.HasKind(single, session.KindBadSignature))
		assert.False(t, session.HasKind(cause, session.KindNotRecoverable))
	})

	t.Run("kind names", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "bad_signature", session.KindBadSignature.String())
		assert.Equal(t, "not_recoverable", session.KindNotRecoverable.String())
		assert.Equal(t, "unknown", session.Kind(0).String())
	})

	t.Run("errors.As finds the single error", func(t *testing.T) {
		t.Parallel()
		var e *session.Error
		require.ErrorAs(t, error(errs), &e)
		assert.Equal(t, session.KindBadSignature, e.Kind)
	})
}

package booking

import (
	"errors"
	"testing"

	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusNew:        "new",
		StatusProcessing: "processing",
		StatusReserved:   "reserved",
		StatusFinished:   "finished",
		StatusCancelled:  "cancelled",
		StatusUnknown:    "unknown",
		Status(42):       "unknown",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("valid codes round-trip", func(t *testing.T) {
		for _, code := range []string{"new", "processing", "reserved", "finished", "cancelled"} {
			status, err := ParseStatus(code)
			require.NoError(t, err)
			assert.Equal(t, code, status.String())
		}
	})

	t.Run("unknown code fails", func(t *testing.T) {
		_, err := ParseStatus("shipped")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatusValidate(t *testing.T) {
	assert.NoError(t, StatusNew.Validate())
	assert.Error(t, StatusUnknown.Validate())
	assert.Error(t, Status(42).Validate())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusFinished.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusNew.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusReserved.IsTerminal())
}

func TestStatusApply(t *testing.T) {
	t.Run("normal forward path", func(t *testing.T) {
		status, err := StatusNew.Apply(TransitionProcess)
		require.NoError(t, err)
		assert.Equal(t, StatusProcessing, status)

		status, err = status.Apply(TransitionFinish)
		require.NoError(t, err)
		assert.Equal(t, StatusFinished, status)
	})

	t.Run("reserved can process or finish", func(t *testing.T) {
		status, err := StatusReserved.Apply(TransitionProcess)
		require.NoError(t, err)
		assert.Equal(t, StatusProcessing, status)

		status, err = StatusReserved.Apply(TransitionFinish)
		require.NoError(t, err)
		assert.Equal(t, StatusFinished, status)
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		for _, from := range []Status{StatusNew, StatusProcessing, StatusReserved} {
			status, err := from.Apply(TransitionCancel)
			require.NoError(t, err)
			assert.Equal(t, StatusCancelled, status)
		}
	})

	t.Run("reaching the current state again is a no-op", func(t *testing.T) {
		status, err := StatusProcessing.Apply(TransitionProcess)
		require.NoError(t, err)
		assert.Equal(t, StatusProcessing, status)

		status, err = StatusCancelled.Apply(TransitionCancel)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, status)
	})

	t.Run("skipping states is illegal", func(t *testing.T) {
		_, err := StatusNew.Apply(TransitionFinish)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)

		var illegalErr *errs.IllegalTransitionError
		require.True(t, errors.As(err, &illegalErr))
		assert.Equal(t, "finish", illegalErr.Transition)
		assert.Equal(t, "new", illegalErr.From)
	})

	t.Run("terminal states reject everything else", func(t *testing.T) {
		_, err := StatusFinished.Apply(TransitionProcess)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)

		_, err = StatusFinished.Apply(TransitionCancel)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)

		_, err = StatusCancelled.Apply(TransitionProcess)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)

		_, err = StatusCancelled.Apply(TransitionFinish)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("unknown transition fails", func(t *testing.T) {
		_, err := StatusNew.Apply(Transition("ship"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid source state fails", func(t *testing.T) {
		_, err := StatusUnknown.Apply(TransitionProcess)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t, []Transition{TransitionProcess, TransitionCancel}, TransitionsFrom(StatusNew))
	assert.ElementsMatch(t, []Transition{TransitionFinish, TransitionCancel}, TransitionsFrom(StatusProcessing))
	assert.ElementsMatch(t,
		[]Transition{TransitionProcess, TransitionFinish, TransitionCancel},
		TransitionsFrom(StatusReserved))
	assert.Empty(t, TransitionsFrom(StatusFinished))
	assert.Empty(t, TransitionsFrom(StatusCancelled))
}

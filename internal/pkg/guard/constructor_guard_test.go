package guard_test

import (
	"errors"
	"testing"

	"orders/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("entity not constructed")

	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// Demonstrates embedding the guard in a value object so zero values fail
// validation while constructor-built instances pass.
func TestConstructorGuard_EmbeddedUsage(t *testing.T) {
	type flag struct {
		set   bool
		guard guard.ConstructorGuard
	}
	errFlagNotConstructed := errors.New("flag must be created via newFlag")
	newFlag := func(set bool) flag {
		return flag{set: set, guard: guard.NewConstructorGuard()}
	}

	built := newFlag(true)
	require.NoError(t, built.guard.Validate(errFlagNotConstructed))

	var zero flag
	assert.Equal(t, errFlagNotConstructed, zero.guard.Validate(errFlagNotConstructed))
}

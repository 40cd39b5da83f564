package kernel_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScope(t *testing.T) {
	vendorA := kernel.NewUUID()
	vendorB := kernel.NewUUID()

	t.Run("should create scope covering the given vendors", func(t *testing.T) {
		s, err := kernel.NewScope(vendorA, vendorB)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.Authorizes(vendorA))
		assert.True(t, s.Authorizes(vendorB))
		assert.False(t, s.Authorizes(kernel.NewUUID()))
	})

	t.Run("empty scope fails with Unauthorized", func(t *testing.T) {
		_, err := kernel.NewScope()

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("invalid vendor id is rejected", func(t *testing.T) {
		var zero kernel.UUID

		_, err := kernel.NewScope(zero)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s kernel.Scope

		require.Error(t, s.Validate())
	})
}

func TestScope_Narrow(t *testing.T) {
	vendorA := kernel.NewUUID()
	vendorB := kernel.NewUUID()
	s, err := kernel.NewScope(vendorA, vendorB)
	require.NoError(t, err)

	t.Run("narrows to a covered vendor", func(t *testing.T) {
		narrowed, narrowErr := s.Narrow(vendorA)

		require.NoError(t, narrowErr)
		assert.True(t, narrowed.Authorizes(vendorA))
		assert.False(t, narrowed.Authorizes(vendorB))
	})

	t.Run("fails with Unauthorized for an uncovered vendor", func(t *testing.T) {
		_, narrowErr := s.Narrow(kernel.NewUUID())

		require.ErrorIs(t, narrowErr, errs.ErrUnauthorized)
	})
}

func TestScope_VendorIDs(t *testing.T) {
	vendorA := kernel.NewUUID()
	vendorB := kernel.NewUUID()
	s, err := kernel.NewScope(vendorA, vendorB)
	require.NoError(t, err)

	first := s.VendorIDs()
	second := s.VendorIDs()

	assert.Len(t, first, 2)
	assert.Equal(t, first, second, "order must be deterministic")
}

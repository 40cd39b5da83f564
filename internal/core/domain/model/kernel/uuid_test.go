package kernel_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("new uuid is valid and unique", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("round trips through string", func(t *testing.T) {
		a := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(a.String())

		require.NoError(t, err)
		assert.True(t, a.IsEqual(parsed))
	})

	t.Run("round trips through bytes", func(t *testing.T) {
		a := kernel.NewUUID()
		raw := a.Bytes()

		parsed, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, a.IsEqual(parsed))
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
	})

	t.Run("rejects nil uuid bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var u kernel.UUID

		require.ErrorIs(t, u.Validate(), kernel.ErrUUIDIsNotConstructed)
	})
}

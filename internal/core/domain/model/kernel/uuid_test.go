package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const agentIDText = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, first.Validate())
	assert.NotEqual(t, uuid.Nil.String(), first.String())
	assert.False(t, first.IsEqual(second))
	assert.True(t, first.IsEqual(first))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepted forms", func(t *testing.T) {
		for _, input := range []string{
			agentIDText,
			"{" + agentIDText + "}",
			"urn:uuid:" + agentIDText,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)
			require.NoError(t, err, input)
			assert.Equal(t, agentIDText, id.String())
		}
	})

	t.Run("malformed path parameter", func(t *testing.T) {
		for _, input := range []string{
			"",
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			agentIDText + "-extra",
			"550e8400-e29b-41d4-a716-44665544000g",
		} {
			_, err := kernel.UUIDFromString(input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	stored := uuid.MustParse(agentIDText)

	id, err := kernel.UUIDFromBytes(stored[:])
	require.NoError(t, err)
	assert.Equal(t, agentIDText, id.String())
	assert.Equal(t, stored, id.Bytes())

	_, err = kernel.UUIDFromBytes(stored[:3])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid UUID format")

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_ZeroValue(t *testing.T) {
	var id kernel.UUID

	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
	assert.Equal(t, uuid.Nil.String(), id.String())
}

func TestUUID_RoundTrip(t *testing.T) {
	original := kernel.NewUUID()

	fromText, err := kernel.UUIDFromString(original.String())
	require.NoError(t, err)
	raw := original.Bytes()
	fromBytes, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)

	assert.True(t, original.IsEqual(fromText))
	assert.True(t, original.IsEqual(fromBytes))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "organledger/pkg/domain-errors"
)

// TestParseID_Invariants validates the parsing invariant:
// "IDs must be positive base-10 integers".
func TestParseID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseMatchID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := ParseCourierID("not-a-number")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := ParseTransportID("0")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects negatives", func(t *testing.T) {
		_, err := ParseRecipientID("-3")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts positive integers", func(t *testing.T) {
		id, err := ParseHospitalID("42")
		require.NoError(t, err)
		assert.Equal(t, HospitalID(42), id)
	})
}

// TestTypeDistinction documents the compile-time invariant: ID kinds are not
// interchangeable. If this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	matchID := MatchID(1)
	courierID := CourierID(1)

	// These would fail to compile if the types were interchangeable:
	// var _ MatchID = courierID   // compile error
	// var _ CourierID = matchID   // compile error

	assert.Equal(t, "1", matchID.String())
	assert.Equal(t, "1", courierID.String())
}

func TestPrincipal(t *testing.T) {
	assert.True(t, Principal("").Zero())
	assert.False(t, Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM").Zero())
}

package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetIntegerConstraints verifies the minimum/maximum boundaries calculated for signed and unsigned integers of
// varying bit lengths.
func TestGetIntegerConstraints(t *testing.T) {
	// Unsigned 8-bit integers span [0, 255]
	min, max := GetIntegerConstraints(false, 8)
	assert.EqualValues(t, 0, min.Int64())
	assert.EqualValues(t, 255, max.Int64())

	// Signed 8-bit integers span [-128, 127]
	min, max = GetIntegerConstraints(true, 8)
	assert.EqualValues(t, -128, min.Int64())
	assert.EqualValues(t, 127, max.Int64())

	// Unsigned 256-bit integers span [0, 2^256 - 1]
	min, max = GetIntegerConstraints(false, 256)
	expectedMax := big.NewInt(0).Sub(big.NewInt(0).Exp(big.NewInt(2), big.NewInt(256), nil), big.NewInt(1))
	assert.EqualValues(t, 0, min.Int64())
	assert.Zero(t, max.Cmp(expectedMax))
}

// TestConstrainIntegerToBitLength verifies that values out of range for a given bit length wrap around, simulating
// overflow and underflow, while in-range values are returned unchanged.
func TestConstrainIntegerToBitLength(t *testing.T) {
	// An in-range value is returned as-is.
	constrained := ConstrainIntegerToBitLength(big.NewInt(200), false, 8)
	assert.EqualValues(t, 200, constrained.Int64())

	// 256 overflows an unsigned 8-bit integer and wraps to zero.
	constrained = ConstrainIntegerToBitLength(big.NewInt(256), false, 8)
	assert.EqualValues(t, 0, constrained.Int64())

	// -1 underflows an unsigned 8-bit integer and wraps to 255.
	constrained = ConstrainIntegerToBitLength(big.NewInt(-1), false, 8)
	assert.EqualValues(t, 255, constrained.Int64())

	// 128 overflows a signed 8-bit integer and wraps to -128.
	constrained = ConstrainIntegerToBitLength(big.NewInt(128), true, 8)
	assert.EqualValues(t, -128, constrained.Int64())
}

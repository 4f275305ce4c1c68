package utils

import (
	"math/big"
)

// ConstrainIntegerToBounds takes a provided big integer and minimum/maximum bounds (inclusive) and ensures
// that the provided integer is represented in those bounds. In effect, this simulates overflow and underflow.
// Returns the constrained integer.
func ConstrainIntegerToBounds(b *big.Int, min *big.Int, max *big.Int) *big.Int {
	// Get the bounding range
	boundingRange := big.NewInt(0).Add(big.NewInt(0).Sub(max, min), big.NewInt(1))

	// On underflow/overflow we calculate the distance from the exceeded bound and determine how many wrap-arounds
	// (bounding ranges) must be applied to correct the value, using division with ceiling:
	// (distance + (boundingRange - 1)) / boundingRange. This way even an underflow of one wraps back around once.

	// Check underflow
	if b.Cmp(min) < 0 {
		distance := big.NewInt(0).Sub(min, b)
		correction := big.NewInt(0).Div(big.NewInt(0).Add(distance, big.NewInt(0).Sub(boundingRange, big.NewInt(1))), boundingRange)
		correction.Mul(correction, boundingRange)
		return big.NewInt(0).Add(b, correction)
	}

	// Check overflow
	if b.Cmp(max) > 0 {
		distance := big.NewInt(0).Sub(b, max)
		correction := big.NewInt(0).Div(big.NewInt(0).Add(distance, big.NewInt(0).Sub(boundingRange, big.NewInt(1))), boundingRange)
		correction.Mul(correction, boundingRange)
		return big.NewInt(0).Sub(b, correction)
	}

	// b is in range, return a copy of it
	return big.NewInt(0).Set(b)
}

// ConstrainIntegerToBitLength takes a provided big integer, signed indicator, and bit length and ensures that the
// provided integer is represented in those bounds. In effect, this simulates overflow and underflow.
// Returns the constrained integer.
func ConstrainIntegerToBitLength(b *big.Int, signed bool, bitLength int) *big.Int {
	// Calculate our min and max bounds for this integer.
	min, max := GetIntegerConstraints(signed, bitLength)

	// Constrain to the calculated bounds.
	return ConstrainIntegerToBounds(b, min, max)
}

// GetIntegerConstraints takes a given signed indicator and bit length for a prospective integer and determines the
// minimum/maximum value boundaries. Returns the minimum and maximum value for the provided integer properties.
// Minimums and maximums are inclusive.
func GetIntegerConstraints(signed bool, bitLength int) (*big.Int, *big.Int) {
	var min, max *big.Int
	if signed {
		// Set max as 2^(bitLen - 1) - 1
		max = big.NewInt(2)
		max.Exp(max, big.NewInt(int64(bitLength-1)), nil)
		max.Sub(max, big.NewInt(1))

		// Set min as -(2^(bitLen - 1))
		min = big.NewInt(0).Mul(max, big.NewInt(-1))
		min.Sub(min, big.NewInt(1))
	} else {
		// Set max as 2^bitLen - 1
		max = big.NewInt(2)
		max.Exp(max, big.NewInt(int64(bitLength)), nil)
		max.Sub(max, big.NewInt(1))

		// Set min as zero
		min = big.NewInt(0)
	}
	return min, max
}

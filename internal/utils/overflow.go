// Package utils holds size arithmetic shared by the dataset backends.
package utils

import (
	"fmt"
	"math"
)

// MaxAttributeSize limits the raw size of one attribute value to 64MB.
const MaxAttributeSize = 64 * 1024 * 1024

// SafeMultiply multiplies two uint64 values and returns the result if no overflow occurs.
func SafeMultiply(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}
	return a * b, nil
}

// ElementCount returns the number of elements of an array with the given
// shape. An empty shape is a scalar and holds one element.
func ElementCount(shape []uint64) (uint64, error) {
	total := uint64(1)
	for i, dim := range shape {
		var err error
		total, err = SafeMultiply(total, dim)
		if err != nil {
			return 0, fmt.Errorf("element count overflow at dimension %d: %w", i, err)
		}
	}
	return total, nil
}

// AttributeBytes returns the byte size of count elements of elemSize bytes,
// bounded by MaxAttributeSize.
func AttributeBytes(count uint64, elemSize uint32) (int, error) {
	size, err := SafeMultiply(count, uint64(elemSize))
	if err != nil {
		return 0, err
	}
	if size > MaxAttributeSize {
		return 0, fmt.Errorf("attribute size %d exceeds maximum %d", size, MaxAttributeSize)
	}
	return int(size), nil
}

package util

import (
	"testing"
)

func TestCompare1DInt32(t *testing.T) {
	a := []int32{1, 2, 3}
	b := []int32{1, 2, 3}

	if !Compare1DInt32(a, b) {
		t.Error("equal slices compare unequal")
	}

	b[1] = 4
	if Compare1DInt32(a, b) {
		t.Error("unequal slices compare equal")
	}

	if Compare1DInt32(a, b[:2]) {
		t.Error("slices of different length compare equal")
	}
}

func TestCopy1DInt32(t *testing.T) {
	a := []int32{5, -6, 7}
	b := Copy1DInt32(a)

	if !Compare1DInt32(a, b) {
		t.Error("copy differs from original")
	}

	b[0] = 0
	if a[0] != 5 {
		t.Error("copy aliases original")
	}
}

package util

func Compare1DInt32(i1, i2 []int32) bool {
	if len(i1) != len(i2) {
		return false
	}
	for i := range i1 {
		if i1[i] != i2[i] {
			return false
		}
	}
	return true
}

func Compare1DInt64(i1, i2 []int64) bool {
	if len(i1) != len(i2) {
		return false
	}
	for i := range i1 {
		if i1[i] != i2[i] {
			return false
		}
	}
	return true
}

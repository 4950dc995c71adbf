package util

func Copy1DInt32(i []int32) []int32 {
	o := make([]int32, len(i))
	copy(o, i)
	return o
}

func Copy1DInt64(i []int64) []int64 {
	o := make([]int64, len(i))
	copy(o, i)
	return o
}

package encoding

// Diff applies n rounds of first differencing to data in place. Arithmetic
// wraps around in int32, which makes Integrate an exact inverse over the
// full value range.
func Diff(data []int32, n int) {
	for r := 0; r < n; r++ {
		for i := len(data) - 1; i >= 1; i-- {
			data[i] -= data[i-1]
		}
	}
}

// Integrate reverts n rounds of differencing in place.
func Integrate(data []int32, n int) {
	for r := 0; r < n; r++ {
		for i := 1; i < len(data); i++ {
			data[i] += data[i-1]
		}
	}
}

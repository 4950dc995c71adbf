package gse

// checksumModulo is fixed by the GSE format definition.
const checksumModulo = 100000000

// Checksum computes the integrity value recorded in a block's checksum
// record: a signed sum over all samples where both the sample and the
// running sum are reduced modulo 1e8 whenever their magnitude reaches the
// modulus, with the absolute value taken at the end.
func Checksum(data []int32) int32 {
	var sum int32

	for _, v := range data {
		if v >= checksumModulo || v <= -checksumModulo {
			v %= checksumModulo
		}
		sum += v
		if sum >= checksumModulo || sum <= -checksumModulo {
			sum %= checksumModulo
		}
	}

	if sum < 0 {
		return -sum
	}
	return sum
}

// VerifyChecksum reports whether recorded matches the checksum of data.
func VerifyChecksum(data []int32, recorded int32) bool {
	return Checksum(data) == recorded
}

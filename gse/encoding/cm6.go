package encoding

import (
	"math"
)

// CM6Decoder decodes the 6-bit compressed sample representation. It is fed
// one payload line at a time so the caller can stop at the trailing
// checksum record without lookahead into the payload itself.
type CM6Decoder struct {
	want int
	vals []int32
	mag  int64
	neg  bool
	// mid is set while a value is only partially accumulated
	mid bool
}

func NewCM6Decoder(numSamples int) *CM6Decoder {
	return &CM6Decoder{
		want: numSamples,
		vals: make([]int32, 0, numSamples),
	}
}

func (d *CM6Decoder) Feed(line []byte) error {
	for _, c := range line {
		if c == ' ' || c == '\t' {
			continue
		}

		k := lookup[c]
		if k < 0 {
			return ErrBadCharacter
		}

		if !d.mid {
			if len(d.vals) == d.want {
				return ErrLongPayload
			}
			d.neg = k&flagSign != 0
			d.mag = int64(k & 0x0f)
			d.mid = true
		} else {
			d.mag = d.mag<<5 | int64(k&0x1f)
			if d.mag > math.MaxInt32+1 {
				return ErrOverflow
			}
		}

		if k&flagContinue == 0 {
			v := d.mag
			if d.neg {
				v = -v
			}
			if v < math.MinInt32 || v > math.MaxInt32 {
				return ErrOverflow
			}
			d.vals = append(d.vals, int32(v))
			d.mid = false
		}
	}
	return nil
}

func (d *CM6Decoder) Done() bool {
	return len(d.vals) == d.want && !d.mid
}

func (d *CM6Decoder) Missing() int {
	n := d.want - len(d.vals)
	if n == 0 && d.mid {
		return 1
	}
	return n
}

func (d *CM6Decoder) Values() []int32 {
	return d.vals
}

// AppendCM6 appends the 6-bit representation of a single value to dst.
func AppendCM6(dst []byte, v int32) []byte {
	m := int64(v)
	neg := m < 0
	if neg {
		m = -m
	}

	// the first character carries four magnitude bits, every further
	// character five
	n := 1
	for lim := int64(1 << 4); m >= lim && n < 7; n++ {
		lim <<= 5
	}

	for i := 0; i < n; i++ {
		shift := uint(5 * (n - 1 - i))
		var c int64

		if i == 0 {
			c = (m >> shift) & 0x0f
			if neg {
				c |= flagSign
			}
		} else {
			c = (m >> shift) & 0x1f
		}

		if i != n-1 {
			c |= flagContinue
		}

		dst = append(dst, charset[c])
	}

	return dst
}

// EncodeCM6 returns the unwrapped 6-bit character stream for data.
func EncodeCM6(data []int32) []byte {
	// two characters per sample is a good fit for differenced field data
	buf := make([]byte, 0, 2*len(data))
	for _, v := range data {
		buf = AppendCM6(buf, v)
	}
	return buf
}

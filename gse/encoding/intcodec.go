package encoding

import (
	"bytes"
	"strconv"
)

// IntDecoder decodes the uncompressed integer sample representation
// (sub-formats INT and INTV), whitespace separated ASCII integers.
type IntDecoder struct {
	want int
	vals []int32
}

func NewIntDecoder(numSamples int) *IntDecoder {
	return &IntDecoder{
		want: numSamples,
		vals: make([]int32, 0, numSamples),
	}
}

func (d *IntDecoder) Feed(line []byte) error {
	for _, field := range bytes.Fields(line) {
		if len(d.vals) == d.want {
			return ErrLongPayload
		}

		v, err := strconv.ParseInt(string(field), 10, 32)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return ErrOverflow
			}
			return ErrBadCharacter
		}

		d.vals = append(d.vals, int32(v))
	}
	return nil
}

func (d *IntDecoder) Done() bool {
	return len(d.vals) == d.want
}

func (d *IntDecoder) Missing() int {
	return d.want - len(d.vals)
}

func (d *IntDecoder) Values() []int32 {
	return d.vals
}

// intsPerLine is the number of samples per output line for INT data
const intsPerLine = 8

// EncodeInt formats data as ASCII integer lines.
func EncodeInt(data []int32) []byte {
	var buf bytes.Buffer

	for i, v := range data {
		if i%intsPerLine != 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.FormatInt(int64(v), 10))
		if i%intsPerLine == intsPerLine-1 || i == len(data)-1 {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}

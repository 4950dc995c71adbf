// Package encoding converts between the on-disk sample representations of
// the GSE waveform formats and flat int32 sample slices. The compressed
// CM6 representation stores differenced values as 6-bit characters; the
// INT representation stores plain ASCII integers.
package encoding

import (
	"errors"
)

// characters of the 6-bit alphabet, in code order
const charset = "+-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	// bit 5 marks a continuation character
	flagContinue = 0x20
	// bit 4 marks a negative value on the first character
	flagSign = 0x10
)

// LineWidth is the maximum number of payload characters per output line.
const LineWidth = 80

var (
	ErrBadCharacter = errors.New("invalid compression character")
	ErrLongPayload  = errors.New("payload exceeds declared sample count")
	ErrOverflow     = errors.New("decoded value exceeds 32 bit integer range")
)

// code lookup table, -1 for characters outside the alphabet
var lookup [256]int8

func init() {
	for i := range lookup {
		lookup[i] = -1
	}
	for i := 0; i < len(charset); i++ {
		lookup[charset[i]] = int8(i)
	}
}

// SampleDecoder accumulates decoded samples from successive payload lines.
type SampleDecoder interface {
	// Feed decodes one payload line
	Feed(line []byte) error
	// Done reports whether all declared samples are complete
	Done() bool
	// Missing returns the number of samples still outstanding
	Missing() int
	// Values returns the decoded samples, valid once Done
	Values() []int32
}

package gse

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/seisio/gsewave/gse/encoding"
	"github.com/seisio/gsewave/pkg/linescan"
)

// ReadOptions control a single block read.
type ReadOptions struct {
	// Verify checks the recorded checksum against the decoded samples
	Verify bool
	// HeadOnly drops the samples after decoding; the cursor still ends up
	// exactly where a full read would leave it
	HeadOnly bool
}

// WriteOptions control a single block write.
type WriteOptions struct {
	// Inplace lets the sample codec difference the block's Data slice
	// directly instead of working on a copy. The caller's sample values
	// are not preserved.
	Inplace bool
}

// Format is one member of the GSE format family. A format classifies a
// block by its first line, parses and serializes the block's header lines,
// and frames its payload and checksum record.
type Format interface {
	Name() string
	// Detect reports whether line opens a block of this format.
	// It must not consume anything.
	Detect(line []byte) bool
	// Read consumes one full block starting at the scanner position,
	// leaving the scanner at the first line after the block.
	Read(s *linescan.Scanner, opt ReadOptions) (*Block, error)
	// Write serializes one block.
	Write(w io.Writer, b *Block, opt WriteOptions) error
}

// GSE2 returns the codec for the current GSE2 format.
func GSE2() Format { return gse2Format{} }

// GSE1 returns the codec for the legacy GSE1 format.
func GSE1() Format { return gse1Format{} }

// DefaultFormats returns a fresh registry holding all supported formats,
// in detection order.
func DefaultFormats() []Format {
	return []Format{gse2Format{}, gse1Format{}}
}

// Sniff peeks at the first line of br and returns the format that claims
// it, if any. Nothing is consumed.
func Sniff(br *bufio.Reader, formats []Format) (Format, bool) {
	buf, _ := br.Peek(sniffLen)
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		buf = buf[:i]
	}

	for _, f := range formats {
		if f.Detect(buf) {
			return f, true
		}
	}
	return nil, false
}

const sniffLen = 128

// field returns the trimmed slice of line between the given columns,
// tolerating short lines.
func field(line []byte, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return strings.TrimSpace(string(line[from:to]))
}

func parseIntField(line []byte, from, to int, name string, lineno int) (int, error) {
	s := field(line, from, to)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FormatError{Line: lineno, Field: name, Msg: "not an integer: " + strconv.Quote(s)}
	}
	return v, nil
}

func parseFloatField(line []byte, from, to int, name string, lineno int) (float64, error) {
	s := field(line, from, to)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Line: lineno, Field: name, Msg: "not a number: " + strconv.Quote(s)}
	}
	return v, nil
}

// newSampleDecoder picks the sample codec for a header's sub-format.
func newSampleDecoder(h *Header, lineno int) (encoding.SampleDecoder, error) {
	switch h.DataFormat {
	case "CM6", "CMP6":
		return encoding.NewCM6Decoder(h.NumSamples), nil
	case "INT", "INTV":
		return encoding.NewIntDecoder(h.NumSamples), nil
	}
	return nil, &FormatError{Line: lineno, Field: "datatype", Msg: "unsupported sub-format " + strconv.Quote(h.DataFormat)}
}

// feedErr maps a sample codec error to the block-level error taxonomy.
func feedErr(err error, lineno int) error {
	return &FormatError{Line: lineno, Field: "data", Msg: err.Error()}
}

func truncMsg(missing int) string {
	return fmt.Sprintf("payload incomplete, %d samples missing", missing)
}

// writeWrapped emits buf as payload lines of at most LineWidth characters.
func writeWrapped(lw *linescan.Writer, buf []byte) error {
	for len(buf) > 0 {
		n := encoding.LineWidth
		if n > len(buf) {
			n = len(buf)
		}
		if err := lw.WriteLine(buf[:n]); err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// checkRange rejects samples the compressed sub-formats cannot represent.
// Nothing may be written for the block if this fails.
func checkRange(data []int32) error {
	for i, v := range data {
		if v > MaxSampleValue || v < -MaxSampleValue {
			return &RangeError{Index: i, Value: v}
		}
	}
	return nil
}

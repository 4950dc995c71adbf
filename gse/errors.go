package gse

import (
	"fmt"
	"time"
)

// FormatError reports an unrecognized or malformed header tag or field.
type FormatError struct {
	Line  int
	Field string
	Msg   string
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: field %s: %s", e.Line, e.Field, e.Msg)
}

// TruncationError reports a payload or checksum record shorter than the
// header declares.
type TruncationError struct {
	Line int
	Msg  string
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ChecksumError reports a mismatch between the checksum recorded in a
// block and the value computed from its samples.
type ChecksumError struct {
	Station   string
	Channel   string
	StartTime time.Time
	Recorded  int32
	Computed  int32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s/%s at %s: recorded %d, computed %d",
		e.Station, e.Channel, e.StartTime.UTC().Format("2006-01-02T15:04:05.000"),
		e.Recorded, e.Computed)
}

// RangeError reports a sample value that cannot be written in the
// compressed sub-formats.
type RangeError struct {
	Index int
	Value int32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("sample %d out of range: |%d| exceeds %d", e.Index, e.Value, MaxSampleValue)
}

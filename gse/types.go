// Package gse reads and writes seismic waveform files in the GSE2 and
// legacy GSE1 formats. A file is a plain concatenation of blocks, each made
// of a textual header, a compressed integer sample payload and a trailing
// checksum record.
package gse

import (
	"time"
)

// MaxSampleValue is the largest sample magnitude the compressed sub-formats
// guarantee to round-trip. Values beyond it are rejected on write.
const MaxSampleValue = 1 << 26

// Header holds the identification, timing and sampling fields of one
// waveform block.
type Header struct {
	Station string
	Channel string
	// auxiliary identification code (GSE2)
	AuxID     string
	StartTime time.Time
	// sample rate in Hz
	SampleRate float64
	NumSamples int
	// sample sub-format: CM6 or INT for GSE2, CMP6 or INTV for GSE1
	DataFormat string
	// number of differencing rounds applied before compression,
	// carried by the GSE1 header; GSE2 CM6 data is always differenced twice
	Diffs int
	// calibration factor and period
	Calib  float64
	Calper float64
	// instrument type, horizontal and vertical orientation (GSE2)
	Instype string
	Hang    float64
	Vang    float64
	// system type and extended channel id (GSE1)
	SystemType string
	ChannelID  string
	// block tag as found in the stream: WID2, WID1 or XW01
	Tag string
}

// NewHeader returns a header with the usual GSE2 defaults filled in.
func NewHeader(station, channel string, start time.Time, rate float64) Header {
	return Header{
		Station:    station,
		Channel:    channel,
		StartTime:  start,
		SampleRate: rate,
		DataFormat: "CM6",
		Diffs:      2,
		Calib:      1.0,
		Calper:     1.0,
		Hang:       -1.0,
		Vang:       -1.0,
		Tag:        "WID2",
	}
}

// Block is one self-contained waveform record. Data is nil after a
// header-only read. Checksum carries the value recorded in the stream.
type Block struct {
	Header   Header
	Data     []int32
	Checksum int32
}

package gse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/seisio/gsewave/gse/encoding"
	"github.com/seisio/gsewave/pkg/linescan"
)

// gse1Format implements the legacy GSE1 waveform format: a WID1 (or XW01)
// header line, a second line carrying the calibration, the sample payload
// and a bare integer checksum line. There is no DAT section marker.
type gse1Format struct{}

func (gse1Format) Name() string {
	return "GSE1"
}

func (gse1Format) Detect(line []byte) bool {
	return bytes.HasPrefix(line, []byte("WID1")) || bytes.HasPrefix(line, []byte("XW01"))
}

// WID1 field columns, from the GSE1 provisional format definition
//
//	WID1 2005243 02 33 49 850     750 RJOB   RJOB_Z   SZ 200.0000000 LE-3D  CMP6 2
const (
	wid1Date      = 5
	wid1Hour      = 13
	wid1Min       = 16
	wid1Sec       = 19
	wid1Msec      = 22
	wid1Samps     = 26
	wid1Station   = 35
	wid1ChannelID = 42
	wid1Channel   = 51
	wid1Rate      = 54
	wid1Systype   = 66
	wid1Format    = 73
	wid1Diff      = 78
	wid1End       = 79
)

func parseWID1(line []byte, lineno int) (Header, error) {
	h := Header{
		Tag: field(line, 0, 4),
	}

	year, err := parseIntField(line, wid1Date, wid1Date+4, "date", lineno)
	if err != nil {
		return h, err
	}
	julday, err := parseIntField(line, wid1Date+4, wid1Date+7, "date", lineno)
	if err != nil {
		return h, err
	}
	if julday < 1 || julday > 366 {
		return h, &FormatError{Line: lineno, Field: "date", Msg: "day of year out of range"}
	}
	hour, err := parseIntField(line, wid1Hour, wid1Hour+2, "time", lineno)
	if err != nil {
		return h, err
	}
	min, err := parseIntField(line, wid1Min, wid1Min+2, "time", lineno)
	if err != nil {
		return h, err
	}
	sec, err := parseIntField(line, wid1Sec, wid1Sec+2, "time", lineno)
	if err != nil {
		return h, err
	}
	msec, err := parseIntField(line, wid1Msec, wid1Msec+3, "time", lineno)
	if err != nil {
		return h, err
	}

	// time.Date normalizes the day-of-year into month and day
	h.StartTime = time.Date(year, time.January, julday, hour, min, sec, msec*int(time.Millisecond), time.UTC)

	if h.NumSamples, err = parseIntField(line, wid1Samps, wid1Station-1, "samps", lineno); err != nil {
		return h, err
	}
	if h.NumSamples < 0 {
		return h, &FormatError{Line: lineno, Field: "samps", Msg: "negative sample count"}
	}

	h.Station = field(line, wid1Station, wid1ChannelID-1)
	h.ChannelID = field(line, wid1ChannelID, wid1Channel-1)
	h.Channel = field(line, wid1Channel, wid1Rate-1)

	if h.SampleRate, err = parseFloatField(line, wid1Rate, wid1Systype-1, "samprat", lineno); err != nil {
		return h, err
	}
	if h.SampleRate <= 0 {
		return h, &FormatError{Line: lineno, Field: "samprat", Msg: "sample rate must be positive"}
	}

	h.SystemType = field(line, wid1Systype, wid1Format-1)
	h.DataFormat = field(line, wid1Format, wid1Diff-1)

	if s := field(line, wid1Diff, wid1End); s != "" {
		h.Diffs, err = strconv.Atoi(s)
		if err != nil || h.Diffs < 0 || h.Diffs > 2 {
			return h, &FormatError{Line: lineno, Field: "diff", Msg: "invalid differencing flag " + strconv.Quote(s)}
		}
	}

	return h, nil
}

// the second header line carries the calibration gain and period
func parseWID1Cal(line []byte, lineno int) (calib, calper float64, err error) {
	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return 0, 0, &FormatError{Line: lineno, Field: "calibration", Msg: "short calibration line"}
	}

	if calib, err = parseFloatField(fields[0], 0, len(fields[0]), "calib", lineno); err != nil {
		return 0, 0, err
	}
	if calper, err = parseFloatField(fields[1], 0, len(fields[1]), "calper", lineno); err != nil {
		return 0, 0, err
	}
	return calib, calper, nil
}

func formatWID1(h *Header) string {
	t := h.StartTime.UTC()

	return fmt.Sprintf("%-4s %04d%03d %02d %02d %02d %03d %8d %-6s %-8s %-2s %11.7f %-6s %-4s %d\n",
		h.Tag, t.Year(), t.YearDay(), t.Hour(), t.Minute(), t.Second(),
		t.Nanosecond()/int(time.Millisecond), h.NumSamples, h.Station,
		h.ChannelID, h.Channel, h.SampleRate, h.SystemType, h.DataFormat, h.Diffs)
}

func (f gse1Format) Read(s *linescan.Scanner, opt ReadOptions) (*Block, error) {
	line, err := s.ReadLine()
	if err != nil {
		return nil, err
	}

	hdr, err := parseWID1(line, s.Line())
	if err != nil {
		return nil, err
	}

	line, err = s.ReadLine()
	if err == io.EOF {
		return nil, &TruncationError{Line: s.Line(), Msg: "missing calibration line"}
	}
	if err != nil {
		return nil, err
	}
	if hdr.Calib, hdr.Calper, err = parseWID1Cal(line, s.Line()); err != nil {
		return nil, err
	}

	dec, err := newSampleDecoder(&hdr, s.Line())
	if err != nil {
		return nil, err
	}

	// the payload has no end marker; it runs until the declared sample
	// count is complete, then the next line is the checksum
	for !dec.Done() {
		line, err = s.ReadLine()
		if err == io.EOF {
			return nil, &TruncationError{Line: s.Line(), Msg: truncMsg(dec.Missing())}
		}
		if err != nil {
			return nil, err
		}
		if err = dec.Feed(line); err != nil {
			return nil, feedErr(err, s.Line())
		}
	}

	line, err = s.ReadLine()
	if err == io.EOF {
		return nil, &TruncationError{Line: s.Line(), Msg: "missing checksum line"}
	}
	if err != nil {
		return nil, err
	}
	recorded, err := parseIntField(line, 0, len(line), "checksum", s.Line())
	if err != nil {
		return nil, err
	}

	data := dec.Values()
	if hdr.DataFormat == "CMP6" {
		encoding.Integrate(data, hdr.Diffs)
	}

	blk := &Block{Header: hdr, Data: data, Checksum: int32(recorded)}

	if opt.Verify && !opt.HeadOnly {
		if computed := Checksum(data); computed != int32(recorded) {
			return nil, &ChecksumError{
				Station:   hdr.Station,
				Channel:   hdr.Channel,
				StartTime: hdr.StartTime,
				Recorded:  int32(recorded),
				Computed:  computed,
			}
		}
	}
	if opt.HeadOnly {
		blk.Data = nil
	}

	return blk, nil
}

func (f gse1Format) Write(w io.Writer, b *Block, opt WriteOptions) error {
	hdr := b.Header
	if hdr.Tag != "XW01" {
		hdr.Tag = "WID1"
	}

	// normalize sub-format names of blocks read from a GSE2 stream
	switch hdr.DataFormat {
	case "", "CMP6", "CM6":
		hdr.DataFormat = "CMP6"
	default:
		hdr.DataFormat = "INTV"
		hdr.Diffs = 0
	}
	hdr.NumSamples = len(b.Data)

	data := b.Data
	if hdr.DataFormat == "CMP6" {
		if err := checkRange(data); err != nil {
			return err
		}
	}

	chk := Checksum(data)

	if !opt.Inplace {
		data = append([]int32(nil), data...)
	}

	lw := linescan.NewWriter(w)

	if err := lw.Printf("%s", formatWID1(&hdr)); err != nil {
		return err
	}
	if err := lw.Printf("%10.2e %7.3f\n", hdr.Calib, hdr.Calper); err != nil {
		return err
	}

	switch hdr.DataFormat {
	case "CMP6":
		encoding.Diff(data, hdr.Diffs)
		if err := writeWrapped(lw, encoding.EncodeCM6(data)); err != nil {
			return err
		}
	default:
		if err := lw.Printf("%s", encoding.EncodeInt(data)); err != nil {
			return err
		}
	}

	if err := lw.Printf("%8d\n", chk); err != nil {
		return err
	}

	return lw.Flush()
}

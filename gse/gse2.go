package gse

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/seisio/gsewave/gse/encoding"
	"github.com/seisio/gsewave/pkg/linescan"
)

// gse2Format implements the current GSE2 waveform format: a WID2 header
// line, optional extension lines, a DAT2 section with the sample payload
// and a trailing CHK2 record.
type gse2Format struct{}

func (gse2Format) Name() string {
	return "GSE2"
}

func (gse2Format) Detect(line []byte) bool {
	return bytes.HasPrefix(line, []byte("WID2"))
}

// WID2 field columns, from the GSE2.0 definition
//
//	WID2 2005/08/31 02:33:49.850 RJOB  Z    BW   CM6      750   200.000000   9.49e-02   1.000 LE-3D    -1.0 -1.0
const (
	wid2Date    = 5
	wid2Time    = 16
	wid2Station = 29
	wid2Channel = 35
	wid2AuxID   = 39
	wid2Format  = 44
	wid2Samps   = 48
	wid2Rate    = 57
	wid2Calib   = 69
	wid2Calper  = 80
	wid2Instype = 88
	wid2Hang    = 95
	wid2Vang    = 101
	wid2End     = 105
)

func parseWID2(line []byte, lineno int) (Header, error) {
	h := Header{
		Tag:   "WID2",
		Diffs: 2,
	}

	var err error
	if h.StartTime, err = parseWID2Time(line, lineno); err != nil {
		return h, err
	}

	h.Station = field(line, wid2Station, wid2Channel-1)
	h.Channel = field(line, wid2Channel, wid2AuxID-1)
	h.AuxID = field(line, wid2AuxID, wid2Format-1)
	h.DataFormat = field(line, wid2Format, wid2Samps-1)
	if h.DataFormat != "CM6" {
		h.Diffs = 0
	}

	if h.NumSamples, err = parseIntField(line, wid2Samps, wid2Rate-1, "samps", lineno); err != nil {
		return h, err
	}
	if h.NumSamples < 0 {
		return h, &FormatError{Line: lineno, Field: "samps", Msg: "negative sample count"}
	}
	if h.SampleRate, err = parseFloatField(line, wid2Rate, wid2Calib-1, "samprat", lineno); err != nil {
		return h, err
	}
	if h.SampleRate <= 0 {
		return h, &FormatError{Line: lineno, Field: "samprat", Msg: "sample rate must be positive"}
	}

	// calibration and orientation fields are optional
	if field(line, wid2Calib, wid2Calper-1) != "" {
		if h.Calib, err = parseFloatField(line, wid2Calib, wid2Calper-1, "calib", lineno); err != nil {
			return h, err
		}
	}
	if field(line, wid2Calper, wid2Instype-1) != "" {
		if h.Calper, err = parseFloatField(line, wid2Calper, wid2Instype-1, "calper", lineno); err != nil {
			return h, err
		}
	}
	h.Instype = field(line, wid2Instype, wid2Hang-1)
	if field(line, wid2Hang, wid2Vang-1) != "" {
		if h.Hang, err = parseFloatField(line, wid2Hang, wid2Vang-1, "hang", lineno); err != nil {
			return h, err
		}
	}
	if field(line, wid2Vang, wid2End) != "" {
		if h.Vang, err = parseFloatField(line, wid2Vang, wid2End, "vang", lineno); err != nil {
			return h, err
		}
	}

	return h, nil
}

func parseWID2Time(line []byte, lineno int) (time.Time, error) {
	year, err := parseIntField(line, wid2Date, wid2Date+4, "date", lineno)
	if err != nil {
		return time.Time{}, err
	}
	month, err := parseIntField(line, wid2Date+5, wid2Date+7, "date", lineno)
	if err != nil {
		return time.Time{}, err
	}
	day, err := parseIntField(line, wid2Date+8, wid2Date+10, "date", lineno)
	if err != nil {
		return time.Time{}, err
	}
	hour, err := parseIntField(line, wid2Time, wid2Time+2, "time", lineno)
	if err != nil {
		return time.Time{}, err
	}
	min, err := parseIntField(line, wid2Time+3, wid2Time+5, "time", lineno)
	if err != nil {
		return time.Time{}, err
	}
	sec, err := parseFloatField(line, wid2Time+6, wid2Station-1, "time", lineno)
	if err != nil {
		return time.Time{}, err
	}
	if sec < 0 || sec >= 61 {
		return time.Time{}, &FormatError{Line: lineno, Field: "time", Msg: "seconds out of range"}
	}

	isec := int(sec)
	msec := int((sec-float64(isec))*1e3 + 0.5)

	t := time.Date(year, time.Month(month), day, hour, min, isec, msec*int(time.Millisecond), time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, &FormatError{Line: lineno, Field: "date", Msg: "invalid calendar date"}
	}
	return t, nil
}

func formatWID2(h *Header) string {
	t := h.StartTime.UTC()
	date := fmt.Sprintf("%s.%03d", t.Format("2006/01/02 15:04:05"), t.Nanosecond()/int(time.Millisecond))

	return fmt.Sprintf("WID2 %s %-5s %-3s %-4s %-3s %8d %11.6f %10.2e %7.3f %-6s %5.1f %4.1f\n",
		date, h.Station, h.Channel, h.AuxID, h.DataFormat, h.NumSamples,
		h.SampleRate, h.Calib, h.Calper, h.Instype, h.Hang, h.Vang)
}

func (f gse2Format) Read(s *linescan.Scanner, opt ReadOptions) (*Block, error) {
	line, err := s.ReadLine()
	if err != nil {
		return nil, err
	}

	hdr, err := parseWID2(line, s.Line())
	if err != nil {
		return nil, err
	}

	// skip extension lines (STA2 and friends) up to the data section
	for {
		line, err = s.ReadLine()
		if err == io.EOF {
			return nil, &TruncationError{Line: s.Line(), Msg: "missing DAT2 section"}
		}
		if err != nil {
			return nil, err
		}
		if bytes.HasPrefix(line, []byte("DAT2")) {
			break
		}
		if bytes.HasPrefix(line, []byte("CHK2")) || bytes.HasPrefix(line, []byte("WID2")) {
			return nil, &TruncationError{Line: s.Line(), Msg: "missing DAT2 section"}
		}
	}

	dec, err := newSampleDecoder(&hdr, s.Line())
	if err != nil {
		return nil, err
	}

	var recorded int32
	for {
		line, err = s.ReadLine()
		if err == io.EOF {
			return nil, &TruncationError{Line: s.Line(), Msg: "missing CHK2 record"}
		}
		if err != nil {
			return nil, err
		}

		if bytes.HasPrefix(line, []byte("CHK2")) {
			if recorded, err = parseCHK2(line, s.Line()); err != nil {
				return nil, err
			}
			break
		}

		if err = dec.Feed(line); err != nil {
			return nil, feedErr(err, s.Line())
		}
	}

	if !dec.Done() {
		return nil, &TruncationError{Line: s.Line(), Msg: truncMsg(dec.Missing())}
	}

	data := dec.Values()
	encoding.Integrate(data, hdr.Diffs)

	blk := &Block{Header: hdr, Data: data, Checksum: recorded}

	if opt.Verify && !opt.HeadOnly {
		if computed := Checksum(data); computed != recorded {
			return nil, &ChecksumError{
				Station:   hdr.Station,
				Channel:   hdr.Channel,
				StartTime: hdr.StartTime,
				Recorded:  recorded,
				Computed:  computed,
			}
		}
	}
	if opt.HeadOnly {
		blk.Data = nil
	}

	return blk, nil
}

func parseCHK2(line []byte, lineno int) (int32, error) {
	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return 0, &FormatError{Line: lineno, Field: "checksum", Msg: "missing value in CHK2 record"}
	}
	v, err := parseIntField(fields[1], 0, len(fields[1]), "checksum", lineno)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (f gse2Format) Write(w io.Writer, b *Block, opt WriteOptions) error {
	hdr := b.Header
	hdr.Tag = "WID2"

	// normalize sub-format names of blocks read from a GSE1 stream
	switch hdr.DataFormat {
	case "", "CM6", "CMP6":
		hdr.DataFormat = "CM6"
	default:
		hdr.DataFormat = "INT"
	}
	hdr.NumSamples = len(b.Data)

	data := b.Data
	diffs := 0
	if hdr.DataFormat == "CM6" {
		diffs = 2
		if err := checkRange(data); err != nil {
			return err
		}
	}

	chk := Checksum(data)

	if !opt.Inplace {
		data = append([]int32(nil), data...)
	}

	lw := linescan.NewWriter(w)

	if err := lw.Printf("%s", formatWID2(&hdr)); err != nil {
		return err
	}
	if err := lw.WriteLine([]byte("DAT2")); err != nil {
		return err
	}

	encoding.Diff(data, diffs)

	switch hdr.DataFormat {
	case "CM6":
		if err := writeWrapped(lw, encoding.EncodeCM6(data)); err != nil {
			return err
		}
	default:
		if err := lw.Printf("%s", encoding.EncodeInt(data)); err != nil {
			return err
		}
	}

	if err := lw.Printf("CHK2 %8d\n\n", chk); err != nil {
		return err
	}

	return lw.Flush()
}

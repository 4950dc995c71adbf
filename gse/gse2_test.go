package gse

import (
	"testing"
	"time"
)

func TestWID2RoundTrip(t *testing.T) {
	headers := []Header{
		NewHeader("RJOB", "Z", time.Date(2005, 8, 31, 2, 33, 49, 850*int(time.Millisecond), time.UTC), 200),
		NewHeader("GEC2", "SHZ", time.Date(1997, 1, 1, 0, 0, 0, 0, time.UTC), 62.5),
		NewHeader("A", "BHN", time.Date(2026, 12, 31, 23, 59, 59, 999*int(time.Millisecond), time.UTC), 0.05),
	}
	headers[0].Instype = "LE-3D"
	headers[0].AuxID = "BW"
	headers[1].NumSamples = 3000
	headers[1].Calib = 0.0949
	headers[1].Calper = 1.25
	headers[2].Hang = 0.0
	headers[2].Vang = 90.0

	for i, h := range headers {
		line := formatWID2(&h)

		got, err := parseWID2([]byte(line[:len(line)-1]), 1)
		if err != nil {
			t.Errorf("header %d: %v", i, err)
			continue
		}

		if got != h {
			t.Errorf("header %d: round trip mismatch\n in: %#v\nout: %#v\nline: %q", i, h, got, line)
		}
	}
}

func TestParseWID2Example(t *testing.T) {
	line := "WID2 2005/08/31 02:33:49.850 RJOB  Z        CM6      750  200.000000   9.49e-02   1.000 LE-3D   -1.0 -1.0"

	h, err := parseWID2([]byte(line), 1)
	if err != nil {
		t.Fatal(err)
	}

	if h.Station != "RJOB" || h.Channel != "Z" || h.DataFormat != "CM6" {
		t.Errorf("identity fields wrong: %q %q %q", h.Station, h.Channel, h.DataFormat)
	}
	if h.NumSamples != 750 {
		t.Errorf("samps = %d, want 750", h.NumSamples)
	}
	if h.SampleRate != 200 {
		t.Errorf("samprat = %v, want 200", h.SampleRate)
	}
	if h.Calib != 0.0949 || h.Calper != 1 {
		t.Errorf("calibration wrong: %v %v", h.Calib, h.Calper)
	}
	if h.Instype != "LE-3D" || h.Hang != -1 || h.Vang != -1 {
		t.Errorf("instrument fields wrong: %q %v %v", h.Instype, h.Hang, h.Vang)
	}

	want := time.Date(2005, 8, 31, 2, 33, 49, 850*int(time.Millisecond), time.UTC)
	if !h.StartTime.Equal(want) {
		t.Errorf("start time = %v, want %v", h.StartTime, want)
	}
}

func TestParseWID2Errors(t *testing.T) {
	good := "WID2 2005/08/31 02:33:49.850 RJOB  Z        CM6      750  200.000000"

	cases := []struct {
		name string
		line string
	}{
		{"samps", good[:wid2Samps] + "     abc" + good[wid2Rate-1:]},
		{"samprat", good[:wid2Rate] + "         --"},
		{"date", "WID2 2005/13/31 02:33:49.850 RJOB  Z        CM6      750  200.000000"},
		{"time", "WID2 2005/08/31 02:33:99.850 RJOB  Z        CM6      750  200.000000"},
		{"short", "WID2 2005/08/31"},
	}

	for _, c := range cases {
		_, err := parseWID2([]byte(c.line), 3)
		if err == nil {
			t.Errorf("%s: no error for %q", c.name, c.line)
			continue
		}
		if fe, ok := err.(*FormatError); !ok {
			t.Errorf("%s: error is %T, want *FormatError", c.name, err)
		} else if fe.Line != 3 {
			t.Errorf("%s: error reports line %d, want 3", c.name, fe.Line)
		}
	}
}

func TestParseWID2NegativeCount(t *testing.T) {
	line := "WID2 2005/08/31 02:33:49.850 RJOB  Z        CM6       -5  200.000000"

	_, err := parseWID2([]byte(line), 1)
	if fe, ok := err.(*FormatError); !ok || fe.Field != "samps" {
		t.Errorf("got %v, want samps FormatError", err)
	}
}

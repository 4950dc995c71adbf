package gse

import (
	"strings"
	"testing"
	"time"
)

func gse1Header(tag string) Header {
	return Header{
		Station:    "RJOB",
		Channel:    "SZ",
		ChannelID:  "RJOB_Z",
		StartTime:  time.Date(2005, 8, 31, 2, 33, 49, 850*int(time.Millisecond), time.UTC),
		SampleRate: 200,
		DataFormat: "CMP6",
		Diffs:      2,
		SystemType: "LE-3D",
		Tag:        tag,
	}
}

func TestWID1RoundTrip(t *testing.T) {
	for _, tag := range []string{"WID1", "XW01"} {
		h := gse1Header(tag)
		h.NumSamples = 750

		line := formatWID1(&h)

		got, err := parseWID1([]byte(strings.TrimRight(line, "\n")), 1)
		if err != nil {
			t.Errorf("%s: %v", tag, err)
			continue
		}

		if got != h {
			t.Errorf("%s: round trip mismatch\n in: %#v\nout: %#v\nline: %q", tag, h, got, line)
		}
	}
}

func TestWID1DayOfYear(t *testing.T) {
	h := gse1Header("WID1")
	h.StartTime = time.Date(2000, 12, 31, 23, 0, 0, 0, time.UTC)

	got, err := parseWID1([]byte(formatWID1(&h)), 1)
	if err != nil {
		t.Fatal(err)
	}

	// day 366 of the leap year 2000
	if !got.StartTime.Equal(h.StartTime) {
		t.Errorf("start time = %v, want %v", got.StartTime, h.StartTime)
	}
}

func TestParseWID1Errors(t *testing.T) {
	h := gse1Header("WID1")
	good := strings.TrimRight(formatWID1(&h), "\n")

	cases := []struct {
		name string
		line string
	}{
		{"tag only", "WID1"},
		{"bad samps", good[:wid1Samps] + "   abcde" + good[wid1Station-1:]},
		{"bad diff", good[:wid1Diff] + "7"},
		{"bad julday", "WID1 2005000" + good[12:]},
	}

	for _, c := range cases {
		if _, err := parseWID1([]byte(c.line), 2); err == nil {
			t.Errorf("%s: no error for %q", c.name, c.line)
		} else if _, ok := err.(*FormatError); !ok {
			t.Errorf("%s: error is %T, want *FormatError", c.name, err)
		}
	}
}

func TestParseWID1Cal(t *testing.T) {
	calib, calper, err := parseWID1Cal([]byte("  9.49e-02   1.250 filler ignored"), 2)
	if err != nil {
		t.Fatal(err)
	}
	if calib != 0.0949 || calper != 1.25 {
		t.Errorf("calibration = %v %v, want 0.0949 1.25", calib, calper)
	}

	if _, _, err := parseWID1Cal([]byte("  9.49e-02"), 2); err == nil {
		t.Error("short calibration line not rejected")
	}
}

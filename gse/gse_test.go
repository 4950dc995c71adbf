package gse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/seisio/gsewave/util"
)

func testBlock(station string, n int, seed int64) *Block {
	r := rand.New(rand.NewSource(seed))

	data := make([]int32, n)
	last := int32(0)
	for i := range data {
		last = last + r.Int31n(2000) - 1000
		data[i] = last
	}

	hdr := NewHeader(station, "SHZ", time.Date(2005, 8, 31, 2, 33, 49, 850*int(time.Millisecond), time.UTC), 200)
	return &Block{Header: hdr, Data: data}
}

func writeContainer(t *testing.T, blocks ...*Block) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteAll(blocks); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestContainerRoundTrip(t *testing.T) {
	in := []*Block{
		testBlock("STA01", 750, 1),
		testBlock("STA02", 13, 2),
		testBlock("STA03", 2000, 3),
	}
	stream := writeContainer(t, in...)

	r := NewReader(bytes.NewReader(stream))
	out, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != len(in) {
		t.Fatalf("read %d blocks, want %d", len(out), len(in))
	}

	for i := range in {
		if out[i].Header.Station != in[i].Header.Station {
			t.Errorf("block %d: station %q, want %q", i, out[i].Header.Station, in[i].Header.Station)
		}
		if out[i].Header.NumSamples != len(in[i].Data) {
			t.Errorf("block %d: samps %d, want %d", i, out[i].Header.NumSamples, len(in[i].Data))
		}
		if !util.Compare1DInt32(out[i].Data, in[i].Data) {
			t.Errorf("block %d: samples do not round trip", i)
		}
		if out[i].Checksum != Checksum(in[i].Data) {
			t.Errorf("block %d: checksum %d, want %d", i, out[i].Checksum, Checksum(in[i].Data))
		}
	}

	// the cursor must sit at end of stream
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next after last block = %v, want io.EOF", err)
	}
}

func TestContainerIntFormat(t *testing.T) {
	b := testBlock("INTS", 100, 4)
	b.Header.DataFormat = "INT"
	b.Header.Diffs = 0
	stream := writeContainer(t, b)

	out, err := NewReader(bytes.NewReader(stream)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || !util.Compare1DInt32(out[0].Data, b.Data) {
		t.Error("INT samples do not round trip")
	}
}

func TestEmptyStream(t *testing.T) {
	if _, err := NewReader(strings.NewReader("")).Next(); err != io.EOF {
		t.Errorf("Next on empty stream = %v, want io.EOF", err)
	}

	// envelope lines only, no blocks
	src := "BEGIN GSE2.0\nMSG_TYPE DATA\nDATA_TYPE WAVEFORM GSE2.0\nSTOP\n"
	blocks, err := NewReader(strings.NewReader(src)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 0 {
		t.Errorf("read %d blocks from block-less message", len(blocks))
	}
}

func TestEnvelopeLines(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("BEGIN GSE2.0\nMSG_TYPE DATA\nDATA_TYPE WAVEFORM GSE2.0\n")
	buf.Write(writeContainer(t, testBlock("ENV", 50, 5)))
	buf.WriteString("STOP\n")

	blocks, err := NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("read %d blocks, want 1", len(blocks))
	}
}

func TestSkipsExtensionLines(t *testing.T) {
	stream := writeContainer(t, testBlock("STA2X", 25, 6))

	// splice an STA2 line between WID2 and DAT2
	i := bytes.Index(stream, []byte("DAT2"))
	spliced := append([]byte{}, stream[:i]...)
	spliced = append(spliced, []byte("STA2 network   47.75000    12.80000 WGS-84     0.600 0.0\n")...)
	spliced = append(spliced, stream[i:]...)

	blocks, err := NewReader(bytes.NewReader(spliced)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Header.NumSamples != 25 {
		t.Error("block with STA2 line not read correctly")
	}
}

func TestCorruptChecksum(t *testing.T) {
	b1 := testBlock("OK1", 100, 7)
	b2 := testBlock("BAD", 100, 8)
	b3 := testBlock("OK3", 100, 9)
	stream := writeContainer(t, b1, b2, b3)

	// rewrite the second block's checksum record
	chk := Checksum(b2.Data)
	record := fmt.Sprintf("CHK2 %8d", chk)
	corrupted := bytes.Replace(stream, []byte(record), []byte(fmt.Sprintf("CHK2 %8d", chk+1)), 1)
	if bytes.Equal(corrupted, stream) {
		t.Fatal("checksum record not found")
	}

	r := NewReader(bytes.NewReader(corrupted))

	if _, err := r.Next(); err != nil {
		t.Fatalf("first block: %v", err)
	}

	_, err := r.Next()
	var ce *ChecksumError
	if !errors.As(err, &ce) {
		t.Fatalf("second block: %v, want *ChecksumError", err)
	}
	if ce.Station != "BAD" || ce.Recorded != chk+1 || ce.Computed != chk {
		t.Errorf("checksum error lacks context: %v", ce)
	}

	// no further blocks are attempted
	if _, err2 := r.Next(); err2 != err {
		t.Errorf("third call = %v, want the sticky checksum error", err2)
	}
}

func TestVerifyDisabled(t *testing.T) {
	b := testBlock("LOOSE", 60, 10)
	stream := writeContainer(t, b)

	chk := Checksum(b.Data)
	record := fmt.Sprintf("CHK2 %8d", chk)
	corrupted := bytes.Replace(stream, []byte(record), []byte(fmt.Sprintf("CHK2 %8d", chk+1)), 1)

	r := NewReader(bytes.NewReader(corrupted))
	r.Verify = false

	blocks, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Checksum != chk+1 {
		t.Error("unverified read did not surface the recorded checksum")
	}
}

func TestTruncatedPayload(t *testing.T) {
	b1 := testBlock("OK1", 80, 11)
	b2 := testBlock("CUT", 80, 12)

	var buf bytes.Buffer
	buf.Write(writeContainer(t, b1))

	// drop the last payload character of the second block
	second := writeContainer(t, b2)
	i := bytes.Index(second, []byte("\nCHK2"))
	buf.Write(second[:i-1])
	buf.Write(second[i:])

	r := NewReader(&buf)

	if _, err := r.Next(); err != nil {
		t.Fatalf("first block: %v", err)
	}

	_, err := r.Next()
	var te *TruncationError
	if !errors.As(err, &te) {
		t.Errorf("second block: %v, want *TruncationError", err)
	}
}

func TestZeroSamples(t *testing.T) {
	b := &Block{Header: NewHeader("NULL", "SHZ", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 20)}
	stream := writeContainer(t, b)

	blocks, err := NewReader(bytes.NewReader(stream)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("read %d blocks, want 1", len(blocks))
	}
	if blocks[0].Header.NumSamples != 0 || len(blocks[0].Data) != 0 {
		t.Error("zero sample block does not round trip empty")
	}
}

func TestRangeError(t *testing.T) {
	b := testBlock("HUGE", 10, 13)
	b.Data[5] = 1 << 27

	var buf bytes.Buffer
	err := NewWriter(&buf).WriteBlock(b)

	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("got %v, want *RangeError", err)
	}
	if re.Index != 5 || re.Value != 1<<27 {
		t.Errorf("range error lacks context: %v", re)
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written for rejected block", buf.Len())
	}
}

func TestInplaceWrite(t *testing.T) {
	b := testBlock("KEEP", 200, 14)
	original := util.Copy1DInt32(b.Data)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteBlock(b); err != nil {
		t.Fatal(err)
	}
	if !util.Compare1DInt32(b.Data, original) {
		t.Error("write without Inplace modified the input samples")
	}

	w.Inplace = true
	if err := w.WriteBlock(b); err != nil {
		t.Fatal(err)
	}
	if util.Compare1DInt32(b.Data, original) {
		t.Error("write with Inplace left the input samples intact")
	}
}

func TestHeadOnly(t *testing.T) {
	b1 := testBlock("HDR1", 300, 15)
	b2 := testBlock("HDR2", 40, 16)
	stream := writeContainer(t, b1, b2)

	r := NewReader(bytes.NewReader(stream))
	r.HeadOnly = true

	blocks, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("read %d blocks, want 2", len(blocks))
	}
	for i, want := range []int{300, 40} {
		if blocks[i].Data != nil {
			t.Errorf("block %d: head-only read returned samples", i)
		}
		if blocks[i].Header.NumSamples != want {
			t.Errorf("block %d: samps %d, want %d", i, blocks[i].Header.NumSamples, want)
		}
	}
}

func TestSniff(t *testing.T) {
	stream := writeContainer(t, testBlock("SNIF", 30, 17))

	br := bufio.NewReader(bytes.NewReader(stream))
	f, ok := Sniff(br, DefaultFormats())
	if !ok || f.Name() != "GSE2" {
		t.Fatalf("sniff = %v %v, want GSE2", f, ok)
	}

	// sniffing must not consume anything
	blocks, err := NewReader(br).ReadAll()
	if err != nil || len(blocks) != 1 {
		t.Errorf("read after sniff: %d blocks, err %v", len(blocks), err)
	}

	if _, ok := Sniff(bufio.NewReader(strings.NewReader("RIFF1234")), DefaultFormats()); ok {
		t.Error("sniff claimed a foreign stream")
	}
}

func TestGSE1ContainerRoundTrip(t *testing.T) {
	for _, diffs := range []int{0, 1, 2} {
		b := testBlock("RJOB", 500, int64(18+diffs))
		b.Header = gse1Header("WID1")
		b.Header.Diffs = diffs
		b.Header.Calib = 1
		b.Header.Calper = 1

		var buf bytes.Buffer
		w := NewWriter(&buf)
		w.Format = GSE1()
		if err := w.WriteBlock(b); err != nil {
			t.Fatal(err)
		}

		blocks, err := NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("diffs=%d: %v", diffs, err)
		}
		if len(blocks) != 1 {
			t.Fatalf("diffs=%d: read %d blocks, want 1", diffs, len(blocks))
		}
		if !util.Compare1DInt32(blocks[0].Data, b.Data) {
			t.Errorf("diffs=%d: samples do not round trip", diffs)
		}
		if blocks[0].Header.Tag != "WID1" || blocks[0].Header.Diffs != diffs {
			t.Errorf("diffs=%d: header fields lost: %+v", diffs, blocks[0].Header)
		}
	}
}

func TestMixedContainer(t *testing.T) {
	var buf bytes.Buffer

	w2 := NewWriter(&buf)
	if err := w2.WriteBlock(testBlock("GSE2", 120, 21)); err != nil {
		t.Fatal(err)
	}

	b1 := testBlock("GSE1", 120, 22)
	b1.Header = gse1Header("XW01")
	w1 := NewWriter(&buf)
	w1.Format = GSE1()
	if err := w1.WriteBlock(b1); err != nil {
		t.Fatal(err)
	}

	blocks, err := NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("read %d blocks, want 2", len(blocks))
	}
	if blocks[0].Header.Tag != "WID2" || blocks[1].Header.Tag != "XW01" {
		t.Errorf("tags = %q %q, want WID2 XW01", blocks[0].Header.Tag, blocks[1].Header.Tag)
	}
}

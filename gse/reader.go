package gse

import (
	"io"

	"github.com/seisio/gsewave/pkg/linescan"
)

// Reader decodes successive waveform blocks from a stream. Lines that no
// format claims (message envelopes, blank lines between blocks) are
// skipped, like the original readers do.
type Reader struct {
	s       *linescan.Scanner
	formats []Format
	err     error

	// Verify checks each block's recorded checksum against its decoded
	// samples. On by default.
	Verify bool
	// HeadOnly returns blocks without their samples. The stream is still
	// consumed block by block, so Next keeps working.
	HeadOnly bool
}

// NewReader returns a Reader over r using the default format registry.
func NewReader(r io.Reader) *Reader {
	return NewReaderFormats(r, DefaultFormats())
}

// NewReaderFormats returns a Reader restricted to the given formats.
func NewReaderFormats(r io.Reader, formats []Format) *Reader {
	return &Reader{
		s:       linescan.NewScanner(r),
		formats: formats,
		Verify:  true,
	}
}

// Next returns the next block in the stream. io.EOF signals the normal end
// of the container. After any other error the reader is spent and Next
// keeps returning the same error; blocks already returned stay valid.
func (r *Reader) Next() (*Block, error) {
	if r.err != nil {
		return nil, r.err
	}

	for {
		line, err := r.s.PeekLine()
		if err != nil {
			// includes the clean io.EOF at a block boundary
			r.err = err
			return nil, err
		}

		var match Format
		for _, f := range r.formats {
			if f.Detect(line) {
				match = f
				break
			}
		}

		if match == nil {
			r.s.ReadLine()
			continue
		}

		blk, err := match.Read(r.s, ReadOptions{Verify: r.Verify, HeadOnly: r.HeadOnly})
		if err != nil {
			r.err = err
			return nil, err
		}
		return blk, nil
	}
}

// ReadAll collects the remaining blocks of the container.
func (r *Reader) ReadAll() ([]*Block, error) {
	var blocks []*Block

	for {
		blk, err := r.Next()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, blk)
	}
}

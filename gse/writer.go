package gse

import (
	"io"
)

// Writer serializes waveform blocks to a stream.
type Writer struct {
	w io.Writer

	// Format selects the output format, GSE2 by default.
	Format Format
	// Inplace lets the sample codec difference each block's Data slice
	// directly instead of copying it first. After a write the caller's
	// sample values are no longer intact. Off by default.
	Inplace bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:      w,
		Format: GSE2(),
	}
}

// WriteBlock serializes one block. On a RangeError nothing has been
// written, so the stream is never left with a half-written block.
func (w *Writer) WriteBlock(b *Block) error {
	return w.Format.Write(w.w, b, WriteOptions{Inplace: w.Inplace})
}

// WriteAll serializes blocks in order, stopping at the first error.
func (w *Writer) WriteAll(blocks []*Block) error {
	for _, b := range blocks {
		if err := w.WriteBlock(b); err != nil {
			return err
		}
	}
	return nil
}

package linescan

import (
	"bufio"
	"fmt"
	"io"
)

// Writer buffers line-oriented output and counts what was written.
type Writer struct {
	w     *bufio.Writer
	lines int
	bytes int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: bufio.NewWriter(w),
	}
}

func (w *Writer) Lines() int {
	return w.lines
}

func (w *Writer) Bytes() int {
	return w.bytes
}

// WriteLine writes b followed by a newline.
func (w *Writer) WriteLine(b []byte) error {
	n, err := w.w.Write(b)
	w.bytes += n
	if err != nil {
		return err
	}

	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}

	w.bytes++
	w.lines++
	return nil
}

// Printf formats one or more output lines. The caller supplies the
// newlines; lines are counted from the formatted result.
func (w *Writer) Printf(format string, args ...interface{}) error {
	s := fmt.Sprintf(format, args...)

	n, err := w.w.WriteString(s)
	w.bytes += n

	for i := 0; i < n; i++ {
		if s[i] == '\n' {
			w.lines++
		}
	}

	return err
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

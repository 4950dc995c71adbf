// Package linescan provides sequential line-oriented access to a byte
// stream with single-line lookahead, used to frame text-based waveform
// container formats.
package linescan

import (
	"bufio"
	"bytes"
	"io"
)

// Scanner reads a stream line by line and keeps track of the line number
// for error reporting. One line of lookahead is available through PeekLine.
type Scanner struct {
	r       *bufio.Reader
	pending []byte
	peeked  bool
	line    int
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r: bufio.NewReader(r),
	}
}

// Line returns the 1-based number of the line most recently returned by
// ReadLine (or observed by PeekLine).
func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) readRaw() ([]byte, error) {
	line, err := s.r.ReadBytes('\n')

	if len(line) == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}

	// a trailing line without newline is still a line
	line = bytes.TrimRight(line, "\r\n")
	return line, nil
}

// ReadLine returns the next line without its terminator.
// io.EOF signals that the stream is exhausted.
func (s *Scanner) ReadLine() ([]byte, error) {
	if s.peeked {
		s.peeked = false
		return s.pending, nil
	}

	line, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	s.line++
	return line, nil
}

// PeekLine returns the next line without consuming it.
func (s *Scanner) PeekLine() ([]byte, error) {
	if s.peeked {
		return s.pending, nil
	}

	line, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	s.line++
	s.pending = line
	s.peeked = true
	return line, nil
}

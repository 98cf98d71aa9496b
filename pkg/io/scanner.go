package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/tsg/pkg/errors"
)

// Record is one classified line of TSG text.
type Record struct {
	Line   int      // 1-based physical line number
	Tag    string   // H, G, N, E, C, P, U, A or L
	Fields []string // fields after the tag
	Raw    string   // line text without the line terminator
}

// readBufferSize is the initial buffer; longer lines are still read whole.
const readBufferSize = 64 * 1024

var knownTags = map[string]bool{
	"H": true, "G": true, "N": true, "E": true, "C": true,
	"P": true, "U": true, "A": true, "L": true,
}

// Scanner splits TSG text into records. Blank lines and lines starting with
// '#' are skipped. Fields are separated by runs of tabs or spaces.
//
//	s := io.NewScanner(r)
//	for s.Next() {
//	    rec := s.Record()
//	    ...
//	}
//	if err := s.Err(); err != nil {
//	    return err
//	}
type Scanner struct {
	r    *bufio.Reader
	line int
	rec  Record
	err  error
	eof  bool
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, readBufferSize)}
}

// Next advances to the next record. It returns false at end of input or on
// the first error, which [Scanner.Err] then reports.
func (s *Scanner) Next() bool {
	for !s.eof && s.err == nil {
		text, err := s.r.ReadString('\n')
		if err == io.EOF {
			s.eof = true
			if text == "" {
				return false
			}
		} else if err != nil {
			s.err = fmt.Errorf("read line %d: %w", s.line+1, err)
			return false
		}
		s.line++

		raw := strings.TrimRight(text, "\r\n")
		if raw == "" || raw[0] == '#' {
			continue
		}
		fields := strings.FieldsFunc(raw, isDelimiter)
		if len(fields) == 0 {
			continue
		}
		if !knownTags[fields[0]] {
			s.err = errors.New(errors.ErrCodeUnknownTag, "unknown record tag %q", fields[0]).At(s.line, raw)
			return false
		}
		s.rec = Record{Line: s.line, Tag: fields[0], Fields: fields[1:], Raw: raw}
		return true
	}
	return false
}

// Record returns the current record.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the first error encountered, if any.
func (s *Scanner) Err() error { return s.err }

func isDelimiter(r rune) bool { return r == '\t' || r == ' ' }

// Package source reads files as numbered lines.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrIsDirectory is returned by Open when the path names a directory.
var ErrIsDirectory = errors.New("is a directory")

// Line is one line of a file. Number is its 1-based position.
type Line struct {
	Number  int
	Content string
}

// LineSource yields the lines of a file in order. It is forward-only and
// cannot be restarted once exhausted.
type LineSource struct {
	path   string
	file   *os.File
	reader *bufio.Reader
	last   int
	done   bool
	err    error
}

// Open opens path for line reading. Missing, unreadable and directory
// paths fail here rather than on the first Next call.
func Open(path string) (*LineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: path, Err: ErrIsDirectory}
	}

	return &LineSource{
		path:   path,
		file:   f,
		reader: bufio.NewReader(f),
	}, nil
}

// Path returns the path the source was opened with.
func (s *LineSource) Path() string {
	return s.path
}

// Next returns the next line. The bool is false once the file is
// exhausted or a read error occurred; check Err to tell them apart.
// Line numbers are assigned here, in file order.
func (s *LineSource) Next() (Line, bool) {
	if s.done {
		return Line{}, false
	}

	// ReadString has no line length limit, unlike bufio.Scanner.
	text, err := s.reader.ReadString('\n')
	if err != nil {
		s.finish()
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("reading %s: %w", s.path, err)
			return Line{}, false
		}
		if text == "" {
			return Line{}, false
		}
	}

	s.last++
	return Line{Number: s.last, Content: trimNewline(text)}, true
}

// Err returns the read error that ended the sequence, if any.
// Reaching end of file is not an error.
func (s *LineSource) Err() error {
	return s.err
}

// Close releases the underlying file. Safe to call more than once.
func (s *LineSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *LineSource) finish() {
	s.done = true
	s.Close()
}

// ReadAll opens path and drains it into a slice of lines.
func ReadAll(path string) ([]Line, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var lines []Line
	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// trimNewline strips a trailing "\n" or "\r\n".
func trimNewline(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s
	}
	return strings.TrimSuffix(s[:len(s)-1], "\r")
}

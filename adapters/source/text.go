package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal/errors"
)

// TextSource reads numbers separated by whitespace, commas or semicolons
type TextSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewTextSource reads from r once
func NewTextSource(name string, r io.Reader) *TextSource {
	return &TextSource{name: name, open: func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}}
}

// NewTextFileSource reads from a file on each Read
func NewTextFileSource(path string) *TextSource {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &TextSource{name: name, open: func() (io.ReadCloser, error) {
		return os.Open(path)
	}}
}

// NewArgsSource parses command-line arguments, each of which may hold
// several separated numbers
func NewArgsSource(args []string) *TextSource {
	return NewTextSource("sample", strings.NewReader(strings.Join(args, " ")))
}

// Read returns every number in input order
func (s *TextSource) Read(ctx context.Context) (stats.Column, error) {
	if err := ctx.Err(); err != nil {
		return stats.Column{}, err
	}
	rc, err := s.open()
	if err != nil {
		return stats.Column{}, errors.InvalidInput("failed to open input", err)
	}
	defer rc.Close()

	col := stats.Column{Name: s.name}
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, token := range strings.FieldsFunc(scanner.Text(), isSeparator) {
			v, err := parseCell(token)
			if err != nil {
				return stats.Column{}, errors.InvalidInput("invalid number",
					core.NewNotNumericError(line, s.name, token))
			}
			col.Values = append(col.Values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats.Column{}, errors.InvalidInput("failed to read input", err)
	}
	if len(col.Values) == 0 {
		return stats.Column{}, errors.InvalidInput("no numbers in input", core.ErrEmptySample)
	}
	return col, nil
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', ';':
		return true
	}
	return false
}

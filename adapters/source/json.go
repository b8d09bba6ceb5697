package source

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal/errors"
)

// DefaultJSONPath is where request bodies and JSON files carry the sample
const DefaultJSONPath = "sample"

// JSONSource reads an array of numbers at a gjson path
type JSONSource struct {
	data []byte
	path string
	file string
}

// NewJSONSource reads from an in-memory document. An empty path selects
// DefaultJSONPath; "@this" selects a top-level array.
func NewJSONSource(data []byte, path string) *JSONSource {
	if path == "" {
		path = DefaultJSONPath
	}
	return &JSONSource{data: data, path: path}
}

// NewJSONFileSource reads the document from a file on each Read
func NewJSONFileSource(file, path string) *JSONSource {
	s := NewJSONSource(nil, path)
	s.file = file
	return s
}

// Read returns the numbers at the configured path
func (s *JSONSource) Read(ctx context.Context) (stats.Column, error) {
	if err := ctx.Err(); err != nil {
		return stats.Column{}, err
	}

	data := s.data
	if s.file != "" {
		b, err := os.ReadFile(s.file)
		if err != nil {
			return stats.Column{}, errors.InvalidInput("failed to open JSON file", err)
		}
		data = b
	}
	return ParseJSONSample(data, s.path)
}

// ParseJSONSample extracts the numeric array at path from a JSON document
func ParseJSONSample(data []byte, path string) (stats.Column, error) {
	if !gjson.ValidBytes(data) {
		return stats.Column{}, errors.InvalidInput("request body is not valid JSON", core.ErrUnknownFormat)
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return stats.Column{}, errors.InvalidInput(
			fmt.Sprintf("data path '%s' not found", path), core.NewColumnNotFoundError(path))
	}
	if !result.IsArray() {
		return stats.Column{}, errors.InvalidInput(
			fmt.Sprintf("data path '%s' is not an array", path), core.ErrNoNumericData)
	}

	col := stats.Column{Name: path}
	for i, item := range result.Array() {
		if item.Type != gjson.Number {
			return stats.Column{}, errors.InvalidInput("invalid element",
				core.NewNotNumericError(i, path, item.Raw))
		}
		col.Values = append(col.Values, item.Float())
	}
	if len(col.Values) == 0 {
		return stats.Column{}, errors.InvalidInput(
			fmt.Sprintf("data path '%s' holds an empty array", path), core.ErrEmptySample)
	}
	return col, nil
}

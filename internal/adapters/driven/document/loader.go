// Package document loads JSON and YAML model documents from disk.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Extensions lists the file extensions the loader understands.
var Extensions = []string{".json", ".yaml", ".yml"}

// Loader decodes documents by file extension.
// JSON numbers are kept as json.Number; YAML content is normalised
// to the same value shapes as JSON.
type Loader struct{}

// NewLoader creates a document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.ModelDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Path: path, Reason: ioReason(err), Err: err}
	}

	var value any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		value, err = decodeJSON(path, data)
	case ".yaml", ".yml":
		value, err = decodeYAML(path, data)
	default:
		return nil, &domain.ParseError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported document format %q", filepath.Ext(path)),
			Err:    domain.ErrInvalidInput,
		}
	}
	if err != nil {
		return nil, err
	}

	content, ok := value.(map[string]any)
	if !ok {
		return nil, &domain.ParseError{
			Path:   path,
			Reason: "top-level value must be an object, got " + kindOf(value),
			Err:    domain.ErrInvalidInput,
		}
	}

	return &domain.ModelDocument{
		Path:    path,
		Content: content,
		Type:    domain.ModelTypeUnknown,
	}, nil
}

func ioReason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

func decodeJSON(path string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ParseError{Path: path, Reason: "empty document", Err: err}
		}
		return nil, jsonParseError(path, data, err)
	}

	// Trailing data after the first value is malformed JSON.
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		offset := dec.InputOffset()
		line, col := position(data, offset)
		return nil, &domain.ParseError{
			Path:   path,
			Line:   line,
			Column: col,
			Reason: "unexpected data after top-level value",
			Err:    err,
		}
	}
	return value, nil
}

func jsonParseError(path string, data []byte, err error) error {
	perr := &domain.ParseError{Path: path, Reason: err.Error(), Err: err}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		perr.Line, perr.Column = position(data, syntaxErr.Offset)
	} else if errors.Is(err, io.ErrUnexpectedEOF) {
		perr.Reason = "unexpected end of input"
		perr.Line, perr.Column = position(data, int64(len(data)))
	}
	return perr
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	col := int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1)
	if col < 1 {
		col = 1
	}
	return line, col
}

var yamlLineRe = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

func decodeYAML(path string, data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		perr := &domain.ParseError{Path: path, Reason: err.Error(), Err: err}
		if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
			perr.Reason = m[2]
		}
		return nil, perr
	}
	if raw == nil {
		return nil, &domain.ParseError{Path: path, Reason: "empty document", Err: io.EOF}
	}

	// Round-trip through JSON so YAML and JSON documents share value shapes.
	encoded, err := json.Marshal(normalize(raw))
	if err != nil {
		return nil, &domain.ParseError{Path: path, Reason: err.Error(), Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &domain.ParseError{Path: path, Reason: err.Error(), Err: err}
	}
	return value, nil
}

// normalize converts YAML mappings with non-string keys into string-keyed maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/errnogen/internal/model"
)

// Table reads an error table from a YAML or JSON file.
//
// Two layouts are accepted. The full layout carries provenance:
//
//	goos: linux
//	goarch: amd64
//	entries:
//	  - {name: EPERM, code: 1}
//
// The short layout is a plain mapping whose key order is kept:
//
//	EPERM: 1
//	ENOENT: 2
type Table struct {
	path string
}

// NewTable creates a table file source.
func NewTable(path string) *Table {
	return &Table{path: path}
}

// Name returns "table:<path>".
func (t *Table) Name() string {
	return "table:" + t.path
}

// Path returns the table file path.
func (t *Table) Path() string {
	return t.path
}

// Load reads and validates the table file.
func (t *Table) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	defer f.Close()

	table, err := DecodeTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.path, err)
	}
	if table.Source == "" {
		table.Source = t.Name()
	}
	return table, nil
}

// DecodeTable parses either table layout from r.
func DecodeTable(r io.Reader) (*model.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &model.Table{}, nil
		}
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidSource, err)
	}
	if len(doc.Content) == 0 {
		return &model.Table{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: table must be a mapping", model.ErrInvalidSource)
	}

	var table model.Table
	if hasKey(root, "entries") {
		if err := root.Decode(&table); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrInvalidSource, err)
		}
	} else {
		for i := 0; i+1 < len(root.Content); i += 2 {
			var code int
			if err := root.Content[i+1].Decode(&code); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", model.ErrInvalidSource, root.Content[i].Value, err)
			}
			table.Entries = append(table.Entries, model.Entry{Name: root.Content[i].Value, Code: code})
		}
	}

	if err := validateEntries(table.Entries); err != nil {
		return nil, err
	}
	return &table, nil
}

// validateEntries rejects malformed E-prefixed names so they never reach
// the generated header. Names without the prefix are left to the filter.
func validateEntries(entries []model.Entry) error {
	for _, e := range entries {
		if !model.IsErrorName(e.Name) {
			continue
		}
		if err := model.ValidateName(e.Name); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTable writes t in the full layout.
func EncodeTable(w io.Writer, t *model.Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return enc.Close()
}

func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}

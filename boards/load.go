package boards

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ghostbfs/gridgraph"
)

// unnamed is the name of a loaded board that does not carry one.
const unnamed = "custom"

// layoutFile is the on-disk shape of a board.
type layoutFile struct {
	Name    string                 `yaml:"name,omitempty"`
	Start   *int                   `yaml:"start,omitempty"`
	Rows    [][]gridgraph.CellSpec `yaml:"rows,omitempty"`
	Pattern []string               `yaml:"pattern,omitempty"`
}

// Load decodes a YAML or JSON board description.
func Load(r io.Reader) (Board, error) {
	var f layoutFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return Board{}, ErrNoCells
		}
		return Board{}, fmt.Errorf("boards: decode: %w", err)
	}

	start := -1
	if f.Start != nil {
		start = *f.Start
	}
	name := f.Name
	if name == "" {
		name = unnamed
	}

	switch {
	case len(f.Rows) > 0 && len(f.Pattern) > 0:
		return Board{}, ErrAmbiguous
	case len(f.Pattern) > 0:
		return FromPattern(name, start, f.Pattern)
	case len(f.Rows) > 0:
		return build(name, start, gridgraph.Layout(f.Rows))
	default:
		return Board{}, ErrNoCells
	}
}

// LoadFile reads a board from path. An unnamed board takes the file's base
// name without extension.
func LoadFile(path string) (Board, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Board{}, fmt.Errorf("boards: %w", err)
	}
	defer fh.Close()

	b, err := Load(fh)
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w", path, err)
	}
	if b.Name == unnamed {
		b.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return b, nil
}

// Marshal encodes b in the pattern form.
func Marshal(b Board) ([]byte, error) {
	g, err := b.Grid()
	if err != nil {
		return nil, err
	}
	rows := make([]string, g.Rows)
	for r := range rows {
		var sb strings.Builder
		for c := 0; c < g.Cols; c++ {
			if g.Enabled(g.Index(r, c)) {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		rows[r] = sb.String()
	}
	start := b.Start
	return yaml.Marshal(layoutFile{Name: b.Name, Start: &start, Pattern: rows})
}

package layout

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads one layout document. Unknown fields are rejected so typos
// don't silently drop edits.
func Decode(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return &l, nil
}

// Encode writes l as YAML.
func (l *Layout) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return err
	}
	return enc.Close()
}

// Load reads an embedded layout by name, e.g. "courtyard".
func Load(name string) (*Layout, error) {
	content, err := layoutFS.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, name)
	}
	l, err := Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded layout %s: %w", name, err)
	}
	return l, nil
}

// MustLoad reads an embedded layout, panicking on error.
func MustLoad(name string) *Layout {
	l, err := Load(name)
	if err != nil {
		panic(err)
	}
	return l
}

// LoadFile reads a layout from disk.
func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout %s: %w", path, err)
	}
	defer f.Close()

	l, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	return l, nil
}

// SaveFile writes l to path, replacing any existing file.
func (l *Layout) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode layout %s: %w", l.Name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write layout %s: %w", path, err)
	}
	return nil
}

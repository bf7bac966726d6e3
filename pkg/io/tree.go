package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/tree"
)

// WriteJSON encodes v as indented JSON. v is usually a *tree.Node or a
// renderer payload.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Write encodes v in the given output format. Only JSON and YAML are
// output formats.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "cannot write %s output (use json or yaml)", format)
}

// Export writes v to the file at path in the given format.
func Export(v any, path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, v, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadTree decodes a JSON tree from r.
// The returned tree is checked with [tree.Validate].
func ReadTree(r io.Reader) (*tree.Node, error) {
	var n tree.Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	if err := tree.Validate(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ImportTree reads a JSON tree from the file at path.
func ImportTree(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

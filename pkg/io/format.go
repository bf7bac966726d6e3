package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/treeflow/pkg/errors"
)

// Format identifies a file encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var extensions = map[string]Format{
	".csv":  FormatCSV,
	".tsv":  FormatTSV,
	".tab":  FormatTSV,
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// ParseFormat validates a format name. "yml" is accepted as "yaml".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatTSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be one of: csv, tsv, json, yaml)", s)
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %s (supported: .csv, .tsv, .json, .yaml, .yml)", path)
}

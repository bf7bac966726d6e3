package io

import (
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/hierarchy"
	"github.com/matzehuels/treeflow/pkg/record"
)

// decodeStructured decodes a JSON or YAML document and classifies its shape.
func decodeStructured(data []byte) (hierarchy.Input, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}

	switch v := doc.(type) {
	case []any:
		return tableFromObjects(v)
	case yaml.MapSlice:
		m := v.ToMap()
		if _, ok := m["dimensions"]; ok {
			return dimensionTable(data)
		}
		if cols, ok := m["columns"]; ok {
			return tableFromColumns(cols, m["rows"])
		}
		if rows, ok := m["data"].([]any); ok {
			return tableFromObjects(rows)
		}
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "object input needs \"dimensions\", \"columns\" or \"data\"")
	case nil:
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "empty document")
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "unsupported document type %T", v)
	}
}

func tableFromObjects(items []any) (*hierarchy.Table, error) {
	t := &hierarchy.Table{}
	colIdx := map[string]int{}
	rows := make([]yaml.MapSlice, len(items))
	for i, item := range items {
		obj, ok := item.(yaml.MapSlice)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupportedInput, "record %d: expected an object, got %T", i, item)
		}
		rows[i] = obj
		for _, kv := range obj {
			key := keyString(kv.Key)
			if _, seen := colIdx[key]; !seen {
				colIdx[key] = len(t.Columns)
				t.Columns = append(t.Columns, key)
			}
		}
	}

	t.Rows = make([][]record.Value, len(rows))
	for i, obj := range rows {
		vals := make([]record.Value, len(t.Columns))
		for _, kv := range obj {
			key := keyString(kv.Key)
			v, err := scalar(kv.Value)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeUnsupportedInput, err, "record %d: field %q", i, key)
			}
			vals[colIdx[key]] = v
		}
		t.Rows[i] = vals
	}
	return t, nil
}

func tableFromColumns(cols, rows any) (*hierarchy.Table, error) {
	colList, ok := cols.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "\"columns\" must be a list")
	}
	t := &hierarchy.Table{Columns: make([]string, len(colList))}
	for i, c := range colList {
		t.Columns[i] = keyString(c)
	}

	rowList, _ := rows.([]any)
	if rows != nil && rowList == nil {
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "\"rows\" must be a list")
	}
	t.Rows = make([][]record.Value, len(rowList))
	for i, r := range rowList {
		cells, ok := r.([]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupportedInput, "row %d: expected a list, got %T", i, r)
		}
		if len(cells) > len(t.Columns) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "row %d: %d cells but %d columns", i, len(cells), len(t.Columns))
		}
		vals := make([]record.Value, len(cells))
		for j, c := range cells {
			v, err := scalar(c)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeUnsupportedInput, err, "row %d: column %q", i, t.Columns[j])
			}
			vals[j] = v
		}
		t.Rows[i] = vals
	}
	return t, nil
}

func dimensionTable(data []byte) (*hierarchy.DimensionTable, error) {
	var t hierarchy.DimensionTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "decode dimension table")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func scalar(v any) (record.Value, error) {
	switch x := v.(type) {
	case nil:
		return record.Missing(), nil
	case string:
		return record.String(x), nil
	case bool:
		return record.String(strconv.FormatBool(x)), nil
	case int:
		return record.Number(float64(x)), nil
	case int64:
		return record.Number(float64(x)), nil
	case uint64:
		return record.Number(float64(x)), nil
	case float64:
		return record.Number(x), nil
	case float32:
		return record.Number(float64(x)), nil
	}
	return record.Value{}, errors.New(errors.ErrCodeUnsupportedInput, "nested value of type %T is not supported", v)
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	v, err := scalar(k)
	if err != nil {
		return ""
	}
	return v.String()
}

package record

// Row is a single row of tabular input: field names in schema order and the
// corresponding values. Values beyond len(Fields) are ignored; fields beyond
// len(Values) are missing.
type Row struct {
	Fields []string
	Values []Value
}

// At returns the value of the i-th field, or a missing value when the row
// is shorter than its schema.
func (r Row) At(i int) Value {
	if i < 0 || i >= len(r.Values) {
		return Missing()
	}
	return r.Values[i]
}

// Record is a sparse, ordered mapping from field name to present value.
// The zero Record is empty and ready to use.
type Record struct {
	fields []string
	values map[string]Value
}

// New builds a record from alternating field/value pairs, skipping missing
// values. It is mainly a convenience for tests and literal inputs.
func New(pairs ...any) Record {
	var r Record
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case Value:
			r.Set(name, v)
		case string:
			r.Set(name, String(v))
		case float64:
			r.Set(name, Number(v))
		case int:
			r.Set(name, Number(float64(v)))
		case nil:
		}
	}
	return r
}

// Project converts a row into a record containing only the present fields,
// in schema order. An empty or all-missing row yields an empty record.
// When a field name repeats in the schema, the first present value wins.
func Project(row Row) Record {
	var r Record
	for i, name := range row.Fields {
		v := row.At(i)
		if v.IsMissing() || r.Has(name) {
			continue
		}
		r.Set(name, v)
	}
	return r
}

// Set stores v under field. Setting a missing value removes the field.
// Re-setting an existing field keeps its original position.
func (r *Record) Set(field string, v Value) {
	if v.IsMissing() {
		r.Delete(field)
		return
	}
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = v
}

// Delete removes field from the record.
func (r *Record) Delete(field string) {
	if _, ok := r.values[field]; !ok {
		return
	}
	delete(r.values, field)
	for i, f := range r.fields {
		if f == field {
			r.fields = append(r.fields[:i:i], r.fields[i+1:]...)
			break
		}
	}
}

// Get returns the value of field and whether it is present.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Has reports whether field is present.
func (r Record) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Fields returns the present field names in order. The slice is a copy.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of present fields.
func (r Record) Len() int { return len(r.fields) }

package record

import (
	"slices"
	"testing"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name       string
		row        Row
		wantFields []string
	}{
		{
			name: "all present keeps schema order",
			row: Row{
				Fields: []string{"name", "parent", "value"},
				Values: []Value{String("B"), String("A"), Number(3)},
			},
			wantFields: []string{"name", "parent", "value"},
		},
		{
			name: "missing values dropped",
			row: Row{
				Fields: []string{"name", "parent", "value"},
				Values: []Value{String("A"), Missing(), Number(1)},
			},
			wantFields: []string{"name", "value"},
		},
		{
			name: "short row pads with missing",
			row: Row{
				Fields: []string{"name", "parent", "value"},
				Values: []Value{String("A")},
			},
			wantFields: []string{"name"},
		},
		{
			name:       "empty row",
			row:        Row{},
			wantFields: []string{},
		},
		{
			name: "entirely missing",
			row: Row{
				Fields: []string{"a", "b"},
				Values: []Value{Missing(), Missing()},
			},
			wantFields: []string{},
		},
		{
			name: "duplicate column keeps first present",
			row: Row{
				Fields: []string{"x", "x"},
				Values: []Value{Missing(), String("second")},
			},
			wantFields: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.row)
			if !slices.Equal(got.Fields(), tt.wantFields) {
				t.Errorf("Fields() = %v, want %v", got.Fields(), tt.wantFields)
			}
			if got.Len() != len(tt.wantFields) {
				t.Errorf("Len() = %d, want %d", got.Len(), len(tt.wantFields))
			}
		})
	}
}

func TestProjectValues(t *testing.T) {
	r := Project(Row{
		Fields: []string{"name", "size"},
		Values: []Value{String("leaf"), Number(2.5)},
	})

	name, ok := r.Get("name")
	if !ok || name.String() != "leaf" {
		t.Errorf("Get(name) = %v, %v", name, ok)
	}
	size, ok := r.Get("size")
	if !ok {
		t.Fatal("size missing")
	}
	if f, _ := size.Float(); f != 2.5 {
		t.Errorf("size = %v, want 2.5", f)
	}
	if r.Has("parent") {
		t.Error("Has(parent) = true for absent field")
	}
}

func TestValueFloat(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		want   float64
		wantOK bool
	}{
		{"number", Number(4), 4, true},
		{"numeric string", String(" 12.5 "), 12.5, true},
		{"text", String("Crew"), 0, false},
		{"missing", Missing(), 0, false},
		{"nan string", String("NaN"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Float()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Float() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(3), "3"},
		{Number(2.5), "2.5"},
		{String("1st"), "1st"},
		{Missing(), ""},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"", Missing()},
		{"  ", Missing()},
		{"NA", Missing()},
		{"42", Number(42)},
		{"-1.5", Number(-1.5)},
		{"Male", String("Male")},
		{" Crew ", String("Crew")},
		{"Inf", String("Inf")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Parse(tt.in, "NA"); !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v (%s), want %v (%s)", tt.in, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestRecordSetDelete(t *testing.T) {
	var r Record
	r.Set("a", String("1"))
	r.Set("b", String("2"))
	r.Set("a", String("3"))

	if !slices.Equal(r.Fields(), []string{"a", "b"}) {
		t.Errorf("Fields() = %v, want [a b]", r.Fields())
	}
	if v, _ := r.Get("a"); v.String() != "3" {
		t.Errorf("a = %q, want 3", v.String())
	}

	r.Set("a", Missing())
	if r.Has("a") {
		t.Error("setting a missing value should remove the field")
	}
	if !slices.Equal(r.Fields(), []string{"b"}) {
		t.Errorf("Fields() = %v, want [b]", r.Fields())
	}
}

func TestNew(t *testing.T) {
	r := New("name", "A", "parent", nil, "value", 2.0)
	if r.Has("parent") {
		t.Error("nil value should be skipped")
	}
	if !slices.Equal(r.Fields(), []string{"name", "value"}) {
		t.Errorf("Fields() = %v", r.Fields())
	}
}

func TestParseKeepsNumericText(t *testing.T) {
	tests := []struct {
		in   string
		text string
		num  float64
	}{
		{"007", "007", 7},
		{"01", "01", 1},
		{"1.50", "1.50", 1.5},
		{"1e3", "1e3", 1000},
		{" 5 ", "5", 5},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := Parse(tt.in)
			if v.Kind() != KindNumber {
				t.Fatalf("Kind() = %s, want number", v.Kind())
			}
			if v.String() != tt.text {
				t.Errorf("String() = %q, want %q", v.String(), tt.text)
			}
			if f, ok := v.Float(); !ok || f != tt.num {
				t.Errorf("Float() = %v, %v, want %v", f, ok, tt.num)
			}
		})
	}

	if Parse("01").Equal(Parse("1")) {
		t.Error(`Parse("01") should not equal Parse("1")`)
	}
}

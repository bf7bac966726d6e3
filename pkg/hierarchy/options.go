package hierarchy

import (
	"github.com/matzehuels/treeflow/pkg/errors"
)

// Stat selects how node values are aggregated.
type Stat string

// Supported statistics.
const (
	StatCount Stat = "count"
	StatSum   Stat = "sum"
)

// Default option values.
const (
	DefaultNameField  = "name"
	DefaultValueField = "value"
	DefaultRootName   = "root"
	DefaultStat       = StatCount

	// DefaultPathSep joins contingency levels when no separator is configured.
	DefaultPathSep = "/"
)

// Fields synthesized when flattening a contingency table.
const (
	PathField = "pathString"
	FreqField = "Freq"
)

// ParseStat converts s to a Stat. The empty string yields the default.
func ParseStat(s string) (Stat, error) {
	switch Stat(s) {
	case "":
		return DefaultStat, nil
	case StatCount, StatSum:
		return Stat(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown stat %q (must be one of: count, sum)", s)
}

// Options configures normalization. Options is a plain value: construct it
// once per call. Empty fields take the defaults listed on each field.
type Options struct {
	// NameField holds the node name, or the path string for path input.
	// Default "name".
	NameField string `json:"name_field,omitempty" toml:"name_field"`

	// ValueField holds the numeric value used by StatSum. Default "value".
	ValueField string `json:"value_field,omitempty" toml:"value_field"`

	// PathSep splits path strings. Setting it selects the path builder.
	PathSep string `json:"path_sep,omitempty" toml:"path_sep"`

	// ParentField names the parent of each record. Setting it selects the
	// parent-link builder.
	ParentField string `json:"parent_field,omitempty" toml:"parent_field"`

	// Stat is the aggregation rule. Default "count".
	Stat Stat `json:"stat,omitempty" toml:"stat"`

	// RootName names the implicit root of path-built trees. Default "root".
	RootName string `json:"root_name,omitempty" toml:"root_name"`

	// DropZero removes zero-valued leaves after building.
	DropZero bool `json:"drop_zero,omitempty" toml:"drop_zero"`
}

// WithDefaults returns a copy of o with empty fields set to their defaults.
// PathSep and ParentField are left alone since their absence is meaningful.
func (o Options) WithDefaults() Options {
	if o.NameField == "" {
		o.NameField = DefaultNameField
	}
	if o.ValueField == "" {
		o.ValueField = DefaultValueField
	}
	if o.Stat == "" {
		o.Stat = DefaultStat
	}
	if o.RootName == "" {
		o.RootName = DefaultRootName
	}
	return o
}

// Validate checks the options independently of the input shape.
// Call it on a value returned by WithDefaults.
func (o Options) Validate() error {
	if _, err := ParseStat(string(o.Stat)); err != nil {
		return err
	}
	if o.ParentField != "" && o.ParentField == o.NameField {
		return errors.New(errors.ErrCodeInvalidConfig, "parent field and name field are both %q", o.NameField)
	}
	if o.Stat == StatSum && o.ValueField == o.NameField {
		return errors.New(errors.ErrCodeInvalidConfig, "value field and name field are both %q", o.NameField)
	}
	return nil
}

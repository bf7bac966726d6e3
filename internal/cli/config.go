package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treeflow/pkg/api"
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/hierarchy"
	"github.com/matzehuels/treeflow/pkg/widget"
)

// Config is the on-disk configuration. Every table is optional.
//
//	[input]
//	na = ["NA", "-"]
//
//	[normalize]
//	parent_field = "parent"
//	stat = "sum"
//	value_field = "size"
//
//	[widget]
//	mode = "sunburst"
//	width = 640
//
//	[widget.options]
//	duration = 750
//
//	[server]
//	addr = ":9090"
//	read_timeout = "10s"
type Config struct {
	Input     InputConfig       `toml:"input"`
	Normalize hierarchy.Options `toml:"normalize"`
	Widget    widget.Config     `toml:"widget"`
	Server    api.Config        `toml:"server"`
}

// InputConfig holds defaults for reading input files.
type InputConfig struct {
	Format     string   `toml:"format"`
	NA         []string `toml:"na"`
	Dimensions []string `toml:"dimensions"`
	Weight     string   `toml:"weight"`
}

// loadConfig reads the file at path. An empty path falls back to the user
// config file, which may be absent. Unknown keys are rejected so typos do
// not pass silently.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, err
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

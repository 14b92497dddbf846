// Package yaml loads aggregator configuration from YAML, layering an
// optional user file over the embedded defaults.
package yaml

import (
	_ "embed"
	"os"

	"github.com/garagekb/garagekb"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// Default returns the embedded built-in configuration.
func Default() (*garagekb.Config, error) {
	return Load("")
}

// Load returns the built-in configuration overlaid with the file at path.
// Maps merge per key; scalars and lists present in the file replace the
// defaults wholesale. An empty path returns the defaults unchanged.
func Load(path string) (*garagekb.Config, error) {
	cfg := &garagekb.Config{}
	if err := yamlv3.Unmarshal(defaultConfig, cfg); err != nil {
		return nil, garagekb.Errorf(garagekb.EINTERNAL, "built-in configuration is broken: %v", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, garagekb.Errorf(garagekb.ENOTFOUND, "cannot read config file %s: %v", path, err)
		}
		if err := yamlv3.Unmarshal(data, cfg); err != nil {
			return nil, garagekb.Errorf(garagekb.EINVALID, "cannot parse config file %s: %v", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

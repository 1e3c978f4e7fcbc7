// Package config loads the optional YAML configuration file. Command-line
// flags override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"depscan/graph"
)

// DefaultFileName is looked up in the scan root when no --config is given.
const DefaultFileName = "depscan.yaml"

// Include toggles which node kinds survive filtering. File nodes are always
// kept.
type Include struct {
	Assets    bool `yaml:"assets"`
	Externals bool `yaml:"externals"`
	Builtins  bool `yaml:"builtins"`
	Folders   bool `yaml:"folders"`
	Packages  bool `yaml:"packages"`
}

// Config mirrors the depscan.yaml file.
type Config struct {
	Ignore      []string `yaml:"ignore"`
	IgnoreNodes []string `yaml:"ignoreNodes"`
	Include     Include  `yaml:"include"`
	Format      string   `yaml:"format"`
	Output      string   `yaml:"output"`
	Workers     int      `yaml:"workers"`
	Prune       bool     `yaml:"prune"`
	Compress    bool     `yaml:"compress"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Include: Include{
			Assets:    true,
			Externals: true,
			Builtins:  true,
			Packages:  true,
		},
		Format: "dot",
	}
}

// Load reads a config file over the defaults. A missing file is not an
// error and yields the defaults; a malformed one is.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil && os.IsNotExist(err) {
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads an explicitly named config file. Unlike Load, a missing
// file is an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// IncludeMap converts the include toggles to the filter's kind map.
func (c Config) IncludeMap() map[graph.NodeKind]bool {
	return map[graph.NodeKind]bool{
		graph.KindFile:     true,
		graph.KindAsset:    c.Include.Assets,
		graph.KindExternal: c.Include.Externals,
		graph.KindBuiltin:  c.Include.Builtins,
		graph.KindFolder:   c.Include.Folders,
		graph.KindPackage:  c.Include.Packages,
	}
}

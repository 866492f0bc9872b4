package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Prompt      string `yaml:"prompt,omitempty"`      // shown before each command
	NumberWidth int    `yaml:"numberwidth,omitempty"` // width of line numbers printed by p
	Highlight   bool   `yaml:"highlight"`             // colorize p output on a terminal
	Theme       string `yaml:"theme,omitempty"`       // chroma style name
	StripANSI   bool   `yaml:"stripansi"`             // drop escape sequences from typed text
	Watch       bool   `yaml:"watch"`                 // warn when the file changes on disk
	Journal     string `yaml:"journal,omitempty"`     // json lines log of edits, empty disables
}

var DefaultConfig = Config{
	Prompt:      "> ",
	NumberWidth: 4,
	Highlight:   false,
	Theme:       "monokai",
	StripANSI:   true,
	Watch:       true,
}

// Path picks the config file: explicit path, then SLED_CONF, then sled.yaml.
func Path(explicit string) string {
	if explicit != "" { return explicit }
	if conffilename, exists := os.LookupEnv("SLED_CONF"); exists { return conffilename }
	return "sled.yaml"
}

// Load reads the yaml config at path over the defaults. A missing file is not
// an error and yields DefaultConfig.
func Load(path string) (Config, error) {
	conf := DefaultConfig

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) { return conf, nil }
	if err != nil { return conf, fmt.Errorf("read config %s: %w", path, err) }

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return DefaultConfig, fmt.Errorf("parse config %s: %w", path, err)
	}

	// zero values mean "not set"
	if conf.Prompt == "" { conf.Prompt = DefaultConfig.Prompt }
	if conf.NumberWidth <= 0 { conf.NumberWidth = DefaultConfig.NumberWidth }
	if conf.Theme == "" { conf.Theme = DefaultConfig.Theme }

	return conf, nil
}

// GetConfig loads the config from the default location, falling back to
// defaults on any error.
func GetConfig() Config {
	conf, err := Load(Path(""))
	if err != nil { return DefaultConfig }
	return conf
}

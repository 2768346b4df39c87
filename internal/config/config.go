package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/wardmap/internal/extract"
	"github.com/ja-he/wardmap/internal/history"
	"github.com/ja-he/wardmap/internal/model"
	"github.com/ja-he/wardmap/internal/mutate"
	"github.com/ja-he/wardmap/internal/recovery"
)

// Config is the configuration data as present in a config file at
// '${WARDMAP_HOME}/config.yaml'.
type Config struct {
	History  History  `yaml:"history"`
	Recovery Recovery `yaml:"recovery"`
	Parser   Parser   `yaml:"parser"`
	Defaults Defaults `yaml:"defaults"`
	Editor   Editor   `yaml:"editor"`
}

// History configures the undo/redo history.
//
// For the debounce format see time.ParseDuration.
type History struct {
	MaxSize  int    `yaml:"max-size,omitempty"`
	Debounce string `yaml:"debounce,omitempty"`
}

// Recovery configures how malformed names are recovered.
type Recovery struct {
	// SyntaxBreaking is the set of characters a name must not consist of
	// exclusively.
	SyntaxBreaking string         `yaml:"syntax-breaking,omitempty"`
	Fallbacks      recovery.Table `yaml:"fallbacks,omitempty"`
}

// Parser configures parsing.
type Parser struct {
	CacheSize int `yaml:"cache-size,omitempty"`
}

// Defaults are the coordinates given to elements written without any.
type Defaults struct {
	Point    []float64 `yaml:"point,omitempty"`
	Bounds   []float64 `yaml:"bounds,omitempty"`
	Maturity *float64  `yaml:"maturity,omitempty"`
}

// Editor configures editing.
type Editor struct {
	MinBoxSize *float64          `yaml:"min-box-size,omitempty"`
	NudgeStep  *float64          `yaml:"nudge-step,omitempty"`
	Keys       map[string]string `yaml:"keys,omitempty"`
}

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment the default configuration.
func ParseConfigAugmentDefaults(yamlData []byte) (Config, error) {
	defaultConfig := Default()

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%s)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)
	if err := result.validate(); err != nil {
		return defaultConfig, err
	}

	return result, nil
}

// Home returns the wardmap configuration directory, '${WARDMAP_HOME}' or,
// if that is not set, '${HOME}/.config/wardmap'.
func Home() string {
	home := os.Getenv("WARDMAP_HOME")
	if home == "" {
		home = filepath.Join(os.Getenv("HOME"), ".config", "wardmap")
	}
	return home
}

// Load reads 'config.yaml' in the given directory. A missing file yields the
// default configuration.
func Load(dir string) (Config, error) {
	yamlData, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("could not read config file (%w)", err)
	}
	return ParseConfigAugmentDefaults(yamlData)
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	if augment.History.MaxSize > 0 {
		result.History.MaxSize = augment.History.MaxSize
	}
	if augment.History.Debounce != "" {
		result.History.Debounce = augment.History.Debounce
	}

	if augment.Recovery.SyntaxBreaking != "" {
		result.Recovery.SyntaxBreaking = augment.Recovery.SyntaxBreaking
	}
	if len(augment.Recovery.Fallbacks) > 0 {
		result.Recovery.Fallbacks = augment.Recovery.Fallbacks
	}

	if augment.Parser.CacheSize > 0 {
		result.Parser.CacheSize = augment.Parser.CacheSize
	}

	if augment.Defaults.Point != nil {
		result.Defaults.Point = augment.Defaults.Point
	}
	if augment.Defaults.Bounds != nil {
		result.Defaults.Bounds = augment.Defaults.Bounds
	}
	overwriteIfDefined(&result.Defaults.Maturity, augment.Defaults.Maturity)

	overwriteIfDefined(&result.Editor.MinBoxSize, augment.Editor.MinBoxSize)
	overwriteIfDefined(&result.Editor.NudgeStep, augment.Editor.NudgeStep)
	if len(augment.Editor.Keys) > 0 {
		keys := map[string]string{}
		for k, v := range base.Editor.Keys {
			keys[k] = v
		}
		for k, v := range augment.Editor.Keys {
			keys[k] = v
		}
		result.Editor.Keys = keys
	}

	return result
}

func overwriteIfDefined(v **float64, augment *float64) {
	if augment != nil {
		value := *augment
		*v = &value
	}
}

func (c Config) validate() error {
	if _, err := time.ParseDuration(c.History.Debounce); err != nil {
		return fmt.Errorf("invalid history debounce '%s' (%w)", c.History.Debounce, err)
	}
	if len(c.Defaults.Point) != 2 {
		return fmt.Errorf("default point needs 2 values, has %d", len(c.Defaults.Point))
	}
	if len(c.Defaults.Bounds) != 4 {
		return fmt.Errorf("default bounds need 4 values, have %d", len(c.Defaults.Bounds))
	}
	values := append(append([]float64{}, c.Defaults.Point...), c.Defaults.Bounds...)
	values = append(values, *c.Defaults.Maturity, *c.Editor.MinBoxSize, *c.Editor.NudgeStep)
	for _, v := range values {
		if v < 0 || v > 1 {
			return fmt.Errorf("value %v is outside [0,1]", v)
		}
	}
	return nil
}

// ExtractOptions returns the parse options the configuration describes.
func (c Config) ExtractOptions() extract.Options {
	o := extract.DefaultOptions()
	o.Policy = recovery.NewPolicy(c.Recovery.SyntaxBreaking, c.Recovery.Fallbacks)
	o.DefaultPoint = model.Point{Visibility: c.Defaults.Point[0], Maturity: c.Defaults.Point[1]}
	b := c.Defaults.Bounds
	o.DefaultBounds = model.Bounds{Visibility1: b[0], Maturity1: b[1], Visibility2: b[2], Maturity2: b[3]}
	o.DefaultMaturity = *c.Defaults.Maturity
	return o
}

// Engine returns a mutation engine for the configuration.
func (c Config) Engine() *mutate.Engine {
	return mutate.NewEngine(c.ExtractOptions(), *c.Editor.MinBoxSize)
}

// NewParser returns a caching parser for the configuration.
func (c Config) NewParser() *extract.Parser {
	return extract.NewParser(c.ExtractOptions(), c.Parser.CacheSize)
}

// HistoryOptions returns the history options for the configuration.
func (c Config) HistoryOptions() history.Options {
	// validated on parse
	debounce, _ := time.ParseDuration(c.History.Debounce)
	return history.Options{MaxSize: c.History.MaxSize, Debounce: debounce}
}

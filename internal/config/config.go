// Package config loads analyzer definitions from YAML and builds them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	Logging   Logging                   `yaml:"logging"`
	Filters   map[string]FilterConfig   `yaml:"filters"`
	Analyzers map[string]AnalyzerConfig `yaml:"analyzers"`
}

// Logging configures the command line loggers.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

// AnalyzerConfig names the parts of one analyzer.
type AnalyzerConfig struct {
	CharFilters []string `yaml:"char_filters,omitempty"`
	Tokenizer   string   `yaml:"tokenizer"`
	Filters     []string `yaml:"filters,omitempty"`
}

// FilterConfig is one entry of the filters section. Its options depend on
// Type and are decoded strictly when the filter is built.
type FilterConfig struct {
	Type string
	raw  yaml.Node
}

// UnmarshalYAML records the type and keeps the node for later decoding.
func (f *FilterConfig) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}
	if head.Type == "" {
		return fmt.Errorf("line %d: filter without type", value.Line)
	}
	f.Type = head.Type
	f.raw = *value
	return nil
}

// MarshalYAML writes the options back unchanged.
func (f FilterConfig) MarshalYAML() (interface{}, error) {
	if f.raw.Kind == 0 {
		return map[string]string{"type": f.Type}, nil
	}
	return &f.raw, nil
}

// decode decodes the filter options into v, rejecting unknown keys.
func (f FilterConfig) decode(v interface{}) error {
	if f.raw.Kind == 0 {
		return nil
	}
	data, err := yaml.Marshal(&f.raw)
	if err != nil {
		return err
	}
	return strictUnmarshal(data, v)
}

// Error reports a filter or analyzer that could not be built.
type Error struct {
	Analyzer string
	Filter   string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Analyzer != "" && e.Filter != "":
		return fmt.Sprintf("config: analyzer %q: filter %q: %v", e.Analyzer, e.Filter, e.Err)
	case e.Analyzer != "":
		return fmt.Sprintf("config: analyzer %q: %v", e.Analyzer, e.Err)
	default:
		return fmt.Sprintf("config: filter %q: %v", e.Filter, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Default returns a configuration with one analyzer named "default" that
// only tokenizes.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		Analyzers: map[string]AnalyzerConfig{
			"default": {Tokenizer: "word"},
		},
	}
}

// Parse decodes a YAML document. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := strictUnmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.Analyzers) == 0 {
		cfg.Analyzers = Default().Analyzers
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

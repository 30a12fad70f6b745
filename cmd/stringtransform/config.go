package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/LFKoning/stringtransform/pkg/funcs"
	"github.com/LFKoning/stringtransform/pkg/transformer"
)

// Config describes a cleaning run: where the data comes from, where it goes,
// which columns to touch, and the pipeline steps.
type Config struct {
	Input struct {
		Path      string `json:"path" yaml:"path" toml:"path"`
		Type      string `json:"type" yaml:"type" toml:"type"` // csv|jsonl|parquet (default csv)
		HasHeader bool   `json:"has_header" yaml:"has_header" toml:"has_header"`
		Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	} `json:"input" yaml:"input" toml:"input"`
	Output struct {
		Path      string `json:"path" yaml:"path" toml:"path"`
		Type      string `json:"type" yaml:"type" toml:"type"`
		Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	} `json:"output" yaml:"output" toml:"output"`
	Columns []string     `json:"columns" yaml:"columns" toml:"columns"`
	Steps   []StepConfig `json:"steps" yaml:"steps" toml:"steps"`
}

// StepConfig is one pipeline step by registry name, with optional positional
// or keyword arguments. In YAML and JSON a bare string is shorthand for a
// step without arguments:
//
//	steps:
//	  - trim
//	  - {func: replace, args: [" ", "_"]}
//	  - {func: hash, kwargs: {algorithm: sha256}}
type StepConfig struct {
	Func   string            `json:"func" yaml:"func" toml:"func"`
	Args   []string          `json:"args" yaml:"args" toml:"args"`
	Kwargs map[string]string `json:"kwargs" yaml:"kwargs" toml:"kwargs"`
}

func (s *StepConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&s.Func)
	}
	type plain StepConfig
	return node.Decode((*plain)(s))
}

func (s *StepConfig) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &s.Func)
	}
	type plain StepConfig
	return json.Unmarshal(b, (*plain)(s))
}

// loadConfig parses the config file, dispatching on extension: .yaml/.yml,
// .toml, anything else JSON.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// buildTransformer resolves the configured steps against the function
// registry and assembles the pipeline.
func buildTransformer(cfg *Config) (*transformer.Transformer, error) {
	tfm := transformer.New(cfg.Columns...)
	for _, sc := range cfg.Steps {
		fn, ok := funcs.Lookup(sc.Func)
		if !ok {
			return nil, fmt.Errorf("unknown step %q (known: %s)", sc.Func, strings.Join(funcs.Names(), ", "))
		}
		if len(sc.Kwargs) > 0 {
			tfm.AddKeyword(fn, sc.Kwargs)
			continue
		}
		tfm.Add(fn, sc.Args...)
	}
	return tfm, nil
}

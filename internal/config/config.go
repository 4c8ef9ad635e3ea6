// Package config loads logicrules settings from an optional YAML file.
//
// Example logicrules.yaml:
//
//	store:
//	  path: logic_results.csv
//	  backend: csv
//	policy:
//	  passing_grade: 75
//	  participation_bonus: 5
//	  password: admin123
//	log_level: info
//
// Keys left out keep their defaults. The merged result is validated against
// an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/logicrules/internal/rules"
	"github.com/roach88/logicrules/internal/store"
)

// DefaultFile is read when no config path is given and the file exists.
const DefaultFile = "logicrules.yaml"

//go:embed schema.cue
var schemaCUE string

// Config is the full configuration.
type Config struct {
	Store    StoreConfig  `yaml:"store" json:"store"`
	Policy   PolicyConfig `yaml:"policy" json:"policy"`
	LogLevel string       `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// StoreConfig selects where records live.
//
// A path left unset follows the backend: logic_results.csv for csv and
// logic_results.db for sqlite.
type StoreConfig struct {
	Path    string `yaml:"path" json:"path"`
	Backend string `yaml:"backend" json:"backend"`

	// pathSet records that Path was given explicitly.
	pathSet bool
}

// PolicyConfig mirrors rules.Policy.
type PolicyConfig struct {
	PassingGrade       float64 `yaml:"passing_grade" json:"passing_grade"`
	ParticipationBonus float64 `yaml:"participation_bonus" json:"participation_bonus"`
	Password           string  `yaml:"password" json:"password"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := rules.DefaultPolicy()
	return Config{
		Store: StoreConfig{
			Path:    store.DefaultPathFor(store.BackendCSV),
			Backend: store.BackendCSV,
		},
		Policy: PolicyConfig{
			PassingGrade:       p.PassingGrade,
			ParticipationBonus: p.ParticipationBonus,
			Password:           p.Password,
		},
		LogLevel: "info",
	}
}

// ValidationError reports a configuration that violates the schema.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Source, cueerrors.Details(e.Err, nil))
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Load reads the file at path over the defaults.
//
// An empty path reads DefaultFile if it exists and otherwise returns the
// defaults. A path that was named explicitly must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	f, err := os.Open(path)
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader, source string) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", source, err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", source, err)
		}

		var seen struct {
			Store struct {
				Path *string `yaml:"path"`
			} `yaml:"store"`
		}
		if err := yaml.Unmarshal(data, &seen); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", source, err)
		}
		if seen.Store.Path != nil {
			cfg.Store.pathSet = true
		} else {
			cfg.Store.Path = store.DefaultPathFor(cfg.Store.Backend)
		}
	}

	if err := cfg.validate(source); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UseBackend switches the store backend. A path that was never set
// explicitly moves to the new backend's default.
func (c *Config) UseBackend(kind string) {
	c.Store.Backend = kind
	if !c.Store.pathSet {
		c.Store.Path = store.DefaultPathFor(kind)
	}
}

// UsePath sets the store path explicitly.
func (c *Config) UsePath(path string) {
	c.Store.Path = path
	c.Store.pathSet = true
}

// Validate checks the configuration against the schema.
func (c Config) Validate() error {
	return c.validate("<memory>")
}

func (c Config) validate(source string) error {
	cctx := cuecontext.New()

	schema := cctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.Unify(cctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Source: source, Err: err}
	}
	return nil
}

// RulesPolicy returns the policy for rules.NewRegistry.
func (c Config) RulesPolicy() rules.Policy {
	return rules.Policy{
		PassingGrade:       c.Policy.PassingGrade,
		ParticipationBonus: c.Policy.ParticipationBonus,
		Password:           c.Policy.Password,
	}
}

// Package config loads the sqlalign TOML configuration file. Every section
// is optional; missing keys keep the values from Default.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
	"sqlalign/internal/synth"
)

// DefaultFile is looked up in the working directory when --config is not given.
const DefaultFile = "sqlalign.toml"

// DSNEnv names the environment variable that overrides apply.dsn.
const DSNEnv = "SQLALIGN_DSN"

// DecodeMode selects how batch input bytes are turned into text.
type DecodeMode string

const (
	// DecodeStrict rejects input that is not valid UTF-8 or UTF-16 with a BOM.
	DecodeStrict DecodeMode = "strict"
	// DecodeLenient drops undecodable bytes instead of failing.
	DecodeLenient DecodeMode = "lenient"
)

type Config struct {
	Align AlignConfig `toml:"align"`
	Synth SynthConfig `toml:"synth"`
	Batch BatchConfig `toml:"batch"`
	Apply ApplyConfig `toml:"apply"`
}

type AlignConfig struct {
	WrapWidth     int  `toml:"wrap_width"`
	CaseSensitive bool `toml:"case_sensitive"`
}

type SynthConfig struct {
	Dialect           string `toml:"dialect"`
	Schema            string `toml:"schema"`
	IncludeDrop       bool   `toml:"include_drop"`
	IncludeBaseFields bool   `toml:"include_base_fields"`
	IncludeSequence   bool   `toml:"include_sequence"`
	ConvertNaming     bool   `toml:"convert_naming"`
	TableSuffix       string `toml:"table_suffix"`
}

type BatchConfig struct {
	Prefix  string     `toml:"prefix"`
	Workers int        `toml:"workers"`
	Decode  DecodeMode `toml:"decode"`
}

type ApplyConfig struct {
	DSN     string `toml:"dsn"`
	Dialect string `toml:"dialect"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Align: AlignConfig{
			WrapWidth: core.DefaultWrapWidth,
		},
		Synth: SynthConfig{
			Dialect:           string(dialect.PostgreSQL),
			IncludeDrop:       true,
			IncludeBaseFields: true,
			IncludeSequence:   true,
			ConvertNaming:     true,
			TableSuffix:       synth.DefaultTableSuffix,
		},
		Batch: BatchConfig{
			Prefix:  "aligned_",
			Workers: 4,
			Decode:  DecodeStrict,
		},
		Apply: ApplyConfig{
			Dialect: string(dialect.MySQL),
		},
	}
}

// LoadFile reads and validates the configuration at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open file %q: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes TOML from r on top of Default and validates the result.
// Unknown keys are rejected so that typos do not pass silently.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads path when set, else DefaultFile when it exists, else the
// defaults.
func Discover(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return LoadFile(DefaultFile)
	}
	return Default(), nil
}

// Validate checks every range and enumeration in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if !core.ValidWrapWidth(c.Align.WrapWidth) {
		errs = append(errs, fmt.Errorf("align.wrap_width %d is outside [%d, %d]",
			c.Align.WrapWidth, core.MinWrapWidth, core.MaxWrapWidth))
	}
	if _, err := dialect.ParseType(c.Synth.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("synth.dialect: %w", err))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must be >= 0, got %d", c.Batch.Workers))
	}
	switch c.Batch.Decode {
	case DecodeStrict, DecodeLenient:
	default:
		errs = append(errs, fmt.Errorf("batch.decode %q is not one of %q, %q",
			c.Batch.Decode, DecodeStrict, DecodeLenient))
	}
	if _, err := dialect.ParseType(c.Apply.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("apply.dialect: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

// AlignOptions returns the aligner options from the [align] section.
func (c *Config) AlignOptions() core.AlignOptions {
	return core.AlignOptions{
		WrapWidth:     c.Align.WrapWidth,
		CaseSensitive: c.Align.CaseSensitive,
	}
}

// SynthOptions returns the synthesizer options from the [synth] section.
// The dialect has already been checked by Validate.
func (c *Config) SynthOptions() synth.Options {
	t, _ := dialect.ParseType(c.Synth.Dialect)
	return synth.Options{
		Schema:            c.Synth.Schema,
		IncludeDrop:       c.Synth.IncludeDrop,
		IncludeBaseFields: c.Synth.IncludeBaseFields,
		IncludeSequence:   c.Synth.IncludeSequence,
		ConvertNaming:     c.Synth.ConvertNaming,
		Dialect:           t,
		TableSuffix:       c.Synth.TableSuffix,
		Align:             c.AlignOptions(),
	}
}

// ResolveDSN fills Apply.DSN from the environment when it is unset. Values
// from envFile (usually ".env") are loaded first without overriding
// variables that are already set; a missing envFile is not an error.
func (c *Config) ResolveDSN(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	if c.Apply.DSN == "" {
		c.Apply.DSN = os.Getenv(DSNEnv)
	}
	return nil
}

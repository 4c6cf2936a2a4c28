package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/astrotime/deltat"
	"github.com/c360/astrotime/errors"
)

// Delta-T model names accepted in configuration
const (
	ModelStandard     = "standard"
	ModelEspenakMeeus = "espenak-meeus"
)

// Encoding names accepted in configuration. Latin-1 is the default for
// compatibility with the legacy ephemeris data format; file-derived strings
// must survive a decode/encode round trip bit for bit.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf-8"
)

// Config is the immutable-per-session settings record of the astrotime core.
type Config struct {
	// DeltaTModel selects the Delta-T algorithm: "standard" (default) or
	// "espenak-meeus".
	DeltaTModel string `json:"delta_t_model" yaml:"delta_t_model"`

	// Encoding is the text encoding for strings exchanged with the planetary
	// collaborator. Defaults to "latin1"; override only when the caller knows
	// its data files use something else.
	Encoding string `json:"encoding" yaml:"encoding"`

	// Provider configures the built-in data providers. All fields optional.
	Provider ProviderConfig `json:"provider" yaml:"provider"`
}

// ProviderConfig holds optional settings for the built-in data providers.
type ProviderConfig struct {
	// Dir is a filesystem directory to resolve ephemeris files from.
	// Empty means no filesystem provider.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// CacheSize is the maximum number of resolved files held by the caching
	// wrapper. Zero disables caching.
	CacheSize int `json:"cache_size,omitempty" yaml:"cache_size,omitempty"`

	// Bucket is the name of a JetStream ObjectStore bucket to resolve files
	// from. Empty means no object-store provider.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
}

// Default returns the default configuration: standard Delta-T model, Latin-1
// encoding, no providers.
func Default() *Config {
	return &Config{
		DeltaTModel: ModelStandard,
		Encoding:    EncodingLatin1,
	}
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return Default()
	}

	// Use JSON marshaling/unmarshaling for deep copy
	data, err := json.Marshal(c)
	if err != nil {
		// Fallback to shallow copy if marshaling fails
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}

	return &clone
}

// Validate checks the configuration for consistency. Empty fields are valid
// and fall back to defaults at use sites.
func (c *Config) Validate() error {
	switch c.DeltaTModel {
	case "", ModelStandard, ModelEspenakMeeus:
	default:
		return fmt.Errorf("unknown delta_t_model %q: %w", c.DeltaTModel, errors.ErrInvalidConfig)
	}

	switch c.Encoding {
	case "", EncodingLatin1, EncodingUTF8:
	default:
		return fmt.Errorf("unknown encoding %q: %w", c.Encoding, errors.ErrInvalidConfig)
	}

	if c.Provider.CacheSize < 0 {
		return fmt.Errorf("provider cache_size %d must not be negative: %w",
			c.Provider.CacheSize, errors.ErrInvalidConfig)
	}

	return nil
}

// Model maps the configured model name to the deltat package's selector.
// An empty name means the standard model.
func (c *Config) Model() deltat.Model {
	if c != nil && c.DeltaTModel == ModelEspenakMeeus {
		return deltat.EspenakMeeus
	}
	return deltat.Standard
}

// LoadFile reads a YAML configuration file, applies defaults for unset
// fields, and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "LoadFile", "read file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "LoadFile", "parse yaml")
	}
	if cfg.DeltaTModel == "" {
		cfg.DeltaTModel = ModelStandard
	}
	if cfg.Encoding == "" {
		cfg.Encoding = EncodingLatin1
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "config", "LoadFile", "validate")
	}
	return cfg, nil
}

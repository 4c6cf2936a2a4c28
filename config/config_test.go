package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/astrotime/deltat"
	"github.com/c360/astrotime/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ModelStandard, cfg.DeltaTModel)
	assert.Equal(t, EncodingLatin1, cfg.Encoding)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, deltat.Standard, cfg.Model())
}

func TestClone_Independence(t *testing.T) {
	orig := Default()
	orig.Provider.Dir = "/var/lib/ephe"
	orig.Provider.CacheSize = 16

	clone := orig.Clone()
	require.Equal(t, orig, clone)

	// Mutating the original must not reach the clone.
	orig.DeltaTModel = ModelEspenakMeeus
	orig.Provider.Dir = "/elsewhere"
	assert.Equal(t, ModelStandard, clone.DeltaTModel)
	assert.Equal(t, "/var/lib/ephe", clone.Provider.Dir)
}

func TestClone_Nil(t *testing.T) {
	var cfg *Config
	clone := cfg.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, Default(), clone)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"espenak-meeus model", func(c *Config) { c.DeltaTModel = ModelEspenakMeeus }, false},
		{"empty model", func(c *Config) { c.DeltaTModel = "" }, false},
		{"unknown model", func(c *Config) { c.DeltaTModel = "lunar-occultation" }, true},
		{"utf-8 encoding", func(c *Config) { c.Encoding = EncodingUTF8 }, false},
		{"unknown encoding", func(c *Config) { c.Encoding = "ebcdic" }, true},
		{"negative cache size", func(c *Config) { c.Provider.CacheSize = -1 }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if test.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestModel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, deltat.Standard, cfg.Model())

	cfg.DeltaTModel = ModelEspenakMeeus
	assert.Equal(t, deltat.EspenakMeeus, cfg.Model())

	var nilCfg *Config
	assert.Equal(t, deltat.Standard, nilCfg.Model())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "astrotime.yaml")
		content := []byte("delta_t_model: espenak-meeus\nprovider:\n  dir: /var/lib/ephe\n  cache_size: 8\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ModelEspenakMeeus, cfg.DeltaTModel)
		// Unset fields fall back to defaults.
		assert.Equal(t, EncodingLatin1, cfg.Encoding)
		assert.Equal(t, "/var/lib/ephe", cfg.Provider.Dir)
		assert.Equal(t, 8, cfg.Provider.CacheSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsInvalid(err))
	})

	t.Run("invalid model", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("delta_t_model: nope\n"), 0o644))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

		_, err := LoadFile(path)
		require.Error(t, err)
	})
}

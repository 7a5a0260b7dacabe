// Package config loads nufmt settings from defaults, an optional config file
// and NUFMT_* environment variables.
package config

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/gaetschwartz/nuformats"
)

// EnvPrefix is prepended to every key when reading environment variables,
// e.g. NUFMT_OUTPUT or NUFMT_PREVIEW_BODY.
const EnvPrefix = "NUFMT"

// Setting keys.
const (
	KeyOutput      = "output"
	KeyPreviewBody = "preview_body"
	KeyStripQuotes = "strip_quotes"
	KeySkipInvalid = "skip_invalid"
	KeyStrict      = "strict"
	KeyLogLevel    = "log_level"
)

// Output formats understood by the renderer.
const (
	OutputTree  = "tree"
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config is the resolved nufmt configuration.
type Config struct {
	Output      string
	PreviewBody int
	StripQuotes bool
	SkipInvalid bool
	Strict      bool
	LogLevel    log.Level
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutput, OutputTree)
	v.SetDefault(KeyPreviewBody, 0)
	v.SetDefault(KeyStripQuotes, false)
	v.SetDefault(KeySkipInvalid, false)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyLogLevel, "warning")
}

// Load resolves the configuration. path names an optional config file in any
// format viper reads (YAML, TOML, JSON, ...); an empty path skips the file.
// Environment variables override the file, and the file overrides defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		log.WithFields(log.Fields{
			"path": v.ConfigFileUsed(),
		}).Debug("Loaded config file")
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}

	c := &Config{
		Output:      strings.ToLower(v.GetString(KeyOutput)),
		PreviewBody: v.GetInt(KeyPreviewBody),
		StripQuotes: v.GetBool(KeyStripQuotes),
		SkipInvalid: v.GetBool(KeySkipInvalid),
		Strict:      v.GetBool(KeyStrict),
		LogLevel:    level,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTree, OutputTable, OutputJSON:
	default:
		return fmt.Errorf("%s: unknown output %q (want %s, %s or %s)", KeyOutput, c.Output, OutputTree, OutputTable, OutputJSON)
	}
	if c.PreviewBody < 0 {
		return fmt.Errorf("%s: must not be negative, got %d", KeyPreviewBody, c.PreviewBody)
	}
	return nil
}

// ParseOptions converts the configuration into parser options.
func (c *Config) ParseOptions(logger log.FieldLogger) []nuformats.Option {
	var opts []nuformats.Option
	if c.PreviewBody > 0 {
		opts = append(opts, nuformats.WithPreviewBody(c.PreviewBody))
	}
	if c.StripQuotes {
		opts = append(opts, nuformats.WithQuoteStripping())
	}
	if c.SkipInvalid {
		opts = append(opts, nuformats.WithSkipInvalid())
	}
	if c.Strict {
		opts = append(opts, nuformats.WithStrictParsing())
	}
	if logger != nil {
		opts = append(opts, nuformats.WithLogger(logger))
	}
	return opts
}

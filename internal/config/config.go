// Package config loads the command line tool configuration from a file, the environment and flags.
package config

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/viper"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/log"
	"github.com/ghettovoice/gouri/uri"
)

const (
	KeyLogFormat = "log.format"
	KeyLogLevel  = "log.level"
	KeyBase      = "base"
	KeyOutput    = "output"
)

var defaults = map[string]any{
	KeyLogFormat: string(log.FormatConsole),
	KeyLogLevel:  "warn",
	KeyBase:      "",
	KeyOutput:    string(OutputText),
}

// Output is the command output format.
type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
	OutputYAML Output = "yaml"
)

// ParseOutput returns the output format by its case-insensitive name.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(s))); o {
	case OutputText, OutputJSON, OutputYAML:
		return o, nil
	case "yml":
		return OutputYAML, nil
	case "":
		return OutputText, nil
	default:
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown output format %q", s))
	}
}

// Config is the validated configuration.
type Config struct {
	LogFormat log.Format
	LogLevel  slog.Level
	// Base is the default base URI, zero if not configured.
	Base   uri.URI
	Output Output
}

// New creates a viper instance with defaults, search paths and environment binding.
//
// The config file is gouri.yaml looked up in /etc/gouri, $HOME/.gouri and the working directory.
// Environment variables use the GOURI_ prefix with dots replaced by underscores,
// e.g. GOURI_LOG_LEVEL.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigType("yaml")
	v.SetConfigName("gouri")
	v.AddConfigPath("/etc/gouri/")
	v.AddConfigPath("$HOME/.gouri")
	v.AddConfigPath(".")
	v.SetEnvPrefix("GOURI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and builds the [Config].
// If file is empty, the search paths are used and a missing file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return nil, errtrace.Wrap(fmt.Errorf("read config: %w", err))
		}
	}
	return errtrace.Wrap2(FromViper(v))
}

// FromViper builds the [Config] from already loaded settings.
// All invalid settings are reported at once.
func FromViper(v *viper.Viper) (*Config, error) {
	var (
		c    Config
		err  error
		errs []error
	)
	if c.LogFormat, err = log.ParseFormat(v.GetString(KeyLogFormat)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogFormat, err))
	}
	if c.LogLevel, err = log.ParseLevel(v.GetString(KeyLogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}
	if base := strings.TrimSpace(v.GetString(KeyBase)); base != "" {
		if c.Base, err = uri.Parse(base); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyBase, errorutil.NewInvalidArgumentError(err)))
		}
	}
	if c.Output, err = ParseOutput(v.GetString(KeyOutput)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyOutput, err))
	}
	if err := errorutil.JoinPrefix("invalid config", errs...); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &c, nil
}

// Logger creates the logger described by the config.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return log.New(c.LogFormat, w, c.LogLevel)
}

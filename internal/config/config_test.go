package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghettovoice/gouri/internal/config"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/log"
	"github.com/ghettovoice/gouri/uri"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Parallel()

	c, err := config.FromViper(config.New())
	require.NoError(t, err)
	assert.Equal(t, log.FormatConsole, c.LogFormat)
	assert.Equal(t, slog.LevelWarn, c.LogLevel)
	assert.True(t, c.Base.IsZero())
	assert.Equal(t, config.OutputText, c.Output)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "gouri.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
log:
  format: json
  level: debug
base: http://a/b/c/d;p?q
output: yaml
`), 0o600))

	c, err := config.Load(config.New(), file)
	require.NoError(t, err)
	assert.Equal(t, log.FormatJSON, c.LogFormat)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.True(t, c.Base.Equal(uri.New("http://a/b/c/d;p?q")))
	assert.Equal(t, config.OutputYAML, c.Output)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_Env(t *testing.T) { //nolint:paralleltest
	t.Setenv("GOURI_LOG_LEVEL", "error")
	t.Setenv("GOURI_OUTPUT", "json")

	c, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, c.LogLevel)
	assert.Equal(t, config.OutputJSON, c.Output)
}

func TestFromViper_Invalid(t *testing.T) {
	t.Parallel()

	v := config.New()
	v.Set(config.KeyLogFormat, "xml")
	v.Set(config.KeyLogLevel, "loud")
	v.Set(config.KeyBase, "../relative")
	v.Set(config.KeyOutput, "csv")

	c, err := config.FromViper(v)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errorutil.IsInvalidArgumentErr(err))
	for _, key := range []string{config.KeyLogFormat, config.KeyLogLevel, config.KeyBase, config.KeyOutput} {
		assert.Contains(t, err.Error(), key+":")
	}
	assert.True(t, uri.IsGrammarErr(err))
}

func TestParseOutput(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]config.Output{
		"":      config.OutputText,
		"TEXT":  config.OutputText,
		"json":  config.OutputJSON,
		"yml":   config.OutputYAML,
		" yaml": config.OutputYAML,
	} {
		got, err := config.ParseOutput(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := config.ParseOutput("csv")
	assert.True(t, errorutil.IsInvalidArgumentErr(err))
}

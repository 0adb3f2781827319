// Package log provides the slog loggers used across the module.
package log

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/uri"
)

var newFormatter = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u uri.URI) slog.Value {
		return slog.StringValue(u.String())
	}),
	slogformatter.FormatByType(func(c uri.Components) slog.Value {
		return c.LogValue()
	}),
)

// Format is a log output format.
type Format string

const (
	// FormatConsole is a colored human-readable single-line format.
	FormatConsole Format = "console"
	// FormatDev is a multi-line format with pretty-printed attributes.
	FormatDev Format = "dev"
	// FormatJSON is the [slog.JSONHandler] format.
	FormatJSON Format = "json"
	// FormatText is the [slog.TextHandler] format.
	FormatText Format = "text"
)

// ParseFormat returns the format by its case-insensitive name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatConsole, FormatDev, FormatJSON, FormatText:
		return f, nil
	case "":
		return FormatConsole, nil
	default:
		return "", errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown log format %q", s))
	}
}

// ParseLevel parses a level name such as "debug", "INFO" or "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return lvl, nil
}

// NewHandler creates a handler writing records of the given format to w.
// Errors and URI values are formatted uniformly regardless of the format.
func NewHandler(format Format, w io.Writer, level slog.Leveler) slog.Handler {
	var h slog.Handler
	switch format {
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatText:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		h = console.NewHandler(w, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		})
	}
	return newFormatter(h)
}

// New creates a logger with [NewHandler].
func New(format Format, w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(format, w, level))
}

// Dev is a developer logger.
var Dev = New(FormatDev, os.Stdout, slog.LevelDebug)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

var def atomic.Pointer[slog.Logger]

func init() {
	def.Store(New(FormatConsole, os.Stderr, slog.LevelInfo))
}

// Default returns the logger used by components created without an explicit logger.
// Initially it writes info records to stderr in the console format.
func Default() *slog.Logger { return def.Load() }

// SetDefault replaces the default logger. Nil resets it to [Noop].
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Noop
	}
	def.Store(l)
}

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type calcValue struct{ fn func() any }

func (v calcValue) LogValue() slog.Value {
	switch cv := v.fn().(type) {
	case slog.Value:
		return cv
	default:
		return slog.AnyValue(cv)
	}
}

// CalcValue returns a value logger that computes a value using fn only when the record is handled.
func CalcValue(fn func() any) slog.LogValuer { return calcValue{fn} }

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }

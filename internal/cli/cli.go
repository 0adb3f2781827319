// Package cli implements the gouri command line tool.
package cli

//go:generate go tool errtrace -w .

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/gouri/internal/config"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
}

// NewRootCommand creates the root command with all subcommands.
// Every call gets its own configuration state.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "gouri",
		Short: "Parse, resolve and decode URI references (RFC 3986)",
		Long: `gouri parses URI references with the RFC 3986 grammar, resolves them
against a base URI, decodes percent-encoded octets and extracts links from HTML.

Configuration is read from gouri.yaml in /etc/gouri, $HOME/.gouri or the working
directory, from GOURI_* environment variables and from flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file path")
	pf.String("log-format", "", "log format: console, dev, json or text")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.StringP("output", "o", "", "output format: text, json or yaml")
	a.v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format")) //nolint:errcheck
	a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))   //nolint:errcheck
	a.v.BindPFlag(config.KeyOutput, pf.Lookup("output"))        //nolint:errcheck

	root.AddCommand(
		a.parseCommand(),
		a.resolveCommand(),
		a.decodeCommand(),
		a.linksCommand(),
		a.checkCommand(),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute(ctx context.Context) error {
	return errtrace.Wrap(NewRootCommand().ExecuteContext(ctx))
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return errtrace.Wrap(err)
	}
	a.cfg = cfg
	a.log = cfg.Logger(cmd.ErrOrStderr())
	a.log.DebugContext(cmd.Context(), "config loaded",
		slog.String("command", cmd.Name()),
		slog.String("config", a.v.ConfigFileUsed()),
		slog.String("output", string(cfg.Output)),
		slog.Any("base", cfg.Base),
	)
	return nil
}

// write encodes v in the configured format, text is used for the text output.
func (a *app) write(w io.Writer, v any, text func(w io.Writer) error) error {
	switch a.cfg.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return errtrace.Wrap(enc.Encode(v))
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(enc.Close())
	default:
		return errtrace.Wrap(text(w))
	}
}

// inputs returns args, or non-empty lines of stdin if there are no args or the only arg is "-".
func inputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 && (len(args) != 1 || args[0] != "-") {
		return args, nil
	}
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if l := strings.TrimRight(sc.Text(), "\r"); l != "" {
			lines = append(lines, l)
		}
	}
	return lines, errtrace.Wrap(sc.Err())
}

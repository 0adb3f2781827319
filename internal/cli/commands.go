package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/links"
	"github.com/ghettovoice/gouri/uri"
)

type parseResult struct {
	Input      string          `json:"input" yaml:"input"`
	Rule       string          `json:"rule" yaml:"rule"`
	Components *uri.Components `json:"components,omitempty" yaml:"components,omitempty"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) parseCommand() *cobra.Command {
	var rule string
	cmd := &cobra.Command{
		Use:   "parse [reference...|-]",
		Short: "Split references into scheme, authority, path, query and fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := uri.ParseStartRule(rule)
			if err != nil {
				return errtrace.Wrap(err)
			}
			ins, err := inputs(cmd, args)
			if err != nil {
				return errtrace.Wrap(err)
			}

			var (
				res  = make([]parseResult, 0, len(ins))
				errs []error
			)
			for _, in := range ins {
				pr := parseResult{Input: in, Rule: r.String()}
				c, err := uri.Extract(in, r)
				if err != nil {
					pr.Error = err.Error()
					errs = append(errs, fmt.Errorf("%q: %w", in, err))
					a.log.DebugContext(cmd.Context(), "parse failed", slog.String("input", in), slog.Any("error", err))
				} else {
					pr.Components = &c
				}
				res = append(res, pr)
			}

			if err := a.write(cmd.OutOrStdout(), res, func(w io.Writer) error {
				for _, pr := range res {
					fmt.Fprintln(w, pr.Input)
					if pr.Error != "" {
						fmt.Fprintf(w, "  error:     %s\n", pr.Error)
						continue
					}
					for _, f := range []struct{ k, v string }{
						{"scheme", pr.Components.Scheme},
						{"authority", pr.Components.Authority},
						{"path", pr.Components.Path},
						{"query", pr.Components.Query},
						{"fragment", pr.Components.Fragment},
					} {
						if f.v != "" {
							fmt.Fprintf(w, "  %-10s %s\n", f.k+":", f.v)
						}
					}
				}
				return nil
			}); err != nil {
				return errtrace.Wrap(err)
			}
			return errtrace.Wrap(errorutil.JoinPrefix("parse failed", errs...))
		},
	}
	cmd.Flags().StringVarP(&rule, "rule", "r", "ref", "start rule: uri, ref or absolute")
	return cmd
}

type resolveResult struct {
	Base   string `json:"base" yaml:"base"`
	Ref    string `json:"ref" yaml:"ref"`
	Result string `json:"result" yaml:"result"`
}

func (a *app) resolveCommand() *cobra.Command {
	var baseStr string
	cmd := &cobra.Command{
		Use:   "resolve [reference...|-]",
		Short: "Resolve references against a base URI",
		Long: `Resolve references against a base URI (RFC 3986, Section 5.2).
The base is taken from the --base flag or the "base" config setting.
Malformed references are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.base(baseStr)
			if err != nil {
				return errtrace.Wrap(err)
			}
			ins, err := inputs(cmd, args)
			if err != nil {
				return errtrace.Wrap(err)
			}

			var (
				res  = make([]resolveResult, 0, len(ins))
				errs []error
			)
			for _, in := range ins {
				ref, err := uri.ParseReference(in)
				if err != nil {
					errs = append(errs, fmt.Errorf("%q: %w", in, err))
					continue
				}
				res = append(res, resolveResult{
					Base:   base.String(),
					Ref:    in,
					Result: uri.Recompose(uri.ResolveComponents(base.Components(), ref)),
				})
			}

			if err := a.write(cmd.OutOrStdout(), res, func(w io.Writer) error {
				for _, rr := range res {
					fmt.Fprintln(w, rr.Result)
				}
				return nil
			}); err != nil {
				return errtrace.Wrap(err)
			}
			return errtrace.Wrap(errorutil.JoinPrefix("resolve failed", errs...))
		},
	}
	cmd.Flags().StringVarP(&baseStr, "base", "b", "", "base URI")
	return cmd
}

func (a *app) base(s string) (uri.URI, error) {
	if s = strings.TrimSpace(s); s != "" {
		u, err := uri.Parse(s)
		if err != nil {
			return uri.URI{}, errtrace.Wrap(fmt.Errorf("base %q: %w", s, errorutil.NewInvalidArgumentError(err)))
		}
		return u, nil
	}
	if a.cfg.Base.IsZero() {
		return uri.URI{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("base URI is required, use --base or the base setting"))
	}
	return a.cfg.Base, nil
}

type decodeResult struct {
	Input   string `json:"input" yaml:"input"`
	Decoded string `json:"decoded" yaml:"decoded"`
}

func (a *app) decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [string...|-]",
		Short: "Decode percent-encoded octets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := inputs(cmd, args)
			if err != nil {
				return errtrace.Wrap(err)
			}
			res := make([]decodeResult, len(ins))
			for i, in := range ins {
				res[i] = decodeResult{Input: in, Decoded: uri.DecodePercent(in)}
			}
			return errtrace.Wrap(a.write(cmd.OutOrStdout(), res, func(w io.Writer) error {
				for _, dr := range res {
					fmt.Fprintln(w, dr.Decoded)
				}
				return nil
			}))
		},
	}
}

func (a *app) linksCommand() *cobra.Command {
	var (
		baseStr     string
		attrs       []string
		skipSchemes []string
		keepDups    bool
	)
	cmd := &cobra.Command{
		Use:   "links [file|-]",
		Short: "Extract and resolve links from an HTML document",
		Long: `Extract links from an HTML document read from the file or stdin and
resolve them against the page URI given with --base or the "base" setting.
Without a base URI relative links are printed as found, with dot-segments removed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var page uri.URI
			if baseStr != "" || !a.cfg.Base.IsZero() {
				var err error
				if page, err = a.base(baseStr); err != nil {
					return errtrace.Wrap(err)
				}
			}

			for _, sch := range skipSchemes {
				if !uri.IsScheme(sch) {
					return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid scheme %q", sch))
				}
			}
			opts := &links.ExtractorOptions{Logger: a.log, KeepDuplicates: keepDups, SkipSchemes: skipSchemes}
			for _, s := range attrs {
				at, err := links.ParseAttr(s)
				if err != nil {
					return errtrace.Wrap(err)
				}
				opts.Attrs = append(opts.Attrs, at)
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errtrace.Wrap(err)
				}
				defer f.Close()
				r = f
			}

			ls, err := links.NewExtractor(opts).Extract(cmd.Context(), r, page)
			if err != nil {
				return errtrace.Wrap(err)
			}
			if ls == nil {
				ls = []links.Link{}
			}
			return errtrace.Wrap(a.write(cmd.OutOrStdout(), ls, func(w io.Writer) error {
				for _, l := range ls {
					fmt.Fprintln(w, l.URI)
				}
				return nil
			}))
		},
	}
	cmd.Flags().StringVarP(&baseStr, "base", "b", "", "page URI")
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, `element attribute to inspect in the tag[attr] form, e.g. "img[src]"; can be repeated`)
	cmd.Flags().StringSliceVar(&skipSchemes, "skip-scheme", nil, "skip links with these schemes, e.g. mailto,javascript")
	cmd.Flags().BoolVar(&keepDups, "keep-duplicates", false, "report every occurrence of the same URI")
	return cmd
}

type checkResult struct {
	Input string `json:"input" yaml:"input"`
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) checkCommand() *cobra.Command {
	var rule string
	cmd := &cobra.Command{
		Use:   "check [reference...|-]",
		Short: "Validate references, exits with non-zero status if any is invalid",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := uri.ParseStartRule(rule)
			if err != nil {
				return errtrace.Wrap(err)
			}
			ins, err := inputs(cmd, args)
			if err != nil {
				return errtrace.Wrap(err)
			}

			var (
				res  = make([]checkResult, len(ins))
				errs []error
			)
			for i, in := range ins {
				res[i] = checkResult{Input: in, Valid: uri.Match(in, r)}
				if res[i].Valid {
					continue
				}
				if _, err := uri.Extract(in, r); err != nil {
					res[i].Error = err.Error()
					errs = append(errs, fmt.Errorf("%q: %w", in, err))
				}
			}

			if err := a.write(cmd.OutOrStdout(), res, func(w io.Writer) error {
				for _, cr := range res {
					if cr.Valid {
						fmt.Fprintf(w, "ok\t%s\n", cr.Input)
					} else {
						fmt.Fprintf(w, "invalid\t%s\t%s\n", cr.Input, cr.Error)
					}
				}
				return nil
			}); err != nil {
				return errtrace.Wrap(err)
			}
			return errtrace.Wrap(errorutil.JoinPrefix(fmt.Sprintf("%d of %d invalid", len(errs), len(ins)), errs...))
		},
	}
	cmd.Flags().StringVarP(&rule, "rule", "r", "uri", "start rule: uri, ref or absolute")
	return cmd
}

package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/ioutil"
	"github.com/ghettovoice/gouri/internal/types"
	"github.com/ghettovoice/gouri/internal/util"
)

// RenderOptions contains options for rendering URIs and components.
type RenderOptions = types.RenderOptions

// Components holds the five syntactic parts of a URI or a relative reference (RFC 3986, Section 3).
//
// Each field keeps the exact input substring matched by the corresponding grammar rule,
// without delimiters: Scheme has no trailing ":", Authority no leading "//",
// Query no leading "?" and Fragment no leading "#".
// An empty field means the part is absent.
type Components struct {
	Scheme    string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Authority string `json:"authority,omitempty" yaml:"authority,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Query     string `json:"query,omitempty" yaml:"query,omitempty"`
	Fragment  string `json:"fragment,omitempty" yaml:"fragment,omitempty"`
}

// Recompose joins components back into a string (RFC 3986, Section 5.3).
//
// Empty parts are omitted together with their delimiters, so a present but empty
// query or fragment ("http://a/?", "http://a/#") does not survive the round trip.
func Recompose(c Components) string { return c.Render(nil) }

// IsZero reports whether all components are empty.
func (c Components) IsZero() bool { return c == Components{} }

// RenderTo writes the recomposed reference to w.
// With [RenderOptions.Decoded] set, percent-encoded octets are written decoded.
func (c Components) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if opts != nil && opts.Decoded {
		return errtrace.Wrap2(io.WriteString(w, DecodePercent(c.Render(nil))))
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if c.Scheme != "" {
		cw.Fprint(c.Scheme, ":")
	}
	if c.Authority != "" {
		cw.Fprint("//", c.Authority)
	}
	cw.WriteString(c.Path)
	if c.Query != "" {
		cw.Fprint("?", c.Query)
	}
	if c.Fragment != "" {
		cw.Fprint("#", c.Fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the recomposed reference.
func (c Components) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	c.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (c Components) String() string { return c.Render(nil) }

// Format implements [fmt.Formatter].
//
//	%s  recomposed reference
//	%+s recomposed reference with decoded octets
//	%q  quoted recomposed reference
//	%v  struct fields
func (c Components) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			c.RenderTo(f, &RenderOptions{Decoded: true}) //nolint:errcheck
			return
		}
		c.RenderTo(f, nil) //nolint:errcheck
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(c.String()))
		return
	default:
		type hideMethods Components
		type Components hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Components(c))
		return
	}
}

// LogValue implements [slog.LogValuer].
// Only present components are logged.
func (c Components) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 5)
	for _, a := range []struct{ k, v string }{
		{"scheme", c.Scheme},
		{"authority", c.Authority},
		{"path", c.Path},
		{"query", c.Query},
		{"fragment", c.Fragment},
	} {
		if a.v != "" {
			attrs = append(attrs, slog.String(a.k, a.v))
		}
	}
	return slog.GroupValue(attrs...)
}

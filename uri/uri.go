package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/types"
)

// URI is an immutable-by-convention URI value built on top of [Components].
//
// The zero value is the "null" URI: it renders as an empty string.
// URI values are comparable with ==, which is the same as [URI.Equal].
type URI struct {
	comps Components
}

var (
	_ types.Renderer       = URI{}
	_ types.ValidFlag      = URI{}
	_ types.Equalable      = URI{}
	_ types.Cloneable[URI] = URI{}
	_ fmt.Formatter        = URI{}
	_ slog.LogValuer       = URI{}
)

// New parses s with the "URI" rule and never fails: a malformed input yields the zero URI.
// Use [Parse] to get the reason of the failure.
func New[T ~string | ~[]byte](s T) URI {
	c, _ := ParseURI(s)
	return URI{c}
}

// Parse parses s with the "URI" rule.
func Parse[T ~string | ~[]byte](s T) (URI, error) {
	c, err := ParseURI(s)
	if err != nil {
		return URI{}, errtrace.Wrap(err)
	}
	return URI{c}, nil
}

// FromComponents wraps already extracted components without any validation.
func FromComponents(c Components) URI { return URI{c} }

// Components returns a copy of the URI components.
func (u URI) Components() Components { return u.comps }

func (u URI) Scheme() string { return u.comps.Scheme }

func (u URI) Authority() string { return u.comps.Authority }

func (u URI) Path() string { return u.comps.Path }

func (u URI) Query() string { return u.comps.Query }

func (u URI) Fragment() string { return u.comps.Fragment }

// IsZero reports whether u is the null URI.
func (u URI) IsZero() bool { return u.comps.IsZero() }

// IsValid reports whether the recomposed URI matches the "URI" rule.
func (u URI) IsValid() bool {
	return u.comps.Scheme != "" && grammar.IsURI(u.comps.String())
}

// Clone returns a copy of the URI.
func (u URI) Clone() URI { return u }

// Resolve resolves the reference ref against u (RFC 3986, Section 5.2).
// A malformed reference is treated as the empty one.
func (u URI) Resolve(ref string) URI { return URI{Resolve(u.comps, ref)} }

// ResolveURI resolves the reference ref against u (RFC 3986, Section 5.2).
func (u URI) ResolveURI(ref URI) URI { return URI{ResolveComponents(u.comps, ref.comps)} }

// DecodePercent returns the recomposed URI with all percent-encoded octets decoded.
func (u URI) DecodePercent() string { return u.Render(&RenderOptions{Decoded: true}) }

// ClearFragment removes the fragment from u.
func (u *URI) ClearFragment() { u.comps.Fragment = "" }

// Absolute returns a copy of u without the fragment (RFC 3986, Section 4.3).
func (u URI) Absolute() URI {
	u.ClearFragment()
	return u
}

// Set replaces u with the URI parsed from s.
// On failure u becomes the zero URI and the parse error is returned.
// Together with [URI.String] it implements [flag.Value].
func (u *URI) Set(s string) error {
	c, err := ParseURI(s)
	u.comps = c
	return errtrace.Wrap(err)
}

// RenderTo writes the recomposed URI to w.
func (u URI) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(u.comps.RenderTo(w, opts))
}

// Render returns the recomposed URI.
func (u URI) Render(opts *RenderOptions) string { return u.comps.Render(opts) }

func (u URI) String() string { return u.comps.String() }

// Format implements [fmt.Formatter].
//
//	%s, %v  recomposed reference
//	%+s     recomposed reference with decoded octets
//	%q      quoted recomposed reference
//	%#v     components struct fields
func (u URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		if f.Flag('#') {
			break
		}
		u.comps.Format(f, 's')
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	}
	u.comps.Format(f, verb)
}

// LogValue implements [slog.LogValuer].
func (u URI) LogValue() slog.Value { return slog.StringValue(u.String()) }

// Equal compares the URI with another URI or *URI component-wise.
// Components are compared as plain strings, no normalization is applied.
func (u URI) Equal(val any) bool {
	switch v := val.(type) {
	case URI:
		return u.comps == v.comps
	case *URI:
		return v != nil && u.comps == v.comps
	default:
		return false
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (u URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Empty text results in the zero URI without error.
func (u *URI) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = URI{}
		return nil
	}
	return errtrace.Wrap(u.Set(string(text)))
}

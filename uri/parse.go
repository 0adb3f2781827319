package uri

//go:generate go tool errtrace -w .

import (
	"strconv"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
)

const (
	// ErrEmptyInput is returned when a rule that requires input is applied to an empty string.
	ErrEmptyInput = grammar.ErrEmptyInput
	// ErrMalformedInput is returned when the input does not match the requested rule in full.
	ErrMalformedInput = grammar.ErrMalformedInput
)

// IsGrammarErr reports whether err was caused by input that does not match the grammar.
func IsGrammarErr(err error) bool { return errorutil.IsGrammarErr(err) }

// StartRule selects the grammar rule the whole input must match.
type StartRule uint8

const (
	// RuleURI is the "URI" rule: scheme ":" hier-part [ "?" query ] [ "#" fragment ].
	RuleURI StartRule = iota
	// RuleURIReference is the "URI-reference" rule: URI / relative-ref.
	RuleURIReference
	// RuleAbsoluteURI is the "absolute-URI" rule: scheme ":" hier-part [ "?" query ].
	RuleAbsoluteURI
)

func (r StartRule) String() string {
	switch r {
	case RuleURI:
		return "URI"
	case RuleURIReference:
		return "URI-reference"
	case RuleAbsoluteURI:
		return "absolute-URI"
	default:
		return "StartRule(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseStartRule returns the rule by its RFC name ("URI", "URI-reference", "absolute-URI")
// or by a short alias ("uri", "ref", "absolute").
func ParseStartRule(s string) (StartRule, error) {
	switch s {
	case "URI", "uri":
		return RuleURI, nil
	case "URI-reference", "ref", "reference":
		return RuleURIReference, nil
	case "absolute-URI", "absolute":
		return RuleAbsoluteURI, nil
	default:
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown start rule %q", s))
	}
}

// Extract parses s with the given start rule and returns its components.
// On any failure the zero [Components] is returned together with the error.
func Extract[T ~string | ~[]byte](s T, rule StartRule) (Components, error) {
	var (
		node *abnf.Node
		err  error
	)
	switch rule {
	case RuleURI:
		node, err = grammar.ParseURI(s)
	case RuleURIReference:
		if len(s) == 0 {
			return Components{}, nil
		}
		node, err = grammar.ParseURIReference(s)
	case RuleAbsoluteURI:
		node, err = grammar.ParseAbsoluteURI(s)
	default:
		return Components{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown start rule %s", rule))
	}
	if err != nil {
		return Components{}, errtrace.Wrap(err)
	}
	return buildFromNode(node), nil
}

// ParseURI parses a URI with a mandatory scheme from the given input s (string or []byte).
func ParseURI[T ~string | ~[]byte](s T) (Components, error) {
	return errtrace.Wrap2(Extract(s, RuleURI))
}

// ParseReference parses a URI or a relative reference from the given input s (string or []byte).
// The empty input is a valid same-document reference and results in the zero [Components].
func ParseReference[T ~string | ~[]byte](s T) (Components, error) {
	return errtrace.Wrap2(Extract(s, RuleURIReference))
}

// ParseAbsoluteURI parses a URI without a fragment from the given input s (string or []byte).
func ParseAbsoluteURI[T ~string | ~[]byte](s T) (Components, error) {
	return errtrace.Wrap2(Extract(s, RuleAbsoluteURI))
}

// Match reports whether the whole s matches the given start rule.
// It is cheaper than [Extract] when the components are not needed.
func Match[T ~string | ~[]byte](s T, rule StartRule) bool {
	switch rule {
	case RuleURI:
		return grammar.IsURI(s)
	case RuleURIReference:
		return grammar.IsURIReference(s)
	case RuleAbsoluteURI:
		return grammar.IsAbsoluteURI(s)
	default:
		return false
	}
}

// IsScheme reports whether s is a valid scheme name.
func IsScheme[T ~string | ~[]byte](s T) bool { return grammar.IsScheme(s) }

func buildFromNode(node *abnf.Node) Components {
	var c Components
	grammar.Walk(node, func(n *abnf.Node) bool {
		switch n.Key {
		case "scheme":
			c.Scheme = n.String()
		case "authority":
			c.Authority = n.String()
		case "path-abempty", "path-absolute", "path-rootless", "path-noscheme":
			c.Path = n.String()
		case "query":
			c.Query = n.String()
		case "fragment":
			c.Fragment = n.String()
		default:
			return true
		}
		return false
	})
	return c
}

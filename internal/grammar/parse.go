package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar/rfc3986"
)

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// ParseURI parses s with the "URI" rule (RFC 3986, Section 3).
func ParseURI[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(rfc3986.Operators().URI, s))
}

// ParseAbsoluteURI parses s with the "absolute-URI" rule (RFC 3986, Section 4.3).
func ParseAbsoluteURI[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(rfc3986.Operators().AbsoluteURI, s))
}

// ParseRelativeRef parses s with the "relative-ref" rule (RFC 3986, Section 4.2).
func ParseRelativeRef[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(rfc3986.Operators().RelativeRef, s))
}

// ParseURIReference parses s with the "URI-reference" rule (RFC 3986, Section 4.1).
//
// The input is tried as "URI" first and as "relative-ref" only if the first attempt fails.
// Each attempt runs over its own node set, so nothing matched by the failed "URI" attempt
// appears in the returned node.
func ParseURIReference[T constraints.Byteseq](s T) (*abnf.Node, error) {
	if n, err := ParseURI(s); err == nil {
		return n, nil
	}
	return errtrace.Wrap2(ParseRelativeRef(s))
}

func parse[T constraints.Byteseq](op abnf.Operator, s T) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

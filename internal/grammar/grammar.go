// Package grammar drives the RFC 3986 ABNF rules over raw input.
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/grammar/rfc3986"
)

func init() {
	abnf.EnableNodeCache(10 * 1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

// Walk traverses the node tree in depth-first order.
// Children of a node are skipped if fn returns false for it.
func Walk(n *abnf.Node, fn func(n *abnf.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, cn := range n.Children {
		Walk(cn, fn)
	}
}

func IsScheme[T constraints.Byteseq](s T) bool {
	return matches(rfc3986.Operators().Scheme, s)
}

func IsURI[T constraints.Byteseq](s T) bool {
	return matches(rfc3986.Operators().URI, s)
}

func IsAbsoluteURI[T constraints.Byteseq](s T) bool {
	return matches(rfc3986.Operators().AbsoluteURI, s)
}

// IsURIReference reports whether s is a URI or a relative reference.
// Empty input is a valid (same-document) reference.
func IsURIReference[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return matches(rfc3986.Operators().URIReference, s)
}

func matches[T constraints.Byteseq](op abnf.Operator, s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

package rfc3986

import "github.com/ghettovoice/abnf"

const (
	alphaChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	digitChars      = "0123456789"
	hexChars        = digitChars + "ABCDEFabcdef"
	unreservedChars = alphaChars + digitChars + "-._~"
	subDelimsChars  = "!$&'()*+,;="
)

// class is a set of single-byte characters of a rule.
// With pct set, pct-encoded triplets count as one character of the class.
type class struct {
	set [256]bool
	pct bool
}

func newClass(pct bool, chars ...string) *class {
	c := &class{pct: pct}
	for _, s := range chars {
		for i := range len(s) {
			c.set[s[i]] = true
		}
	}
	return c
}

var (
	alphaClass      = newClass(false, alphaChars)
	hexClass        = newClass(false, hexChars)
	digitClass      = newClass(false, digitChars)
	schemeTailClass = newClass(false, alphaChars, digitChars, "+-.")
	pcharClass      = newClass(true, unreservedChars, subDelimsChars, ":@")
	pcharNcClass    = newClass(true, unreservedChars, subDelimsChars, "@")
	pathClass       = newClass(true, unreservedChars, subDelimsChars, ":@/")
	queryClass      = newClass(true, unreservedChars, subDelimsChars, ":@/?")
	userinfoClass   = newClass(true, unreservedChars, subDelimsChars, ":")
	regNameClass    = newClass(true, unreservedChars, subDelimsChars)
	ipvFutureClass  = newClass(false, unreservedChars, subDelimsChars, ":")
)

// next returns the end of the character of c at i, or i if there is none.
func (c *class) next(in []byte, i int) int {
	if i >= len(in) {
		return i
	}
	if c.set[in[i]] {
		return i + 1
	}
	if c.pct && in[i] == '%' && i+2 < len(in) && hexClass.set[in[i+1]] && hexClass.set[in[i+2]] {
		return i + 3
	}
	return i
}

// scan returns the end of the longest run of c starting at i and the number of characters in it.
func (c *class) scan(in []byte, i int) (end, n int) {
	for {
		j := c.next(in, i)
		if j == i {
			return i, n
		}
		i, n = j, n+1
	}
}

func newNode(key string, in []byte, pos uint, end int) *abnf.Node {
	return &abnf.Node{Key: key, Pos: pos, Value: in[pos:end]}
}

// run matches the longest sequence of at least minLen characters of c as a single node.
// It is used instead of abnf.Repeat for rules that are never followed by a character
// of their own class, where the longest run is the only one that can lead to a match.
func run(key string, c *class, minLen int) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		end, n := c.scan(in, int(pos))
		if n < minLen {
			return abnf.ErrNotMatched
		}
		ns.Append(newNode(key, in, pos, end))
		return nil
	}
}

// lead matches one character of first followed by the longest run of rest.
func lead(key string, first, rest *class) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		i := first.next(in, int(pos))
		if i == int(pos) {
			return abnf.ErrNotMatched
		}
		end, _ := rest.scan(in, i)
		ns.Append(newNode(key, in, pos, end))
		return nil
	}
}

// pathAbempty matches *( "/" segment ).
func pathAbempty(key string) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		end := int(pos)
		if end < len(in) && in[end] == '/' {
			end, _ = pathClass.scan(in, end)
		}
		ns.Append(newNode(key, in, pos, end))
		return nil
	}
}

// pathAbsolute matches "/" [ segment-nz *( "/" segment ) ].
func pathAbsolute(key string) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		i := int(pos)
		if i >= len(in) || in[i] != '/' {
			return abnf.ErrNotMatched
		}
		end := i + 1
		if pcharClass.next(in, end) > end {
			end, _ = pathClass.scan(in, end)
		}
		ns.Append(newNode(key, in, pos, end))
		return nil
	}
}

// pathNoscheme matches segment-nz-nc *( "/" segment ).
func pathNoscheme(key string) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		end, n := pcharNcClass.scan(in, int(pos))
		if n == 0 {
			return abnf.ErrNotMatched
		}
		if end < len(in) && in[end] == '/' {
			end, _ = pathClass.scan(in, end)
		}
		ns.Append(newNode(key, in, pos, end))
		return nil
	}
}

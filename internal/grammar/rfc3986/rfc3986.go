// Package rfc3986 provides ABNF operators for the generic URI syntax (RFC 3986, Appendix A).
//
// Every named rule produces nodes keyed with the rule name as it is written in the RFC,
// e.g. "URI-reference", "path-abempty", "query".
//
// Rules made of a run of characters (paths, query, fragment, userinfo, reg-name, port, scheme)
// match the longest run only and produce a single node without per-character children,
// so matching is linear in the input length.
package rfc3986

import (
	"sync"

	"github.com/ghettovoice/abnf"
)

// OperatorsContainer holds RFC 3986 rules.
type OperatorsContainer struct {
	URI          abnf.Operator
	URIReference abnf.Operator
	AbsoluteURI  abnf.Operator
	RelativeRef  abnf.Operator
	HierPart     abnf.Operator
	RelativePart abnf.Operator

	Scheme      abnf.Operator
	Authority   abnf.Operator
	Userinfo    abnf.Operator
	Host        abnf.Operator
	Port        abnf.Operator
	IPLiteral   abnf.Operator
	IPvFuture   abnf.Operator
	IPv6address abnf.Operator
	H16         abnf.Operator
	Ls32        abnf.Operator
	IPv4address abnf.Operator
	DecOctet    abnf.Operator
	RegName     abnf.Operator

	PathAbempty  abnf.Operator
	PathAbsolute abnf.Operator
	PathNoscheme abnf.Operator
	PathRootless abnf.Operator
	Segment      abnf.Operator
	SegmentNz    abnf.Operator
	SegmentNzNc  abnf.Operator
	Pchar        abnf.Operator

	Query    abnf.Operator
	Fragment abnf.Operator

	PctEncoded abnf.Operator
	Unreserved abnf.Operator
	Reserved   abnf.Operator
	GenDelims  abnf.Operator
	SubDelims  abnf.Operator

	ALPHA  abnf.Operator
	DIGIT  abnf.Operator
	HEXDIG abnf.Operator
}

var (
	oprts     *OperatorsContainer
	oprtsOnce sync.Once
)

// Operators returns the RFC 3986 operators container.
// Operators are built once on the first call.
func Operators() *OperatorsContainer {
	oprtsOnce.Do(func() { oprts = newOperators() })
	return oprts
}

func lit(s string) abnf.Operator { return abnf.Literal(`"`+s+`"`, []byte(s)) }

func rng(key string, lo, hi byte) abnf.Operator { return abnf.Range(key, []byte{lo}, []byte{hi}) }

//nolint:funlen
func newOperators() *OperatorsContainer {
	o := &OperatorsContainer{}

	// RFC 5234, Appendix B.1
	o.ALPHA = abnf.Alt("ALPHA", rng("%x41-5A", 'A', 'Z'), rng("%x61-7A", 'a', 'z'))
	o.DIGIT = rng("DIGIT", '0', '9')
	o.HEXDIG = abnf.Alt("HEXDIG", o.DIGIT, rng("%x41-46", 'A', 'F'), rng("%x61-66", 'a', 'f'))

	o.GenDelims = abnf.Alt("gen-delims",
		lit(":"), lit("/"), lit("?"), lit("#"), lit("["), lit("]"), lit("@"),
	)
	o.SubDelims = abnf.Alt("sub-delims",
		lit("!"), lit("$"), lit("&"), lit("'"), lit("("), lit(")"),
		lit("*"), lit("+"), lit(","), lit(";"), lit("="),
	)
	o.Reserved = abnf.Alt("reserved", o.GenDelims, o.SubDelims)
	o.Unreserved = abnf.Alt("unreserved", o.ALPHA, o.DIGIT, lit("-"), lit("."), lit("_"), lit("~"))
	o.PctEncoded = abnf.Concat("pct-encoded", lit("%"), o.HEXDIG, o.HEXDIG)

	o.Pchar = abnf.Alt("pchar", o.Unreserved, o.PctEncoded, o.SubDelims, lit(":"), lit("@"))
	o.Segment = run("segment", pcharClass, 0)
	o.SegmentNz = run("segment-nz", pcharClass, 1)
	o.SegmentNzNc = run("segment-nz-nc", pcharNcClass, 1)

	o.PathAbempty = pathAbempty("path-abempty")
	o.PathAbsolute = pathAbsolute("path-absolute")
	o.PathNoscheme = pathNoscheme("path-noscheme")
	o.PathRootless = lead("path-rootless", pcharClass, pathClass)

	o.Query = run("query", queryClass, 0)
	o.Fragment = run("fragment", queryClass, 0)

	o.Scheme = lead("scheme", alphaClass, schemeTailClass)

	o.Userinfo = run("userinfo", userinfoClass, 0)
	o.Port = run("port", digitClass, 0)

	o.DecOctet = abnf.Alt("dec-octet",
		abnf.Concat("", lit("25"), rng("%x30-35", '0', '5')),
		abnf.Concat("", lit("2"), rng("%x30-34", '0', '4'), o.DIGIT),
		abnf.Concat("", lit("1"), o.DIGIT, o.DIGIT),
		abnf.Concat("", rng("%x31-39", '1', '9'), o.DIGIT),
		o.DIGIT,
	)
	o.IPv4address = abnf.Concat("IPv4address",
		o.DecOctet, lit("."), o.DecOctet, lit("."), o.DecOctet, lit("."), o.DecOctet,
	)

	o.H16 = abnf.Repeat("h16", 1, 4, o.HEXDIG)
	o.Ls32 = abnf.Alt("ls32", abnf.Concat("", o.H16, lit(":"), o.H16), o.IPv4address)
	h16c := abnf.Concat("", o.H16, lit(":"))
	// [ *n( h16 ":" ) h16 ]
	h16pre := func(n uint) abnf.Operator {
		return abnf.Optional("", abnf.Concat("", abnf.Repeat("", 0, n, h16c), o.H16))
	}
	o.IPv6address = abnf.Alt("IPv6address",
		abnf.Concat("", abnf.Repeat("", 6, 6, h16c), o.Ls32),
		abnf.Concat("", lit("::"), abnf.Repeat("", 5, 5, h16c), o.Ls32),
		abnf.Concat("", abnf.Optional("", o.H16), lit("::"), abnf.Repeat("", 4, 4, h16c), o.Ls32),
		abnf.Concat("", h16pre(1), lit("::"), abnf.Repeat("", 3, 3, h16c), o.Ls32),
		abnf.Concat("", h16pre(2), lit("::"), abnf.Repeat("", 2, 2, h16c), o.Ls32),
		abnf.Concat("", h16pre(3), lit("::"), h16c, o.Ls32),
		abnf.Concat("", h16pre(4), lit("::"), o.Ls32),
		abnf.Concat("", h16pre(5), lit("::"), o.H16),
		abnf.Concat("", h16pre(6), lit("::")),
	)
	o.IPvFuture = abnf.Concat("IPvFuture",
		lit("v"),
		run("", hexClass, 1),
		lit("."),
		run("", ipvFutureClass, 1),
	)
	o.IPLiteral = abnf.Concat("IP-literal", lit("["), abnf.Alt("", o.IPv6address, o.IPvFuture), lit("]"))
	o.RegName = run("reg-name", regNameClass, 0)
	o.Host = abnf.Alt("host", o.IPLiteral, o.IPv4address, o.RegName)

	o.Authority = abnf.Concat("authority",
		abnf.Optional("", abnf.Concat("", o.Userinfo, lit("@"))),
		o.Host,
		abnf.Optional("", abnf.Concat("", lit(":"), o.Port)),
	)

	// path-empty is the zero repetition of the optional part.
	o.HierPart = abnf.Optional("hier-part", abnf.Alt("",
		abnf.Concat("", lit("//"), o.Authority, o.PathAbempty),
		o.PathAbsolute,
		o.PathRootless,
	))
	o.RelativePart = abnf.Optional("relative-part", abnf.Alt("",
		abnf.Concat("", lit("//"), o.Authority, o.PathAbempty),
		o.PathAbsolute,
		o.PathNoscheme,
	))

	optQuery := abnf.Optional("", abnf.Concat("", lit("?"), o.Query))
	optFragment := abnf.Optional("", abnf.Concat("", lit("#"), o.Fragment))

	o.URI = abnf.Concat("URI", o.Scheme, lit(":"), o.HierPart, optQuery, optFragment)
	o.AbsoluteURI = abnf.Concat("absolute-URI", o.Scheme, lit(":"), o.HierPart, optQuery)
	o.RelativeRef = abnf.Concat("relative-ref", o.RelativePart, optQuery, optFragment)
	o.URIReference = abnf.Alt("URI-reference", o.URI, o.RelativeRef)

	return o
}

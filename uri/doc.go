// Package uri parses, resolves and recomposes Uniform Resource Identifiers according to RFC 3986.
//
// # Components
//
// A URI or a relative reference is decomposed into five [Components]:
//
//	  foo://example.com:8042/over/there?name=ferret#nose
//	  \_/   \______________/\_________/ \_________/ \__/
//	   |           |            |            |        |
//	scheme     authority       path        query   fragment
//
// Components hold the matched text verbatim: nothing is decoded or case-folded.
// The zero value means "nothing was parsed".
//
// # Parsing
//
// Three entry points select the start rule of the RFC 3986 grammar:
//
//	c, err := uri.ParseURI("http://a/b/c/d;p?q")       // URI, scheme required
//	c, err := uri.ParseReference("../g?y#s")           // URI-reference
//	c, err := uri.ParseAbsoluteURI("http://a/b?q")     // absolute-URI, no fragment
//
// On failure the returned components are always the zero value, so callers that do not care
// about the reason can ignore the error. An empty string is a valid URI-reference
// (a same-document reference) and parses without error.
//
// # Resolution
//
// [Resolve] implements RFC 3986, Section 5.2: the reference is parsed, merged with the base path
// if needed and cleaned from dot-segments:
//
//	base, _ := uri.ParseURI("http://a/b/c/d;p?q")
//	uri.Resolve(base, "../g").String()  // "http://a/b/g"
//
// [Merge] and [RemoveDotSegments] are exported for callers that build paths by hand.
//
// # URI value
//
// [URI] wraps [Components] into a comparable value. [New] never fails, a malformed input
// yields the zero URI, while [Parse] reports the error:
//
//	page := uri.New("http://example.com/docs/intro.html#setup")
//	next := page.Resolve("../api/index.html")  // http://example.com/api/index.html
//	page.Absolute().String()                    // http://example.com/docs/intro.html
//
// Equality is field-wise string equality of the components ("HTTP://A" != "http://a"),
// no syntax-based normalization from RFC 3986, Section 6 is applied.
//
// # Percent-decoding
//
// [DecodePercent] converts "%XX" escapes into raw bytes. Malformed escapes are kept as is.
// Percent-encoding is not provided.
//
// # Thread Safety
//
// All functions are pure. URI values are safe for concurrent reads, mutation through
// [URI.ClearFragment] or [URI.Set] requires external synchronization.
package uri

package uri

import "github.com/ghettovoice/gouri/internal/grammar"

// DecodePercent replaces every "%" HEXDIG HEXDIG triplet in s with the octet it encodes
// (RFC 3986, Section 2.1). Hex digits of both cases are accepted.
//
// A "%" that does not start a valid triplet, including one at the very end of the input,
// is kept as is. Decoded octets are not validated as UTF-8.
func DecodePercent[T ~string | ~[]byte](s T) T {
	return grammar.Unescape(s)
}

package uri

import (
	"bytes"
	"strings"

	"github.com/ghettovoice/gouri/internal/util"
)

// Resolve resolves the reference ref against the base components (RFC 3986, Section 5.2.2).
//
// The reference is parsed with the "URI-reference" rule, a malformed reference
// is treated as the empty one. The base is expected to be an absolute URI,
// it is used as is without checks.
func Resolve[T ~string | ~[]byte](base Components, ref T) Components {
	rc, _ := ParseReference(ref)
	return ResolveComponents(base, rc)
}

// ResolveComponents resolves the already parsed reference ref against base (RFC 3986, Section 5.2.2).
func ResolveComponents(base, ref Components) Components {
	var t Components
	switch {
	case ref.Scheme != "":
		t.Scheme = ref.Scheme
		t.Authority = ref.Authority
		t.Path = RemoveDotSegments(ref.Path)
		t.Query = ref.Query
	case ref.Authority != "":
		t.Scheme = base.Scheme
		t.Authority = ref.Authority
		t.Path = RemoveDotSegments(ref.Path)
		t.Query = ref.Query
	default:
		t.Scheme = base.Scheme
		t.Authority = base.Authority
		switch {
		case ref.Path == "":
			t.Path = base.Path
			t.Query = ref.Query
			if t.Query == "" {
				t.Query = base.Query
			}
		case ref.Path[0] == '/':
			t.Path = RemoveDotSegments(ref.Path)
			t.Query = ref.Query
		default:
			t.Path = RemoveDotSegments(Merge(base, ref.Path))
			t.Query = ref.Query
		}
	}
	t.Fragment = ref.Fragment
	return t
}

// Merge merges the relative path with the base path (RFC 3986, Section 5.2.3).
//
// If the base has an authority and an empty path, the result is "/" + path.
// Otherwise the last segment of the base path is replaced with path;
// a base path without any "/" is dropped entirely.
func Merge(base Components, path string) string {
	if base.Authority != "" && base.Path == "" {
		return "/" + path
	}
	i := strings.LastIndexByte(base.Path, '/')
	if i < 0 {
		return path
	}
	return base.Path[:i+1] + path
}

// RemoveDotSegments removes "." and ".." segments from the path (RFC 3986, Section 5.2.4).
func RemoveDotSegments(path string) string {
	if !strings.Contains(path, ".") {
		return path
	}

	out := util.GetBytesBuffer()
	defer util.FreeBytesBuffer(out)

	in := path
	for len(in) > 0 {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			trimLastSegment(out)
		case in == "/..":
			in = "/"
			trimLastSegment(out)
		case in == "." || in == "..":
			in = ""
		default:
			i := strings.IndexByte(in[1:], '/') + 1
			if i == 0 {
				i = len(in)
			}
			out.WriteString(in[:i])
			in = in[i:]
		}
	}
	return out.String()
}

func trimLastSegment(b *bytes.Buffer) {
	if i := bytes.LastIndexByte(b.Bytes(), '/'); i >= 0 {
		b.Truncate(i)
	} else {
		b.Reset()
	}
}

package uri_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/gouri/uri"
)

func TestRecompose(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   uri.Components
		want string
	}{
		{"zero", uri.Components{}, ""},
		{"scheme", uri.Components{Scheme: "g"}, "g:"},
		{"path", uri.Components{Path: "qwe/abc.wav"}, "qwe/abc.wav"},
		{"authority", uri.Components{Scheme: "http", Authority: "example.com"}, "http://example.com"},
		{"network path", uri.Components{Authority: "g"}, "//g"},
		{"query", uri.Components{Query: "y"}, "?y"},
		{"fragment", uri.Components{Fragment: "s"}, "#s"},
		{
			"all",
			uri.Components{Scheme: "foo", Authority: "example.com:8042", Path: "/over/there", Query: "name=ferret", Fragment: "nose"},
			"foo://example.com:8042/over/there?name=ferret#nose",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := uri.Recompose(c.in); got != c.want {
				t.Errorf("uri.Recompose(%+v) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestRecompose_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"http://a/b/c/d;p?q",
		"foo://example.com:8042/over/there?name=ferret#nose",
		"mailto:John.Doe@example.com",
		"urn:oasis:names:specification:docbook:dtd:xml:4.1.2",
		"http://[2001:db8::7]/c=GB?objectClass?one",
		"ldap://[2001:db8::7]/c=GB?objectClass?one",
		"news:comp.infosystems.www.servers.unix",
		"tel:+1-816-555-1212",
		"telnet://192.0.2.16:80/",
		"../g;x?y#s",
		"//g",
		"?y",
		"#s",
		"",
	} {
		c, err := uri.ParseReference(s)
		if err != nil {
			t.Errorf("uri.ParseReference(%q) error = %v, want nil", s, err)
			continue
		}
		if got := uri.Recompose(c); got != s {
			t.Errorf("uri.Recompose(uri.ParseReference(%q)) = %q, want %q", s, got, s)
		}
	}
}

func TestRecompose_EmptyPartsDropped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"http://a/b?", "http://a/b"},
		{"http://a/b#", "http://a/b"},
		{"file:///etc/hosts", "file:/etc/hosts"},
	}
	for _, c := range cases {
		cs, err := uri.ParseURI(c.in)
		if err != nil {
			t.Fatalf("uri.ParseURI(%q) error = %v, want nil", c.in, err)
		}
		if got := uri.Recompose(cs); got != c.want {
			t.Errorf("uri.Recompose(uri.ParseURI(%q)) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestComponents_RenderTo(t *testing.T) {
	t.Parallel()

	c := uri.Components{Scheme: "http", Authority: "localhost", Path: "/a%20b", Query: "x=%7E"}

	var sb strings.Builder
	n, err := c.RenderTo(&sb, nil)
	if err != nil {
		t.Fatalf("c.RenderTo(sb, nil) error = %v, want nil", err)
	}
	if want := "http://localhost/a%20b?x=%7E"; sb.String() != want || n != len(want) {
		t.Errorf("c.RenderTo(sb, nil) = (%d, %q), want (%d, %q)", n, sb.String(), len(want), want)
	}

	sb.Reset()
	n, err = c.RenderTo(&sb, &uri.RenderOptions{Decoded: true})
	if err != nil {
		t.Fatalf("c.RenderTo(sb, decoded) error = %v, want nil", err)
	}
	if want := "http://localhost/a b?x=~"; sb.String() != want || n != len(want) {
		t.Errorf("c.RenderTo(sb, decoded) = (%d, %q), want (%d, %q)", n, sb.String(), len(want), want)
	}
}

func TestComponents_Format(t *testing.T) {
	t.Parallel()

	c := uri.Components{Scheme: "http", Authority: "a", Path: "/b%20c"}
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "http://a/b%20c"},
		{"%+s", "http://a/b c"},
		{"%q", `"http://a/b%20c"`},
		{"%v", "{http a /b%20c  }"},
	}

	for _, cc := range cases {
		if got := fmt.Sprintf(cc.format, c); got != cc.want {
			t.Errorf("fmt.Sprintf(%q, c) = %q, want %q", cc.format, got, cc.want)
		}
	}
}

func TestComponents_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	logger.Info("parsed", "uri", uri.Components{Scheme: "http", Authority: "a", Fragment: "s"})

	want := "level=INFO msg=parsed uri.scheme=http uri.authority=a uri.fragment=s\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("log output = %q, want %q\ndiff (-got +want):\n%v", buf.String(), want, diff)
	}
}

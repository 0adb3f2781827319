package uri_test

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/gouri/uri"
)

var _ flag.Value = (*uri.URI)(nil)

func TestNew(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want uri.Components
	}{
		{"empty", "", uri.Components{}},
		{"malformed", "http://a b", uri.Components{}},
		{"relative", "/g", uri.Components{}},
		{"ok", "http://a/b?q#s", uri.Components{Scheme: "http", Authority: "a", Path: "/b", Query: "q", Fragment: "s"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := uri.New(c.in)
			if diff := cmp.Diff(got.Components(), c.want); diff != "" {
				t.Errorf("uri.New(%q).Components() = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got.Components(), c.want, diff)
			}
			if got.IsZero() != c.want.IsZero() {
				t.Errorf("uri.New(%q).IsZero() = %v, want %v", c.in, got.IsZero(), c.want.IsZero())
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	if _, err := uri.Parse("not a uri"); !uri.IsGrammarErr(err) {
		t.Errorf("uri.Parse(\"not a uri\") error = %v, want grammar error", err)
	}
	if _, err := uri.Parse(""); !cmp.Equal(err, uri.ErrEmptyInput, cmpopts.EquateErrors()) {
		t.Errorf("uri.Parse(\"\") error = %v, want %v", err, uri.ErrEmptyInput)
	}

	u, err := uri.Parse([]byte("https://example.com/docs/"))
	if err != nil {
		t.Fatalf("uri.Parse(...) error = %v, want nil", err)
	}
	if got, want := u.Scheme(), "https"; got != want {
		t.Errorf("u.Scheme() = %q, want %q", got, want)
	}
	if got, want := u.Authority(), "example.com"; got != want {
		t.Errorf("u.Authority() = %q, want %q", got, want)
	}
	if got, want := u.Path(), "/docs/"; got != want {
		t.Errorf("u.Path() = %q, want %q", got, want)
	}
	if u.Query() != "" || u.Fragment() != "" {
		t.Errorf("u.Query(), u.Fragment() = %q, %q, want empty", u.Query(), u.Fragment())
	}
}

func TestURI_Equal(t *testing.T) {
	t.Parallel()

	u := uri.New("http://a/b")
	cases := []struct {
		name string
		val  any
		want bool
	}{
		{"same value", uri.New("http://a/b"), true},
		{"same pointer", func() *uri.URI { v := uri.New("http://a/b"); return &v }(), true},
		{"nil pointer", (*uri.URI)(nil), false},
		{"case differs", uri.New("HTTP://a/b"), false},
		{"pct differs", uri.New("http://a/%62"), false},
		{"string", "http://a/b", false},
		{"components", uri.Components{Scheme: "http", Authority: "a", Path: "/b"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := u.Equal(c.val); got != c.want {
				t.Errorf("u.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}

	if uri.New("http://a/b") != u {
		t.Error("uri.New(\"http://a/b\") != u, want equal")
	}
}

func TestURI_Absolute(t *testing.T) {
	t.Parallel()

	u := uri.New("http://example.com/docs/intro.html#setup")
	abs := u.Absolute()
	if got, want := abs.String(), "http://example.com/docs/intro.html"; got != want {
		t.Errorf("u.Absolute() = %q, want %q", got, want)
	}
	if got, want := u.Fragment(), "setup"; got != want {
		t.Errorf("u.Fragment() after Absolute() = %q, want %q", got, want)
	}

	c := u.Clone()
	c.ClearFragment()
	if !c.Equal(abs) {
		t.Errorf("c.ClearFragment() = %q, want %q", c, abs)
	}
	if u.Fragment() == "" {
		t.Error("u.Fragment() is empty after clone mutation, want \"setup\"")
	}
}

func TestURI_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		uri  uri.URI
		want bool
	}{
		{"zero", uri.URI{}, false},
		{"parsed", uri.New("http://a/b"), true},
		{"no scheme", uri.FromComponents(uri.Components{Path: "/a"}), false},
		{"bad chars", uri.FromComponents(uri.Components{Scheme: "http", Path: "/a b"}), false},
		{"built", uri.FromComponents(uri.Components{Scheme: "http", Authority: "a", Path: "/b"}), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.uri.IsValid(); got != c.want {
				t.Errorf("uri.IsValid() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestURI_ResolveURI(t *testing.T) {
	t.Parallel()

	base := uri.New("http://a/b/c/d;p?q")
	ref := uri.New("ftp://x/./y#z")
	if got, want := base.ResolveURI(ref).String(), "ftp://x/y#z"; got != want {
		t.Errorf("base.ResolveURI(%q) = %q, want %q", ref, got, want)
	}
}

func TestURI_DecodePercent(t *testing.T) {
	t.Parallel()

	u := uri.New("http://localhost/%20snow.html?q=%7E")
	if got, want := u.DecodePercent(), "http://localhost/ snow.html?q=~"; got != want {
		t.Errorf("u.DecodePercent() = %q, want %q", got, want)
	}
	if got, want := u.String(), "http://localhost/%20snow.html?q=%7E"; got != want {
		t.Errorf("u.String() = %q, want %q", got, want)
	}
}

func TestURI_Set(t *testing.T) {
	t.Parallel()

	u := uri.New("http://a/b")
	if err := u.Set("https://c/d"); err != nil {
		t.Fatalf("u.Set(...) error = %v, want nil", err)
	}
	if got, want := u.String(), "https://c/d"; got != want {
		t.Errorf("u.String() = %q, want %q", got, want)
	}

	if err := u.Set("::bad::"); !uri.IsGrammarErr(err) {
		t.Errorf("u.Set(\"::bad::\") error = %v, want grammar error", err)
	}
	if !u.IsZero() {
		t.Errorf("u after failed Set = %q, want zero", u)
	}
}

func TestURI_Format(t *testing.T) {
	t.Parallel()

	u := uri.New("http://a/b%20c")
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "http://a/b%20c"},
		{"%v", "http://a/b%20c"},
		{"%+s", "http://a/b c"},
		{"%q", `"http://a/b%20c"`},
	}
	for _, c := range cases {
		if got := fmt.Sprintf(c.format, u); got != c.want {
			t.Errorf("fmt.Sprintf(%q, u) = %q, want %q", c.format, got, c.want)
		}
	}

	// %v differs between the value and its components, %#v shows fields for both.
	if got := fmt.Sprintf("%v", u.Components()); strings.Contains(got, "http://") {
		t.Errorf("fmt.Sprintf(\"%%v\", u.Components()) = %q, want struct fields", got)
	}
	for _, v := range []any{u, u.Components()} {
		if got := fmt.Sprintf("%#v", v); !strings.Contains(got, `Path:"/b%20c"`) {
			t.Errorf("fmt.Sprintf(\"%%#v\", %T) = %q, want struct fields", v, got)
		}
	}
}

func TestURI_JSON(t *testing.T) {
	t.Parallel()

	type page struct {
		Link uri.URI `json:"link"`
	}

	in := page{Link: uri.New("http://a/b?q#s")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal(...) error = %v, want nil", err)
	}
	if got, want := string(data), `{"link":"http://a/b?q#s"}`; got != want {
		t.Errorf("json.Marshal(...) = %s, want %s", got, want)
	}

	var out page
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal(...) error = %v, want nil", err)
	}
	if !out.Link.Equal(in.Link) {
		t.Errorf("json.Unmarshal(...) = %q, want %q", out.Link, in.Link)
	}

	if err := json.Unmarshal([]byte(`{"link":"a b"}`), &out); !uri.IsGrammarErr(err) {
		t.Errorf("json.Unmarshal(bad) error = %v, want grammar error", err)
	}
	if !out.Link.IsZero() {
		t.Errorf("out.Link after failed unmarshal = %q, want zero", out.Link)
	}
}

func TestURI_Concurrent(t *testing.T) {
	t.Parallel()

	base := uri.New("http://a/b/c/d;p?q")
	var wg sync.WaitGroup
	errs := make(chan string, len(resolveCases))
	for _, c := range resolveCases {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if got := base.Resolve(c.ref).String(); got != c.want {
					errs <- fmt.Sprintf("base.Resolve(%q) = %q, want %q", c.ref, got, c.want)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

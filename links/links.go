// Package links extracts URI references from HTML documents and resolves them
// against the document URI.
//
// The document base is the page URI, or the first <base href> of the document
// resolved against the page URI. Every matching element attribute is parsed as
// a URI-reference and resolved against the document base. Empty and malformed
// references are skipped and reported at debug level.
//
//	ext := links.NewExtractor(nil)
//	ls, err := ext.Extract(ctx, resp.Body, uri.New("https://example.com/docs/"))
package links

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/log"
	"github.com/ghettovoice/gouri/uri"
)

// Attr is an element attribute holding a URI reference.
type Attr struct {
	Tag  string `json:"tag" yaml:"tag"`
	Name string `json:"name" yaml:"name"`
}

func (a Attr) String() string { return a.Tag + "[" + a.Name + "]" }

// ParseAttr parses the "tag[attr]" notation, e.g. "img[src]".
func ParseAttr(s string) (Attr, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	i := strings.IndexByte(s, '[')
	if i <= 0 || !strings.HasSuffix(s, "]") || i+2 >= len(s) {
		return Attr{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("malformed attribute %q, want tag[attr]", s))
	}
	return Attr{Tag: s[:i], Name: s[i+1 : len(s)-1]}, nil
}

// DefaultAttrs are the attributes inspected when [ExtractorOptions.Attrs] is empty.
var DefaultAttrs = []Attr{
	{"a", "href"},
	{"area", "href"},
	{"link", "href"},
	{"img", "src"},
	{"script", "src"},
	{"iframe", "src"},
}

// Link is a reference found in a document.
type Link struct {
	// Tag is the element name, e.g. "a".
	Tag string `json:"tag" yaml:"tag"`
	// Attr is the attribute name, e.g. "href".
	Attr string `json:"attr" yaml:"attr"`
	// Raw is the attribute value with leading and trailing spaces removed.
	Raw string `json:"raw" yaml:"raw"`
	// URI is the reference resolved against the document base.
	URI uri.URI `json:"uri" yaml:"uri"`
}

// ExtractorOptions are used to configure the [Extractor].
type ExtractorOptions struct {
	// Logger is the logger used by the extractor.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
	// Attrs are the element attributes to inspect.
	// If empty, [DefaultAttrs] are used.
	Attrs []Attr
	// SkipSchemes are the schemes of links to drop after resolution, e.g. "mailto".
	// Schemes are compared case-insensitively.
	SkipSchemes []string
	// KeepDuplicates disables deduplication of links by their resolved URI.
	KeepDuplicates bool
}

func (o *ExtractorOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o *ExtractorOptions) attrs() []Attr {
	if o == nil || len(o.Attrs) == 0 {
		return DefaultAttrs
	}
	return o.Attrs
}

func (o *ExtractorOptions) skipSchemes() map[string]struct{} {
	if o == nil || len(o.SkipSchemes) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(o.SkipSchemes))
	for _, s := range o.SkipSchemes {
		m[strings.ToLower(s)] = struct{}{}
	}
	return m
}

func (o *ExtractorOptions) keepDups() bool {
	return o != nil && o.KeepDuplicates
}

// Extractor extracts links from HTML documents.
// It is safe for concurrent use.
type Extractor struct {
	attrs    map[string][]string
	selector string
	skip     map[string]struct{}
	keepDups bool
	log      *slog.Logger
}

// NewExtractor creates a new extractor.
// Options are optional, nil means defaults.
func NewExtractor(opts *ExtractorOptions) *Extractor {
	e := &Extractor{
		attrs:    make(map[string][]string),
		skip:     opts.skipSchemes(),
		keepDups: opts.keepDups(),
		log:      opts.log(),
	}
	sels := make([]string, 0, len(opts.attrs()))
	for _, a := range opts.attrs() {
		tag, name := strings.ToLower(a.Tag), strings.ToLower(a.Name)
		e.attrs[tag] = append(e.attrs[tag], name)
		sels = append(sels, fmt.Sprintf("%s[%s]", tag, name))
	}
	// single selector group keeps document order
	e.selector = strings.Join(sels, ", ")
	return e
}

// Extract parses the HTML document from r and returns the links found in it
// in document order.
//
// References are resolved against page, or against the document <base href> if present.
// With a zero page relative references stay relative, only their dot-segments are removed.
func (e *Extractor) Extract(ctx context.Context, r io.Reader, page uri.URI) ([]Link, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("parse html: %w", err))
	}
	doc := goquery.NewDocumentFromNode(root)

	base := e.docBase(ctx, doc, page)

	var (
		links  []Link
		seen   = make(map[uri.URI]struct{})
		ctxErr error
	)
	doc.Find(e.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if ctxErr = ctx.Err(); ctxErr != nil {
			return false
		}

		tag := goquery.NodeName(s)
		for _, name := range e.attrs[tag] {
			raw, ok := s.Attr(name)
			if !ok {
				continue
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				e.log.LogAttrs(ctx, slog.LevelDebug, "skip empty reference",
					slog.String("tag", tag),
					slog.String("attr", name),
				)
				continue
			}
			ref, err := uri.ParseReference(raw)
			if err != nil {
				e.log.LogAttrs(ctx, slog.LevelDebug, "skip malformed reference",
					slog.String("tag", tag),
					slog.String("attr", name),
					slog.String("ref", raw),
					slog.Any("error", err),
				)
				continue
			}

			u := base.ResolveURI(uri.FromComponents(ref))
			if _, ok := e.skip[strings.ToLower(u.Scheme())]; ok && u.Scheme() != "" {
				continue
			}
			if !e.keepDups {
				if _, ok := seen[u]; ok {
					continue
				}
				seen[u] = struct{}{}
			}
			links = append(links, Link{Tag: tag, Attr: name, Raw: raw, URI: u})
		}
		return true
	})
	if ctxErr != nil {
		return links, errtrace.Wrap(ctxErr)
	}

	e.log.LogAttrs(ctx, slog.LevelDebug, "links extracted",
		slog.Any("base", base),
		slog.Int("count", len(links)),
	)
	return links, nil
}

func (e *Extractor) docBase(ctx context.Context, doc *goquery.Document, page uri.URI) uri.URI {
	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return page
	}
	href = strings.TrimSpace(href)
	ref, err := uri.ParseReference(href)
	if err != nil || ref.IsZero() {
		e.log.LogAttrs(ctx, slog.LevelDebug, "ignore document base",
			slog.String("href", href),
			slog.Any("error", err),
		)
		return page
	}
	return page.ResolveURI(uri.FromComponents(ref))
}

// Extract extracts links with the default extractor options.
func Extract(ctx context.Context, r io.Reader, page uri.URI) ([]Link, error) {
	return errtrace.Wrap2(NewExtractor(nil).Extract(ctx, r, page))
}

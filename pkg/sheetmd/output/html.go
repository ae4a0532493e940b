// Package output renders extracted workbooks as HTML documents or JSON.
package output

import (
	"bytes"
	_ "embed"
	"html"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// markdownCSS is the stylesheet embedded in every document.
//
//go:embed github-markdown.css
var markdownCSS string

// Stylesheet returns the embedded document stylesheet.
func Stylesheet() string {
	return markdownCSS
}

// HTMLOptions configures document assembly.
type HTMLOptions struct {
	// Sanitize passes the rendered fragment through a user-content HTML policy.
	Sanitize bool
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
		extension.Footnote,
		extension.DefinitionList,
		Superscript,
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
		gmhtml.WithHardWraps(),
	),
)

// RenderFragment converts Markdown to an HTML fragment. Raw HTML passes through
// except for the tags the GFM tag filter disallows.
func RenderFragment(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", &RenderError{Stage: "markdown", Kind: ErrRender, Err: err}
	}
	return filterTags(buf.String()), nil
}

// sanitizePolicy keeps user content markup plus task list checkboxes and classes.
func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}

// HTML renders Markdown into a complete, minified HTML page.
func HTML(md, title string, opts HTMLOptions) (string, error) {
	fragment, err := RenderFragment(md)
	if err != nil {
		return "", err
	}
	if opts.Sanitize {
		fragment = sanitizePolicy().Sanitize(fragment)
	}
	return Document(fragment, title)
}

// Document wraps an HTML fragment in a styled page and minifies the result.
// The title and stylesheet are HTML-escaped.
func Document(fragment, title string) (string, error) {
	var out bytes.Buffer
	d := newDigester(&out)

	chunks := []string{
		"<!DOCTYPE html>",
		"<html>",
		"<head>",
		"<meta charset=UTF-8>",
		`<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">`,
		"<title>", html.EscapeString(title), "</title>",
		"<style>", html.EscapeString(markdownCSS), "</style>",
		"</head>",
		"<body>",
		`<article class="markdown-body">`,
		fragment,
		"</article>",
		"</body>",
		"</html>",
	}
	for _, chunk := range chunks {
		if err := d.digest(chunk); err != nil {
			return "", err
		}
	}
	if err := d.finalize(); err != nil {
		return "", err
	}
	return out.String(), nil
}

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

// digester streams document chunks into the minifier.
type digester struct {
	w io.WriteCloser
}

func newDigester(dst io.Writer) *digester {
	return &digester{w: minifier.Writer("text/html", dst)}
}

func (d *digester) digest(chunk string) error {
	if _, err := io.WriteString(d.w, chunk); err != nil {
		return &RenderError{Stage: "digest", Kind: ErrDigest, Err: err}
	}
	return nil
}

func (d *digester) finalize() error {
	if err := d.w.Close(); err != nil {
		return &RenderError{Stage: "finalize", Kind: ErrDigest, Err: err}
	}
	return nil
}

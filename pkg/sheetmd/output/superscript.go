package output

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindSuperscript is the node kind of ^superscript^ spans.
var KindSuperscript = ast.NewNodeKind("Superscript")

// superscriptNode is an inline ^text^ span.
type superscriptNode struct {
	ast.BaseInline
}

func (n *superscriptNode) Kind() ast.NodeKind {
	return KindSuperscript
}

func (n *superscriptNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type superscriptParser struct{}

func (p *superscriptParser) Trigger() []byte {
	return []byte{'^'}
}

// Parse accepts ^text^ where text is non-empty and holds no whitespace.
func (p *superscriptParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 3 || line[0] != '^' {
		return nil
	}
	end := bytes.IndexByte(line[1:], '^')
	if end <= 0 || bytes.ContainsAny(line[1:end+1], " \t\r\n") {
		return nil
	}

	node := &superscriptNode{}
	node.AppendChild(node, ast.NewTextSegment(text.NewSegment(segment.Start+1, segment.Start+1+end)))
	block.Advance(end + 2)
	return node
}

type superscriptRenderer struct{}

func (r *superscriptRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSuperscript, r.render)
}

func (r *superscriptRenderer) render(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<sup>")
	} else {
		_, _ = w.WriteString("</sup>")
	}
	return ast.WalkContinue, nil
}

type superscript struct{}

// Superscript renders ^text^ as <sup>text</sup>.
var Superscript goldmark.Extender = &superscript{}

func (e *superscript) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&superscriptParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&superscriptRenderer{}, 500),
	))
}

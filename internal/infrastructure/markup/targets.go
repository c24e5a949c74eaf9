package markup

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TargetKind classifies a focusable element of a rendered article.
type TargetKind int

const (
	CodeTarget TargetKind = iota
	LinkTarget
	ImageTarget
)

func (k TargetKind) String() string {
	switch k {
	case LinkTarget:
		return "link"
	case ImageTarget:
		return "image"
	default:
		return "code"
	}
}

// Target is a code block, link or image the viewer can act on.
// Value holds the code text or the destination URL.
type Target struct {
	Kind     TargetKind
	Label    string
	Value    string
	Language string
}

// Targets lists code blocks, links and images in document order.
func Targets(src string) []Target {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var out []Target
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			out = append(out, Target{
				Kind:     CodeTarget,
				Label:    "code",
				Value:    linesText(node, source),
				Language: string(node.Language(source)),
			})
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			out = append(out, Target{Kind: CodeTarget, Label: "code", Value: linesText(node, source)})
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			out = append(out, Target{Kind: LinkTarget, Label: inlineText(node, source), Value: string(node.Destination)})
		case *ast.AutoLink:
			out = append(out, Target{Kind: LinkTarget, Label: string(node.Label(source)), Value: string(node.URL(source))})
		case *ast.Image:
			out = append(out, Target{Kind: ImageTarget, Label: inlineText(node, source), Value: string(node.Destination)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func linesText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

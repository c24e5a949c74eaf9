package markup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	policy = newPolicy()

	whitespace = regexp.MustCompile(`\s+`)
	escaper    = strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"[", `\[`,
		"]", `\]`,
		"`", "\\`",
		"<", `\<`,
	)
	// Line starts that Markdown would read as a heading, quote, list item or
	// setext underline.
	blockMarker   = regexp.MustCompile(`^(#{1,6}(\s|$)|>|[-+](\s|$)|[-=]+\s*$)`)
	orderedMarker = regexp.MustCompile(`^\d{1,9}[.)](\s|$)`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u")
	p.AllowAttrs("class").OnElements("div", "span", "code", "pre")
	return p
}

// Sanitize strips scripts, handlers and unknown markup from stored HTML.
func Sanitize(src string) string {
	return policy.Sanitize(src)
}

// ToMarkdown converts stored HTML into editor Markdown.
func ToMarkdown(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Sanitize(src)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return "", nil
	}
	return strings.Join(blocks(body.Nodes[0]), "\n\n"), nil
}

// blocks converts the children of n into Markdown blocks. Runs of inline
// content between block elements become paragraphs.
func blocks(n *html.Node) []string {
	var (
		out  []string
		para strings.Builder
	)
	flush := func() {
		if text := paragraph(para.String()); text != "" {
			out = append(out, text)
		}
		para.Reset()
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isBlock(c) {
			para.WriteString(inline(c))
			continue
		}
		flush()
		if b := block(c); b != "" {
			out = append(out, b)
		}
	}
	flush()
	return out
}

func block(n *html.Node) string {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		text := tidyParagraph(inlineChildren(n))
		if text == "" {
			return ""
		}
		return strings.Repeat("#", level) + " " + strings.ReplaceAll(text, "\n", " ")
	case atom.P:
		return paragraph(inlineChildren(n))
	case atom.Pre:
		return fence(n)
	case atom.Blockquote:
		return prefixLines(strings.Join(blocks(n), "\n\n"), "> ")
	case atom.Ul, atom.Ol:
		return list(n)
	case atom.Hr:
		return "---"
	case atom.Div:
		if hasClass(n, "warning-box") {
			return warning(n)
		}
	}
	return strings.Join(blocks(n), "\n\n")
}

func warning(n *html.Node) string {
	content := findClass(n, "warning-content")
	if content == nil {
		content = n
	}
	body := strings.Join(blocks(content), "\n\n")
	if body == "" {
		return "> " + warningTag
	}
	return "> " + warningTag + "\n" + prefixLines(body, "> ")
}

func fence(n *html.Node) string {
	lang := ""
	code := n
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Code {
			code = c
			lang = language(c)
			break
		}
	}
	text := strings.TrimRight(textContent(code), "\n")
	ticks := "```"
	for strings.Contains(text, ticks) {
		ticks += "`"
	}
	return ticks + lang + "\n" + text + "\n" + ticks
}

func language(n *html.Node) string {
	for class := range strings.FieldsSeq(attr(n, "class")) {
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return lang
		}
	}
	return ""
}

func list(n *html.Node) string {
	ordered := n.DataAtom == atom.Ol
	start := 1
	if ordered {
		if v, err := strconv.Atoi(attr(n, "start")); err == nil {
			start = v
		}
	}

	var items []string
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom != atom.Li {
			continue
		}
		marker := "- "
		if ordered {
			marker = strconv.Itoa(start+i) + ". "
		}
		i++
		body := strings.Join(blocks(c), "\n")
		indent := strings.Repeat(" ", len(marker))
		lines := strings.Split(body, "\n")
		for j := 1; j < len(lines); j++ {
			if lines[j] != "" {
				lines[j] = indent + lines[j]
			}
		}
		items = append(items, marker+strings.Join(lines, "\n"))
	}
	return strings.Join(items, "\n")
}

func inline(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return escaper.Replace(whitespace.ReplaceAllString(n.Data, " "))
	case html.ElementNode:
	default:
		return ""
	}

	switch n.DataAtom {
	case atom.Br:
		return "\n"
	case atom.Strong, atom.B:
		return wrap(inlineChildren(n), "**", "**")
	case atom.Em, atom.I:
		return wrap(inlineChildren(n), "_", "_")
	case atom.U:
		return wrap(inlineChildren(n), "<u>", "</u>")
	case atom.Code:
		return codeSpan(textContent(n))
	case atom.A:
		label := strings.TrimSpace(inlineChildren(n))
		href := attr(n, "href")
		if href == "" {
			return label
		}
		if label == "" {
			label = escaper.Replace(href)
		}
		return "[" + label + "](" + destination(href) + ")"
	case atom.Img:
		src := attr(n, "src")
		if src == "" {
			return ""
		}
		return "![" + escaper.Replace(attr(n, "alt")) + "](" + destination(src) + ")"
	}
	return inlineChildren(n)
}

func inlineChildren(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inline(c))
	}
	return b.String()
}

// wrap surrounds inner with markers, keeping outer whitespace outside them.
func wrap(inner, open, closing string) string {
	trimmed := strings.TrimSpace(inner)
	if trimmed == "" {
		return inner
	}
	lead := inner[:len(inner)-len(strings.TrimLeft(inner, " \n"))]
	trail := inner[len(strings.TrimRight(inner, " \n")):]
	return lead + open + trimmed + closing + trail
}

func codeSpan(text string) string {
	text = whitespace.ReplaceAllString(text, " ")
	if strings.Contains(text, "`") {
		return "`` " + text + " ``"
	}
	return "`" + text + "`"
}

func destination(url string) string {
	if strings.ContainsAny(url, " ()") {
		return "<" + url + ">"
	}
	return url
}

func tidyParagraph(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// paragraph tidies inline text and escapes line starts so the text stays a
// plain paragraph when it is parsed again.
func paragraph(text string) string {
	lines := strings.Split(tidyParagraph(text), "\n")
	for i, line := range lines {
		lines[i] = escapeLineStart(line)
	}
	return strings.Join(lines, "\n")
}

func escapeLineStart(line string) string {
	if orderedMarker.MatchString(line) {
		dot := strings.IndexAny(line, ".)")
		return line[:dot] + `\` + line[dot:]
	}
	if blockMarker.MatchString(line) {
		return `\` + line
	}
	return line
}

func prefixLines(text, prefix string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = strings.TrimRight(prefix, " ")
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Div, atom.Pre, atom.Blockquote, atom.Ul, atom.Ol,
		atom.Hr, atom.Table, atom.Section, atom.Article, atom.Header, atom.Footer:
		return true
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for c := range strings.FieldsSeq(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if hasClass(c, class) {
			return c
		}
		if found := findClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

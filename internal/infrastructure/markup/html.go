// Package markup converts article content between Markdown and HTML.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const warningTag = "[!WARNING]"

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Underline is stored as inline <u>, so raw HTML must pass through.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ToHTML renders Markdown into the HTML stored by the article backend.
// Warning callouts become the warning-box markup the web front end styles.
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	out := buf.String()
	if strings.Contains(out, warningTag) {
		decorated, err := decorateWarnings(out)
		if err != nil {
			return "", err
		}
		out = decorated
	}
	return strings.TrimSpace(out), nil
}

func decorateWarnings(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("blockquote").Each(func(_ int, quote *goquery.Selection) {
		first := quote.Children().First()
		if !first.Is("p") || !strings.HasPrefix(strings.TrimSpace(first.Text()), warningTag) {
			return
		}
		inner, err := first.Html()
		if err != nil {
			return
		}
		inner = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(inner), warningTag))
		if inner == "" {
			first.Remove()
		} else {
			first.SetHtml(inner)
		}
		body, err := quote.Html()
		if err != nil {
			return
		}
		quote.ReplaceWithHtml(warningBox(strings.TrimSpace(body)))
	})
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return out, nil
}

func warningBox(content string) string {
	return `<div class="warning-box"><span class="warning-icon">⚠</span>` +
		`<span class="warning-divider"></span>` +
		`<span class="warning-content">` + content + `</span></div>`
}

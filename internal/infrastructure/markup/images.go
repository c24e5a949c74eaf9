package markup

import (
	"html"
	"regexp"
)

var imagePattern = regexp.MustCompile(`!\[([^\]\n]*)\]\(([^)\s]+)\)`)

// RewriteImages turns Markdown image references left in stored HTML into
// inline <img> elements.
func RewriteImages(content string) string {
	return imagePattern.ReplaceAllStringFunc(content, func(m string) string {
		parts := imagePattern.FindStringSubmatch(m)
		alt := parts[1]
		if alt == "" {
			alt = "Image"
		}
		return `<img src="` + html.EscapeString(parts[2]) + `" alt="` + html.EscapeString(alt) + `">`
	})
}

package article

import (
	"fmt"
	"strings"
)

// Format names the representation in which article content is persisted.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat resolves a configured format name. Empty means HTML.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown content format %q", value)
	}
}

func (f Format) String() string { return string(f) }

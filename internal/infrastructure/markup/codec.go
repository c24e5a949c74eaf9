package markup

import (
	"strings"

	"github.com/tesso57/tektune/internal/domain/article"
)

// Codec converts between the persisted content format and editor Markdown.
type Codec interface {
	Decode(stored string) (string, error)
	Encode(markdown string) (string, error)
	Format() article.Format
}

// NewCodec returns the codec for a persisted format.
func NewCodec(format article.Format) Codec {
	if format == article.FormatMarkdown {
		return markdownCodec{}
	}
	return htmlCodec{}
}

type markdownCodec struct{}

func (markdownCodec) Decode(stored string) (string, error) { return stored, nil }

func (markdownCodec) Encode(markdown string) (string, error) { return markdown, nil }

func (markdownCodec) Format() article.Format { return article.FormatMarkdown }

type htmlCodec struct{}

func (htmlCodec) Decode(stored string) (string, error) {
	if strings.TrimSpace(stored) == "" {
		return "", nil
	}
	return ToMarkdown(RewriteImages(stored))
}

func (htmlCodec) Encode(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	return ToHTML(markdown)
}

func (htmlCodec) Format() article.Format { return article.FormatHTML }

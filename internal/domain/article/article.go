// Package article defines the article entity and its identity rules.
package article

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the longest title accepted.
const MaxTitleLength = 100

var titlePattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)

// Article is a named document persisted by the article store.
type Article struct {
	Title   string
	Content string
	Slug    string
}

// New builds an article with its slug derived from the title.
func New(title, content string) Article {
	title = strings.TrimSpace(title)
	return Article{Title: title, Content: content, Slug: Slug(title)}
}

// ValidateTitle trims the title and checks the allowed character set.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	switch {
	case trimmed == "":
		return "", &ValidationError{Field: "title", Message: "Title is required"}
	case utf8.RuneCountInString(trimmed) > MaxTitleLength:
		return "", &ValidationError{Field: "title", Message: fmt.Sprintf("Title must be at most %d characters", MaxTitleLength)}
	case !titlePattern.MatchString(trimmed):
		return "", &ValidationError{Field: "title", Message: "Invalid title. Only alphanumeric characters and spaces are allowed."}
	}
	return trimmed, nil
}

// Slug returns the canonical identity key for a title.
// Spaces become underscores, which keeps the key reversible for valid titles.
func Slug(title string) string {
	return strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
}

// TitleFromSlug reverses Slug.
func TitleFromSlug(slug string) string {
	return strings.ReplaceAll(slug, "_", " ")
}

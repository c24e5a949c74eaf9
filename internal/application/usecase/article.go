// Package usecase contains application-level services.
package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tesso57/tektune/internal/domain/article"
)

// ArticleRepository abstracts the remote article store.
type ArticleRepository interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, title string) (article.Article, error)
	Create(ctx context.Context, title, content string) (string, error)
	Update(ctx context.Context, oldTitle, newTitle, content string) (string, error)
	Delete(ctx context.Context, title string) error
	UploadImage(ctx context.Context, scope, filename string, data io.Reader) (string, error)
}

// ContentCodec converts between the editor's Markdown and the persisted format.
type ContentCodec interface {
	Decode(stored string) (string, error)
	Encode(markdown string) (string, error)
	Format() article.Format
}

// DefaultImageScope is used for uploads made before an article has a title.
const DefaultImageScope = "untitled"

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// ArticleService provides article operations for the terminal client.
type ArticleService struct {
	Repo        ArticleRepository
	Codec       ContentCodec
	Placeholder string
}

// NewArticleService constructs an ArticleService.
func NewArticleService(repo ArticleRepository, codec ContentCodec, placeholder string) ArticleService {
	if strings.TrimSpace(placeholder) == "" {
		placeholder = DefaultImageScope
	}
	return ArticleService{Repo: repo, Codec: codec, Placeholder: placeholder}
}

// List returns the article titles.
func (s ArticleService) List(ctx context.Context) ([]string, error) {
	return s.Repo.List(ctx)
}

// Get fetches an article with its content decoded to Markdown.
func (s ArticleService) Get(ctx context.Context, title string) (article.Article, error) {
	a, err := s.Repo.Get(ctx, title)
	if err != nil {
		return article.Article{}, err
	}
	if s.Codec == nil {
		return a, nil
	}
	body, err := s.Codec.Decode(a.Content)
	if err != nil {
		return article.Article{}, fmt.Errorf("decode %q: %w", a.Title, err)
	}
	a.Content = body
	return a, nil
}

// CreateEmpty creates an article with no content, the first step of adding one.
// It returns the validated title.
func (s ArticleService) CreateEmpty(ctx context.Context, title string) (string, error) {
	valid, err := article.ValidateTitle(title)
	if err != nil {
		return "", err
	}
	if _, err := s.Repo.Create(ctx, valid, ""); err != nil {
		return "", err
	}
	return valid, nil
}

// Create creates an article with Markdown content and returns the validated title.
func (s ArticleService) Create(ctx context.Context, title, body string) (string, error) {
	valid, err := article.ValidateTitle(title)
	if err != nil {
		return "", err
	}
	content, err := s.encode(body)
	if err != nil {
		return "", err
	}
	if _, err := s.Repo.Create(ctx, valid, content); err != nil {
		return "", err
	}
	return valid, nil
}

// Update saves Markdown content under newTitle, renaming oldTitle when they differ.
// It returns the validated new title.
func (s ArticleService) Update(ctx context.Context, oldTitle, newTitle, body string) (string, error) {
	valid, err := article.ValidateTitle(newTitle)
	if err != nil {
		return "", err
	}
	content, err := s.encode(body)
	if err != nil {
		return "", err
	}
	if _, err := s.Repo.Update(ctx, oldTitle, valid, content); err != nil {
		return "", err
	}
	return valid, nil
}

// Delete removes an article.
func (s ArticleService) Delete(ctx context.Context, title string) error {
	return s.Repo.Delete(ctx, title)
}

// ImageScope returns the upload scope for the article being edited.
func (s ArticleService) ImageScope(title string) string {
	if slug := article.Slug(title); slug != "" {
		return slug
	}
	if s.Placeholder == "" {
		return DefaultImageScope
	}
	return s.Placeholder
}

// UploadImage uploads an image for the article titled title and returns its URL.
func (s ArticleService) UploadImage(ctx context.Context, title, filename string, data io.Reader) (string, error) {
	name := filepath.Base(filename)
	if !AllowedImage(name) {
		return "", &article.UploadError{Message: "Invalid file type"}
	}
	return s.Repo.UploadImage(ctx, s.ImageScope(title), name, data)
}

// AllowedImage reports whether filename has an accepted image extension.
func AllowedImage(filename string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(filename)))
}

// ImageExtensions lists the accepted image extensions, including the dot.
func ImageExtensions() []string {
	return slices.Clone(imageExtensions)
}

func (s ArticleService) encode(body string) (string, error) {
	if s.Codec == nil {
		return body, nil
	}
	content, err := s.Codec.Encode(body)
	if err != nil {
		return "", fmt.Errorf("encode content: %w", err)
	}
	return content, nil
}

package blog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/identity"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	ErrRepositoryRequired = errors.New("blog importer: post repository is required")
	ErrSlugMissing        = errors.New("blog importer: frontmatter slug is required")
)

// Document is a parsed markdown source file carrying one locale of a post.
type Document struct {
	Slug     string
	Locale   string
	Meta     FrontMatter
	Body     []byte
	Modified time.Time
}

// FrontMatter is the metadata envelope accepted at the top of post files.
type FrontMatter struct {
	Title    string    `yaml:"title"`
	Slug     string    `yaml:"slug"`
	Excerpt  string    `yaml:"excerpt"`
	Category string    `yaml:"category"`
	Author   string    `yaml:"author"`
	Image    string    `yaml:"image"`
	Locale   string    `yaml:"locale"`
	Date     time.Time `yaml:"date"`
	Home     bool      `yaml:"home"`
	Draft    bool      `yaml:"draft"`
}

// ParseDocument extracts frontmatter and body from raw markdown bytes.
// The slug falls back to one derived from the title when absent.
func ParseDocument(source []byte, modified time.Time) (*Document, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		slug = catalog.DeriveSlug(meta.Title)
	}
	locale := i18n.NormalizeLocale(meta.Locale)
	if locale == "" {
		locale = i18n.DefaultLocale
	}

	return &Document{
		Slug:     slug,
		Locale:   locale,
		Meta:     meta,
		Body:     body,
		Modified: modified,
	}, nil
}

// ImportResult summarises one importer run.
type ImportResult struct {
	Created int
	Updated int
	Skipped int
}

// Importer upserts markdown documents into the post store. Documents sharing
// a slug are merged into one post, each contributing its locale's variants.
type Importer struct {
	posts  PostRepository
	now    func() time.Time
	logger interfaces.Logger
}

// ImporterOption configures the importer.
type ImporterOption func(*Importer)

// WithImporterClock overrides the clock used to stamp imported posts.
func WithImporterClock(clock func() time.Time) ImporterOption {
	return func(i *Importer) {
		i.now = clock
	}
}

// WithImporterLogger injects the module logger.
func WithImporterLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter builds an importer over the provided repository.
func NewImporter(posts PostRepository, opts ...ImporterOption) *Importer {
	imp := &Importer{
		posts:  posts,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportDocuments groups documents by slug and upserts each group as one
// post. Post identifiers are derived from the slug so repeated imports of
// the same sources stay idempotent.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*Document) (*ImportResult, error) {
	if i.posts == nil {
		return nil, ErrRepositoryRequired
	}

	result := &ImportResult{}
	grouped := make(map[string][]*Document)
	order := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if doc.Slug == "" {
			result.Skipped++
			continue
		}
		if _, seen := grouped[doc.Slug]; !seen {
			order = append(order, doc.Slug)
		}
		grouped[doc.Slug] = append(grouped[doc.Slug], doc)
	}

	for _, slug := range order {
		if err := i.upsertGroup(ctx, slug, grouped[slug], result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (i *Importer) upsertGroup(ctx context.Context, slug string, docs []*Document, result *ImportResult) error {
	title := i18n.Text{}
	excerpt := i18n.Text{}
	body := i18n.Text{}
	category := ""
	author := ""
	image := ""
	home := false
	active := true

	for _, doc := range docs {
		if t := strings.TrimSpace(doc.Meta.Title); t != "" {
			title.Set(doc.Locale, t)
		}
		if e := strings.TrimSpace(doc.Meta.Excerpt); e != "" {
			excerpt.Set(doc.Locale, e)
		}
		if b := strings.TrimSpace(string(doc.Body)); b != "" {
			body.Set(doc.Locale, b)
		}
		if doc.Meta.Category != "" {
			category = doc.Meta.Category
		}
		if doc.Meta.Author != "" {
			author = doc.Meta.Author
		}
		if doc.Meta.Image != "" {
			image = doc.Meta.Image
		}
		if doc.Meta.Home {
			home = true
		}
		if doc.Locale == i18n.DefaultLocale && doc.Meta.Draft {
			active = false
		}
	}

	if title.Resolve(i18n.DefaultLocale) == "" {
		title.Set(i18n.DefaultLocale, fallbackTitle(slug))
	}

	id := identity.PostUUID(slug)
	now := i.now()

	existing, err := i.posts.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		created := &Post{
			ID:         id,
			Slug:       slug,
			Title:      i18n.ColumnsOf(title),
			Excerpt:    i18n.ColumnsOf(excerpt),
			Body:       i18n.ColumnsOf(body),
			Category:   category,
			Author:     author,
			ImageURL:   image,
			ShowOnHome: home,
			IsActive:   active,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := i.posts.Create(ctx, created); err != nil {
			return err
		}
		i.logger.Info("post imported", "slug", slug)
		result.Created++
		return nil
	}

	existing.Title = i18n.ColumnsOf(title)
	existing.Excerpt = i18n.ColumnsOf(excerpt)
	existing.Body = i18n.ColumnsOf(body)
	existing.Category = category
	existing.Author = author
	existing.ImageURL = image
	existing.ShowOnHome = home
	existing.IsActive = active
	existing.UpdatedAt = now

	if _, err := i.posts.Update(ctx, existing); err != nil {
		return err
	}
	i.logger.Info("post reimported", "slug", slug)
	result.Updated++
	return nil
}

func fallbackTitle(slug string) string {
	parts := strings.Split(slug, "-")
	for idx, part := range parts {
		if part == "" {
			continue
		}
		parts[idx] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

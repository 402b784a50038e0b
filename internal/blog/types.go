package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/gurukulhq/gurukul/internal/i18n"
)

// Post is a blog entry. The body holds Markdown per locale; HTML is rendered
// at read time and never persisted.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID      uuid.UUID    `bun:",pk,type:uuid" json:"id"`
	Slug    string       `bun:"slug,notnull"  json:"slug"`
	Title   i18n.Columns `bun:"embed:title_"   json:"title"`
	Excerpt i18n.Columns `bun:"embed:excerpt_" json:"excerpt"`
	Body    i18n.Columns `bun:"embed:body_"    json:"body"`
	// Category references a blog-namespace Category by default-locale name.
	// The link is a loose string match with no integrity enforcement.
	Category   string    `bun:"category"   json:"category"`
	Author     string    `bun:"author"     json:"author,omitempty"`
	ImageURL   string    `bun:"image_url"  json:"image_url,omitempty"`
	ShowOnHome bool      `bun:"show_on_home,notnull,default:false" json:"show_on_home"`
	IsActive   bool      `bun:"is_active,notnull,default:true"     json:"is_active"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CreatePostRequest captures the admin form payload for a new post.
type CreatePostRequest struct {
	Slug       string
	Title      i18n.Text
	Excerpt    i18n.Text
	Body       i18n.Text
	Category   string
	Author     string
	ImageURL   string
	ShowOnHome bool
	IsActive   bool
}

// UpdatePostRequest replaces the mutable fields of an existing post.
type UpdatePostRequest struct {
	ID         uuid.UUID
	Title      i18n.Text
	Excerpt    i18n.Text
	Body       i18n.Text
	Category   string
	Author     string
	ImageURL   string
	ShowOnHome bool
	IsActive   bool
}

// ListOptions filters post reads. The zero value lists everything.
type ListOptions struct {
	ActiveOnly bool
	HomeOnly   bool
	Category   string
}

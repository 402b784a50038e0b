package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/gurukulhq/gurukul/internal/i18n"
)

// Category namespaces. Course and blog categories are independent
// collections that happen to share a shape.
const (
	NamespaceCourse = "course"
	NamespaceBlog   = "blog"
)

// Course is a catalog entry for a regular offering. Localized fields are
// stored as one column per supported locale and recomposed on read.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:co"`

	ID        uuid.UUID    `bun:",pk,type:uuid" json:"id"`
	Slug      string       `bun:"slug,notnull"  json:"slug"`
	Title     i18n.Columns `bun:"embed:title_"  json:"title"`
	ShortDesc i18n.Columns `bun:"embed:short_desc_" json:"short_description"`
	Desc      i18n.Columns `bun:"embed:desc_"   json:"description"`
	// Category references a Category by default-locale name. The link is a
	// loose string match: deleting a category does not cascade here.
	Category   string    `bun:"category"          json:"category"`
	Level      string    `bun:"level"             json:"level,omitempty"`
	Duration   string    `bun:"duration"          json:"duration,omitempty"`
	ImageURL   string    `bun:"image_url"         json:"image_url,omitempty"`
	IsPopular  bool      `bun:"is_popular,notnull,default:false"   json:"is_popular"`
	ShowOnHome bool      `bun:"show_on_home,notnull,default:false" json:"show_on_home"`
	IsActive   bool      `bun:"is_active,notnull,default:true"     json:"is_active"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Camp is a seasonal offering with a bounded schedule.
type Camp struct {
	bun.BaseModel `bun:"table:camps,alias:ca"`

	ID         uuid.UUID    `bun:",pk,type:uuid" json:"id"`
	Slug       string       `bun:"slug,notnull"  json:"slug"`
	Title      i18n.Columns `bun:"embed:title_"  json:"title"`
	Desc       i18n.Columns `bun:"embed:desc_"   json:"description"`
	Category   string       `bun:"category"      json:"category"`
	AgeGroup   string       `bun:"age_group"     json:"age_group,omitempty"`
	Location   string       `bun:"location"      json:"location,omitempty"`
	StartsAt   *time.Time   `bun:"starts_at,nullzero" json:"starts_at,omitempty"`
	EndsAt     *time.Time   `bun:"ends_at,nullzero"   json:"ends_at,omitempty"`
	ImageURL   string       `bun:"image_url"     json:"image_url,omitempty"`
	IsPopular  bool         `bun:"is_popular,notnull,default:false"   json:"is_popular"`
	ShowOnHome bool         `bun:"show_on_home,notnull,default:false" json:"show_on_home"`
	IsActive   bool         `bun:"is_active,notnull,default:true"     json:"is_active"`
	CreatedAt  time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Category names a grouping inside one namespace.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID        uuid.UUID    `bun:",pk,type:uuid"     json:"id"`
	Namespace string       `bun:"namespace,notnull" json:"namespace"`
	Name      i18n.Columns `bun:"embed:name_"       json:"name"`
	CreatedAt time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// CreateCourseRequest captures the admin form payload for a new course.
type CreateCourseRequest struct {
	Slug       string
	Title      i18n.Text
	ShortDesc  i18n.Text
	Desc       i18n.Text
	Category   string
	Level      string
	Duration   string
	ImageURL   string
	IsPopular  bool
	ShowOnHome bool
	IsActive   bool
}

// UpdateCourseRequest replaces the mutable fields of an existing course.
// Localized fields are whole-record replacements, never per-language patches.
type UpdateCourseRequest struct {
	ID         uuid.UUID
	Title      i18n.Text
	ShortDesc  i18n.Text
	Desc       i18n.Text
	Category   string
	Level      string
	Duration   string
	ImageURL   string
	IsPopular  bool
	ShowOnHome bool
	IsActive   bool
}

// CreateCampRequest captures the admin form payload for a new camp.
type CreateCampRequest struct {
	Slug       string
	Title      i18n.Text
	Desc       i18n.Text
	Category   string
	AgeGroup   string
	Location   string
	StartsAt   *time.Time
	EndsAt     *time.Time
	ImageURL   string
	IsPopular  bool
	ShowOnHome bool
	IsActive   bool
}

// UpdateCampRequest replaces the mutable fields of an existing camp.
type UpdateCampRequest struct {
	ID         uuid.UUID
	Title      i18n.Text
	Desc       i18n.Text
	Category   string
	AgeGroup   string
	Location   string
	StartsAt   *time.Time
	EndsAt     *time.Time
	ImageURL   string
	IsPopular  bool
	ShowOnHome bool
	IsActive   bool
}

// CreateCategoryRequest registers a category inside one namespace.
type CreateCategoryRequest struct {
	Namespace string
	Name      i18n.Text
}

// UpdateCategoryRequest renames an existing category.
type UpdateCategoryRequest struct {
	ID   uuid.UUID
	Name i18n.Text
}

// ListOptions filters collection reads. The zero value lists everything.
type ListOptions struct {
	ActiveOnly  bool
	HomeOnly    bool
	PopularOnly bool
	Category    string
}

// Matches reports whether a course satisfies the filter.
func (o ListOptions) matchesFlags(isActive, showOnHome, isPopular bool, category string) bool {
	if o.ActiveOnly && !isActive {
		return false
	}
	if o.HomeOnly && !showOnHome {
		return false
	}
	if o.PopularOnly && !isPopular {
		return false
	}
	if o.Category != "" && o.Category != category {
		return false
	}
	return true
}

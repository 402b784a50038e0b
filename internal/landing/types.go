package landing

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/gurukulhq/gurukul/internal/i18n"
)

// Status is the publication state of a landing page.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// PricingBatch is one purchasable batch entered in the wizard.
type PricingBatch struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Schedule string `json:"schedule,omitempty"`
	Seats    int    `json:"seats,omitempty"`
}

// Params is the full wizard form snapshot a page was generated from.
type Params struct {
	CourseName        string         `json:"course_name"`
	CourseDescription string         `json:"course_description"`
	Audience          string         `json:"audience"`
	AgeRange          string         `json:"age_range"`
	Duration          string         `json:"duration"`
	Schedule          string         `json:"schedule"`
	PricingBatches    []PricingBatch `json:"pricing_batches"`
	TrustSignals      []string       `json:"trust_signals"`
	Tone              string         `json:"tone"`
}

// Hero is the top section of a generated page.
type Hero struct {
	Headline    i18n.Text `json:"headline"`
	Subheadline i18n.Text `json:"subheadline"`
}

// FAQ is one generated question and answer pair.
type FAQ struct {
	Question i18n.Text `json:"question"`
	Answer   i18n.Text `json:"answer"`
}

// Pricing is the generated pricing copy. Batch data itself lives in Params.
type Pricing struct {
	Headline i18n.Text `json:"headline"`
	Note     i18n.Text `json:"note"`
}

// CTA is the closing call-to-action section.
type CTA struct {
	Label i18n.Text `json:"label"`
	Note  i18n.Text `json:"note"`
}

// Content is the generated multi-section marketing copy. Every text field
// accepts either a bare string or a locale map on the wire.
type Content struct {
	Hero       Hero        `json:"hero"`
	About      i18n.Text   `json:"about"`
	Benefits   []i18n.Text `json:"benefits"`
	Curriculum []i18n.Text `json:"curriculum"`
	Pricing    Pricing     `json:"pricing"`
	FAQ        []FAQ       `json:"faq"`
	CTA        CTA         `json:"cta"`
}

// Page is a persisted landing page.
type Page struct {
	bun.BaseModel `bun:"table:landing_pages,alias:lp"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	Status    Status    `bun:"status,notnull" json:"status"`
	Params    Params    `bun:"params,type:jsonb" json:"params"`
	Content   Content   `bun:"content,type:jsonb" json:"content"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// SaveRequest inserts a new page with its chosen status.
type SaveRequest struct {
	Slug    string
	Status  Status
	Params  Params
	Content Content
}

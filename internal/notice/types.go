package notice

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/gurukulhq/gurukul/internal/i18n"
)

// Notice is the site-wide popup announcement. At most one row exists; writes
// always target the same deterministic identifier.
type Notice struct {
	bun.BaseModel `bun:"table:notices,alias:n"`

	ID        uuid.UUID    `bun:"id,pk,type:uuid" json:"id"`
	Title     i18n.Columns `bun:"embed:title_" json:"title"`
	Message   i18n.Columns `bun:"embed:message_" json:"message"`
	LinkURL   string       `bun:"link_url" json:"link_url,omitempty"`
	LinkLabel i18n.Columns `bun:"embed:link_label_" json:"link_label"`
	StartsAt  *time.Time   `bun:"starts_at,nullzero" json:"starts_at,omitempty"`
	EndsAt    *time.Time   `bun:"ends_at,nullzero" json:"ends_at,omitempty"`
	IsActive  bool         `bun:"is_active" json:"is_active"`
	CreatedAt time.Time    `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time    `bun:"updated_at,notnull" json:"updated_at"`
}

// UpsertRequest carries the full popup payload. Every save replaces the
// previous state.
type UpsertRequest struct {
	Title     i18n.Text
	Message   i18n.Text
	LinkURL   string
	LinkLabel i18n.Text
	StartsAt  *time.Time
	EndsAt    *time.Time
	IsActive  bool
}

// VisibleAt reports whether the notice should be shown at the given instant.
// A nil boundary leaves that side of the window open.
func (n *Notice) VisibleAt(now time.Time) bool {
	if n == nil || !n.IsActive {
		return false
	}
	if n.StartsAt != nil && now.Before(*n.StartsAt) {
		return false
	}
	if n.EndsAt != nil && now.After(*n.EndsAt) {
		return false
	}
	return true
}

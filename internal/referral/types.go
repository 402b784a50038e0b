package referral

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Link is a referral code an ambassador shares.
type Link struct {
	bun.BaseModel `bun:"table:referral_links,alias:rl"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Code        string    `bun:"code,notnull,unique" json:"code"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	IsActive    bool      `bun:"is_active" json:"is_active"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Visit is one recorded page hit attributed to a link. Append-only.
type Visit struct {
	bun.BaseModel `bun:"table:referral_visits,alias:rv"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	LinkID    uuid.UUID `bun:"link_id,notnull,type:uuid" json:"link_id"`
	Path      string    `bun:"path" json:"path,omitempty"`
	VisitedAt time.Time `bun:"visited_at,notnull" json:"visited_at"`
}

// EnrollmentStatus is the admin-managed triage state of an enrollment.
type EnrollmentStatus string

const (
	StatusPending   EnrollmentStatus = "pending"
	StatusContacted EnrollmentStatus = "contacted"
	StatusApproved  EnrollmentStatus = "approved"
	StatusRejected  EnrollmentStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Enrollment is a public enrollment submission, optionally attributed to a
// referral link.
type Enrollment struct {
	bun.BaseModel `bun:"table:referral_enrollments,alias:re"`

	ID          uuid.UUID        `bun:"id,pk,type:uuid" json:"id"`
	StudentName string           `bun:"student_name,notnull" json:"student_name"`
	Email       string           `bun:"email,notnull" json:"email"`
	Phone       string           `bun:"phone" json:"phone,omitempty"`
	CourseID    string           `bun:"course_id,notnull" json:"course_id"`
	LinkID      *uuid.UUID       `bun:"link_id,nullzero,type:uuid" json:"link_id,omitempty"`
	Status      EnrollmentStatus `bun:"status,notnull" json:"status"`
	CreatedAt   time.Time        `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time        `bun:"updated_at,notnull" json:"updated_at"`
}

// CreateLinkRequest registers a new referral code.
type CreateLinkRequest struct {
	Code        string
	Name        string
	Description string
	IsActive    bool
}

// SubmitEnrollmentRequest is the public enrollment payload. Code is the
// optional referral code from the URL.
type SubmitEnrollmentRequest struct {
	StudentName string
	Email       string
	Phone       string
	CourseID    string
	Code        string
}

// LinkStats aggregates per-link attribution counters.
type LinkStats struct {
	Link        *Link `json:"link"`
	Visits      int   `json:"visits"`
	Enrollments int   `json:"enrollments"`
}

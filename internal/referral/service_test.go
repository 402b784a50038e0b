package referral

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/identity"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(
		NewMemoryLinkRepository(),
		NewMemoryVisitRepository(),
		NewMemoryEnrollmentRepository(),
		WithClock(func() time.Time { return time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC) }),
	)
}

func TestSubmitEnrollmentWithoutCode(t *testing.T) {
	svc := newTestService(t)

	enrollment, err := svc.SubmitEnrollment(context.Background(), SubmitEnrollmentRequest{
		StudentName: "Asha",
		Email:       "asha@example.com",
		CourseID:    "course-123",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if enrollment.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", enrollment.Status)
	}
	if enrollment.LinkID != nil {
		t.Fatalf("expected nil link attribution, got %v", enrollment.LinkID)
	}
}

func TestSubmitEnrollmentUnknownCodeIsNotAnError(t *testing.T) {
	svc := newTestService(t)

	enrollment, err := svc.SubmitEnrollment(context.Background(), SubmitEnrollmentRequest{
		StudentName: "Asha",
		Email:       "asha@example.com",
		CourseID:    "course-123",
		Code:        "no-such-code",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if enrollment.LinkID != nil {
		t.Fatal("expected unknown code to yield nil attribution")
	}
}

func TestSubmitEnrollmentAttributesActiveLink(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	link, err := svc.CreateLink(ctx, CreateLinkRequest{Code: "GURU10", Name: "Guru Promo", IsActive: true})
	if err != nil {
		t.Fatalf("create link: %v", err)
	}
	if link.ID != identity.ReferralLinkUUID("guru10") {
		t.Fatalf("expected deterministic link id, got %s", link.ID)
	}

	enrollment, err := svc.SubmitEnrollment(ctx, SubmitEnrollmentRequest{
		StudentName: "Ravi",
		Email:       "ravi@example.com",
		CourseID:    "course-456",
		Code:        "guru10",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if enrollment.LinkID == nil || *enrollment.LinkID != link.ID {
		t.Fatalf("expected attribution to %s, got %v", link.ID, enrollment.LinkID)
	}
}

func TestSubmitEnrollmentIgnoresInactiveLink(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateLink(ctx, CreateLinkRequest{Code: "old", Name: "Retired"}); err != nil {
		t.Fatalf("create link: %v", err)
	}

	enrollment, err := svc.SubmitEnrollment(ctx, SubmitEnrollmentRequest{
		StudentName: "Meena",
		Email:       "meena@example.com",
		CourseID:    "course-789",
		Code:        "old",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if enrollment.LinkID != nil {
		t.Fatal("expected inactive code to yield nil attribution")
	}
}

func TestSubmitEnrollmentValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SubmitEnrollment(context.Background(), SubmitEnrollmentRequest{
		StudentName: "Asha",
		Email:       "not-an-email",
		CourseID:    "course-123",
	})
	if err == nil {
		t.Fatal("expected validation error for malformed email")
	}
}

func TestUpdateEnrollmentStatusClosedSet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	enrollment, err := svc.SubmitEnrollment(ctx, SubmitEnrollmentRequest{
		StudentName: "Asha",
		Email:       "asha@example.com",
		CourseID:    "course-123",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := svc.UpdateEnrollmentStatus(ctx, enrollment.ID, StatusContacted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != StatusContacted {
		t.Fatalf("expected contacted, got %s", updated.Status)
	}

	if _, err := svc.UpdateEnrollmentStatus(ctx, enrollment.ID, EnrollmentStatus("ghosted")); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}
	if _, err := svc.UpdateEnrollmentStatus(ctx, uuid.Nil, StatusApproved); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("expected ErrIDRequired, got %v", err)
	}
}

func TestCreateLinkRejectsDuplicateCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateLink(ctx, CreateLinkRequest{Code: "diwali", Name: "Diwali", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateLink(ctx, CreateLinkRequest{Code: "DIWALI", Name: "Other"}); !errors.Is(err, ErrCodeExists) {
		t.Fatalf("expected ErrCodeExists, got %v", err)
	}
}

func TestStatsCountVisitsAndEnrollments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateLink(ctx, CreateLinkRequest{Code: "fair", Name: "School Fair", IsActive: true}); err != nil {
		t.Fatalf("create link: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.RecordVisit(ctx, "fair", "/courses"); err != nil {
			t.Fatalf("record visit: %v", err)
		}
	}
	// unknown code visits are dropped silently
	if err := svc.RecordVisit(ctx, "bogus", "/"); err != nil {
		t.Fatalf("record bogus visit: %v", err)
	}

	if _, err := svc.SubmitEnrollment(ctx, SubmitEnrollmentRequest{
		StudentName: "Kiran",
		Email:       "kiran@example.com",
		CourseID:    "course-123",
		Code:        "fair",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected stats for one link, got %d", len(stats))
	}
	if stats[0].Visits != 3 || stats[0].Enrollments != 1 {
		t.Fatalf("unexpected counters %+v", stats[0])
	}
}

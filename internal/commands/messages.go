package commands

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/landing"
	"github.com/gurukulhq/gurukul/internal/referral"
)

// SubmitEnrollmentCommand creates a pending enrollment from the public site.
type SubmitEnrollmentCommand struct {
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	CourseID    string `json:"course_id"`
	Code        string `json:"code,omitempty"`
}

func (SubmitEnrollmentCommand) Type() string { return "gurukul.referral.submit_enrollment" }

func (c SubmitEnrollmentCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.StudentName, validation.Required),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.CourseID, validation.Required),
	)
}

// NewSubmitEnrollmentHandler wires the enrollment command to the referral service.
func NewSubmitEnrollmentHandler(svc referral.Service, opts ...HandlerOption[SubmitEnrollmentCommand]) *Handler[SubmitEnrollmentCommand] {
	return NewHandler[SubmitEnrollmentCommand](func(ctx context.Context, msg SubmitEnrollmentCommand) error {
		_, err := svc.SubmitEnrollment(ctx, referral.SubmitEnrollmentRequest{
			StudentName: msg.StudentName,
			Email:       msg.Email,
			Phone:       msg.Phone,
			CourseID:    msg.CourseID,
			Code:        msg.Code,
		})
		return err
	}, opts...)
}

// GenerateLandingCommand runs the step-six generation call on a wizard.
type GenerateLandingCommand struct {
	Form landing.Params `json:"form"`
}

func (GenerateLandingCommand) Type() string { return "gurukul.landing.generate" }

func (c GenerateLandingCommand) Validate() error {
	return validation.ValidateStruct(&c.Form,
		validation.Field(&c.Form.CourseName, validation.Required),
		validation.Field(&c.Form.CourseDescription, validation.Required),
		validation.Field(&c.Form.Audience, validation.Required),
		validation.Field(&c.Form.Tone, validation.Required),
	)
}

// NewGenerateLandingHandler drives a wizard through form submission and generation.
func NewGenerateLandingHandler(wizard *landing.Wizard, opts ...HandlerOption[GenerateLandingCommand]) *Handler[GenerateLandingCommand] {
	return NewHandler[GenerateLandingCommand](func(ctx context.Context, msg GenerateLandingCommand) error {
		if err := wizard.SetForm(msg.Form); err != nil {
			return err
		}
		return wizard.Next(ctx)
	}, opts...)
}

// PublishLandingCommand toggles a saved page's publication status.
type PublishLandingCommand struct {
	PageID uuid.UUID      `json:"page_id"`
	Status landing.Status `json:"status"`
}

func (PublishLandingCommand) Type() string { return "gurukul.landing.publish" }

func (c PublishLandingCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PageID, requiredUUID),
		validation.Field(&c.Status, validation.Required, validation.In(landing.StatusDraft, landing.StatusPublished)),
	)
}

// requiredUUID rejects the zero UUID, which ozzo's Required rule treats as a
// non-empty 16-byte array.
var requiredUUID = validation.By(func(value any) error {
	if id, ok := value.(uuid.UUID); !ok || id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
})

// NewPublishLandingHandler wires status toggling to the landing service.
func NewPublishLandingHandler(svc landing.Service, opts ...HandlerOption[PublishLandingCommand]) *Handler[PublishLandingCommand] {
	return NewHandler[PublishLandingCommand](func(ctx context.Context, msg PublishLandingCommand) error {
		_, err := svc.SetStatus(ctx, msg.PageID, msg.Status)
		return err
	}, opts...)
}

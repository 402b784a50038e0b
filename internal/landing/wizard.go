package landing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gurukulhq/gurukul/internal/generator"
	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

// State is the wizard position.
type State int

const (
	StateClosed State = iota
	StateStep1
	StateStep2
	StateStep3
	StateStep4
	StateStep5
	StateStep6
	StateGenerating
	StatePreview
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateStep1, StateStep2, StateStep3, StateStep4, StateStep5, StateStep6:
		return "step" + strconv.Itoa(int(s))
	case StateGenerating:
		return "generating"
	case StatePreview:
		return "preview"
	default:
		return "unknown"
	}
}

var (
	ErrWizardClosed       = errors.New("landing: wizard is not open")
	ErrNotInPreview       = errors.New("landing: wizard is not in preview")
	ErrGenerationInFlight = errors.New("landing: a generation is already in flight")
	ErrUnknownField       = errors.New("landing: unknown content field")
)

// Wizard drives the six-step landing page flow. One wizard instance serves
// one admin session; methods are safe for concurrent calls.
type Wizard struct {
	mu         sync.Mutex
	state      State
	form       Params
	snapshot   Params
	content    *Content
	generating bool

	client generator.Client
	pages  Service
	logger interfaces.Logger
}

// WizardOption configures the wizard.
type WizardOption func(*Wizard)

// WithWizardLogger injects the module logger.
func WithWizardLogger(logger interfaces.Logger) WizardOption {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWizard builds a closed wizard over the generation client and page service.
func NewWizard(client generator.Client, pages Service, opts ...WizardOption) *Wizard {
	w := &Wizard{
		state:  StateClosed,
		client: client,
		pages:  pages,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open starts a fresh run at step one. Any previous state is discarded.
func (w *Wizard) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
	w.state = StateStep1
}

// Close abandons the run. All entered data is discarded.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *Wizard) reset() {
	w.state = StateClosed
	w.form = Params{}
	w.snapshot = Params{}
	w.content = nil
	w.generating = false
}

// State reports the current wizard position.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Form returns a copy of the accumulated form.
func (w *Wizard) Form() Params {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Content returns the generated content while in preview, nil otherwise.
func (w *Wizard) Content() *Content {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.content == nil {
		return nil
	}
	copied := *w.content
	return &copied
}

// SetForm merges the supplied form into the wizard. Only fields belonging to
// the current or earlier steps are meaningful; later-step fields are stored
// but not validated until their step is reached.
func (w *Wizard) SetForm(form Params) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state < StateStep1 || w.state > StateStep6 {
		return ErrWizardClosed
	}
	w.form = form
	return nil
}

// Next validates the current step. On success the wizard advances by one
// step; at step six it performs the generation call instead. On validation
// failure the step is unchanged and the error describes the missing fields.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	if w.state == StateGenerating {
		w.mu.Unlock()
		return ErrGenerationInFlight
	}
	if w.state < StateStep1 || w.state > StateStep6 {
		w.mu.Unlock()
		return ErrWizardClosed
	}
	step := w.state
	form := w.form
	w.mu.Unlock()

	if err := validateStep(form, step); err != nil {
		return err
	}

	if step < StateStep6 {
		w.mu.Lock()
		// re-check: another goroutine may have closed or advanced
		if w.state == step {
			w.state = step + 1
		}
		w.mu.Unlock()
		return nil
	}

	return w.generate(ctx, form)
}

// Regenerate re-invokes the generation call with the snapshot captured when
// the preview was first produced. Edits made through EditField do not feed
// back into the prompt.
func (w *Wizard) Regenerate(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StatePreview {
		w.mu.Unlock()
		return ErrNotInPreview
	}
	snapshot := w.snapshot
	w.mu.Unlock()

	return w.generate(ctx, snapshot)
}

func (w *Wizard) generate(ctx context.Context, form Params) error {
	w.mu.Lock()
	if w.generating {
		w.mu.Unlock()
		return ErrGenerationInFlight
	}
	w.generating = true
	prior := w.state
	w.state = StateGenerating
	w.mu.Unlock()

	content, err := w.invoke(ctx, form)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.generating = false
	if w.state == StateClosed {
		// closed mid-flight, discard the result
		return nil
	}
	if err != nil {
		w.state = prior
		w.logger.Error("generation failed", "error", err)
		return err
	}
	w.state = StatePreview
	w.snapshot = form
	w.content = content
	return nil
}

func (w *Wizard) invoke(ctx context.Context, form Params) (*Content, error) {
	raw, err := w.client.Generate(ctx, generator.Request{
		Instructions: generationInstructions,
		Prompt:       buildPrompt(form),
		SchemaName:   "landing_content",
		Schema:       ContentSchemaMap(),
	})
	if err != nil {
		return nil, err
	}
	return ParseContent(raw.Raw)
}

// EditField replaces one language variant of a named content field while in
// preview. Paths address sections, e.g. "hero.headline", "faq.0.answer",
// "benefits.2".
func (w *Wizard) EditField(path, locale, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StatePreview || w.content == nil {
		return ErrNotInPreview
	}
	field, err := fieldPointer(w.content, path)
	if err != nil {
		return err
	}
	field.Set(locale, value)
	return nil
}

// SaveDraft persists the previewed page as a draft and closes the wizard.
func (w *Wizard) SaveDraft(ctx context.Context) (*Page, error) {
	return w.save(ctx, StatusDraft)
}

// Publish persists the previewed page as published and closes the wizard.
func (w *Wizard) Publish(ctx context.Context) (*Page, error) {
	return w.save(ctx, StatusPublished)
}

func (w *Wizard) save(ctx context.Context, status Status) (*Page, error) {
	w.mu.Lock()
	if w.state != StatePreview || w.content == nil {
		w.mu.Unlock()
		return nil, ErrNotInPreview
	}
	req := SaveRequest{
		Status:  status,
		Params:  w.snapshot,
		Content: *w.content,
	}
	w.mu.Unlock()

	page, err := w.pages.Save(ctx, req)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.reset()
	w.mu.Unlock()
	return page, nil
}

// validateStep checks required-field presence only.
func validateStep(p Params, step State) error {
	switch step {
	case StateStep1:
		return validation.ValidateStruct(&p,
			validation.Field(&p.CourseName, validation.Required),
			validation.Field(&p.CourseDescription, validation.Required),
		)
	case StateStep2:
		return validation.ValidateStruct(&p,
			validation.Field(&p.Audience, validation.Required),
			validation.Field(&p.AgeRange, validation.Required),
		)
	case StateStep3:
		return validation.ValidateStruct(&p,
			validation.Field(&p.Duration, validation.Required),
			validation.Field(&p.Schedule, validation.Required),
		)
	case StateStep4:
		return validation.ValidateStruct(&p,
			validation.Field(&p.PricingBatches, validation.Required),
		)
	case StateStep5:
		return validation.ValidateStruct(&p,
			validation.Field(&p.TrustSignals, validation.Required),
		)
	case StateStep6:
		return validation.ValidateStruct(&p,
			validation.Field(&p.Tone, validation.Required),
		)
	default:
		return nil
	}
}

const generationInstructions = "You write marketing copy for an educational institution. " +
	"Respond with a single JSON object matching the provided schema. " +
	"Text fields may be either a plain string or an object keyed by language code (en, hi, sa)."

func buildPrompt(p Params) string {
	payload, err := json.Marshal(p)
	if err != nil {
		payload = []byte("{}")
	}
	return fmt.Sprintf("Generate landing page copy for the following course:\n%s", payload)
}

func fieldPointer(c *Content, path string) (*i18n.Text, error) {
	parts := strings.Split(strings.TrimSpace(path), ".")
	switch parts[0] {
	case "hero":
		if len(parts) == 2 {
			switch parts[1] {
			case "headline":
				return &c.Hero.Headline, nil
			case "subheadline":
				return &c.Hero.Subheadline, nil
			}
		}
	case "about":
		if len(parts) == 1 {
			return &c.About, nil
		}
	case "benefits":
		if len(parts) == 2 {
			if idx, err := strconv.Atoi(parts[1]); err == nil && idx >= 0 && idx < len(c.Benefits) {
				return &c.Benefits[idx], nil
			}
		}
	case "curriculum":
		if len(parts) == 2 {
			if idx, err := strconv.Atoi(parts[1]); err == nil && idx >= 0 && idx < len(c.Curriculum) {
				return &c.Curriculum[idx], nil
			}
		}
	case "pricing":
		if len(parts) == 2 {
			switch parts[1] {
			case "headline":
				return &c.Pricing.Headline, nil
			case "note":
				return &c.Pricing.Note, nil
			}
		}
	case "faq":
		if len(parts) == 3 {
			if idx, err := strconv.Atoi(parts[1]); err == nil && idx >= 0 && idx < len(c.FAQ) {
				switch parts[2] {
				case "question":
					return &c.FAQ[idx].Question, nil
				case "answer":
					return &c.FAQ[idx].Answer, nil
				}
			}
		}
	case "cta":
		if len(parts) == 2 {
			switch parts[1] {
			case "label":
				return &c.CTA.Label, nil
			case "note":
				return &c.CTA.Note, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
}

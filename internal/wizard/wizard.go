// Package wizard implements the claim submission flow: step gating,
// navigation, photo attachment and final claim assembly.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"autoClaims/internal/domain"
	"autoClaims/internal/eligibility"
	"autoClaims/internal/photo"
	"autoClaims/pkg/e"
)

const (
	// AutoAdvanceDelay is how long the client keeps the accepted photo on
	// screen before moving to the next angle.
	AutoAdvanceDelay = 500 * time.Millisecond

	ClaimNumberPrefix = "CLM-"
	// PlaceholderClaimNumber is shown when a confirmation has no number.
	PlaceholderClaimNumber = "CLM-XXXXXXXX"
)

// ClaimCreator persists a submitted claim.
type ClaimCreator interface {
	Create(ctx context.Context, in domain.ClaimInsert) (*domain.Claim, error)
}

type Flow struct {
	eval *eligibility.Evaluator
	span time.Duration
}

func New(eval *eligibility.Evaluator, span time.Duration) *Flow {
	if eval == nil {
		eval = eligibility.NewEvaluator(0, nil)
	}
	if span <= 0 {
		span = photo.SessionSpan
	}
	return &Flow{eval: eval, span: span}
}

// NewClaimNumber returns CLM- followed by a ULID.
func NewClaimNumber() string {
	return ClaimNumberPrefix + ulid.Make().String()
}

// NewSession starts a wizard on the info step with a fresh claim number.
func (f *Flow) NewSession() *domain.WizardSession {
	now := f.eval.Now().UTC()
	return &domain.WizardSession{
		ID:          uuid.New(),
		ClaimNumber: NewClaimNumber(),
		Step:        domain.StepInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Check returns nil when the current step allows forward navigation, or the
// reason it does not.
func (f *Flow) Check(s *domain.WizardSession) error {
	return f.checkStep(s, s.Step)
}

func (f *Flow) CanProceed(s *domain.WizardSession) bool {
	return f.Check(s) == nil
}

func (f *Flow) checkStep(s *domain.WizardSession, step domain.WizardStep) error {
	form := &s.Form

	switch step {
	case domain.StepInfo:
		if form.AccidentDatetime.IsZero() || blank(form.AccidentDescription) || blank(form.PolicyNumber) {
			return fmt.Errorf("%s: %w", step, e.ErrIncompleteStep)
		}
		if f.eval.InFuture(form.AccidentDatetime) {
			return fmt.Errorf("%s: %w", step, e.ErrAccidentInFuture)
		}
		if !f.eval.WithinDeadline(form.AccidentDatetime) {
			return fmt.Errorf("%s: %w", step, e.ErrDeadlinePassed)
		}
	case domain.StepVehicle:
		if blank(form.VehicleMake) || blank(form.VehicleModel) || blank(form.VehiclePlate) {
			return fmt.Errorf("%s: %w", step, e.ErrIncompleteStep)
		}
	case domain.StepContact:
		if blank(form.UserName) || blank(form.ContactEmail) || blank(form.ContactPhone) {
			return fmt.Errorf("%s: %w", step, e.ErrIncompleteStep)
		}
	case domain.StepPhotosFront, domain.StepPhotosRear, domain.StepPhotosLeft, domain.StepPhotosRight:
		return nil
	case domain.StepReview:
		if !s.Photos.Complete() {
			return fmt.Errorf("%s: %w", step, e.ErrPhotosMissing)
		}
	default:
		return fmt.Errorf("unknown step %q: %w", step, e.ErrInvalidState)
	}
	return nil
}

// Next moves forward one step when the current step allows it. Review has
// no next step; it ends with Submit.
func (f *Flow) Next(s *domain.WizardSession) error {
	if err := f.mutable(s); err != nil {
		return err
	}
	if err := f.Check(s); err != nil {
		return err
	}
	i := s.Step.Number()
	if i >= len(domain.WizardSteps) {
		return fmt.Errorf("next from %s: %w", s.Step, e.ErrInvalidState)
	}
	f.moveTo(s, domain.WizardSteps[i])
	return nil
}

func (f *Flow) Back(s *domain.WizardSession) error {
	if err := f.mutable(s); err != nil {
		return err
	}
	i := s.Step.Number()
	if i <= 1 {
		return fmt.Errorf("back from %s: %w", s.Step, e.ErrInvalidState)
	}
	f.moveTo(s, domain.WizardSteps[i-2])
	return nil
}

func (f *Flow) Update(s *domain.WizardSession, p domain.FormPatch) error {
	if err := f.mutable(s); err != nil {
		return err
	}
	s.Form.Apply(p)
	s.UpdatedAt = f.eval.Now().UTC()
	return nil
}

// AttachPhoto stores an uploaded photo in its angle slot. When the session
// is on that angle's step it advances to the next photo step still missing
// a photo, or to review, and returns the new step.
func (f *Flow) AttachPhoto(s *domain.WizardSession, p *domain.CapturedPhoto) (domain.WizardStep, error) {
	if err := f.mutable(s); err != nil {
		return s.Step, err
	}
	if p == nil || p.URL == "" {
		return s.Step, fmt.Errorf("attach photo without url: %w", e.ErrInvalidInput)
	}
	if _, ok := domain.ParseAngle(string(p.Angle)); !ok {
		return s.Step, fmt.Errorf("attach photo angle %q: %w", p.Angle, e.ErrInvalidInput)
	}

	s.Photos.Put(p.Angle, p)
	if s.Step == domain.PhotoStep(p.Angle) {
		f.moveTo(s, nextOpenStep(s))
	} else {
		s.UpdatedAt = f.eval.Now().UTC()
	}
	return s.Step, nil
}

// DiscardPhoto clears an angle for a retake and returns to its step.
func (f *Flow) DiscardPhoto(s *domain.WizardSession, a domain.Angle) error {
	if err := f.mutable(s); err != nil {
		return err
	}
	if a.Index() < 0 {
		return fmt.Errorf("discard photo angle %q: %w", a, e.ErrInvalidInput)
	}
	s.Photos.Remove(a)
	f.moveTo(s, domain.PhotoStep(a))
	return nil
}

// BuildClaim assembles the pending claim record. Every form step is checked
// again, then the photo set must be complete and coherent.
func (f *Flow) BuildClaim(s *domain.WizardSession) (domain.ClaimInsert, error) {
	for _, step := range []domain.WizardStep{domain.StepInfo, domain.StepVehicle, domain.StepContact} {
		if err := f.checkStep(s, step); err != nil {
			return domain.ClaimInsert{}, err
		}
	}
	if !s.Photos.Complete() {
		return domain.ClaimInsert{}, e.ErrPhotosMissing
	}
	if !photo.SessionValid(s.Photos.All(), f.span) {
		return domain.ClaimInsert{}, e.ErrSessionIncoherent
	}

	form := s.Form
	return domain.ClaimInsert{
		ClaimNumber:         s.ClaimNumber,
		UserName:            strings.TrimSpace(form.UserName),
		PolicyNumber:        strings.TrimSpace(form.PolicyNumber),
		ContactEmail:        strings.TrimSpace(form.ContactEmail),
		ContactPhone:        strings.TrimSpace(form.ContactPhone),
		AccidentDatetime:    form.AccidentDatetime.UTC(),
		SubmissionDatetime:  f.eval.Now().UTC(),
		VehiclePlate:        strings.TrimSpace(form.VehiclePlate),
		VehicleMake:         strings.TrimSpace(form.VehicleMake),
		VehicleModel:        strings.TrimSpace(form.VehicleModel),
		AccidentDescription: strings.TrimSpace(form.AccidentDescription),
		Photos:              s.Photos.URLs(),
		Status:              domain.ClaimPending,
	}, nil
}

// Submit creates the claim from the review step. On any failure the
// session is left on review so the claimant can retry.
func (f *Flow) Submit(ctx context.Context, s *domain.WizardSession, store ClaimCreator) (*domain.Claim, error) {
	if err := f.mutable(s); err != nil {
		return nil, err
	}
	if s.Step != domain.StepReview {
		return nil, fmt.Errorf("submit from %s: %w", s.Step, e.ErrInvalidState)
	}

	in, err := f.BuildClaim(s)
	if err != nil {
		return nil, err
	}

	claim, err := store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.Submitted = true
	s.ClaimID = claim.ID
	s.UpdatedAt = f.eval.Now().UTC()
	return claim, nil
}

func (f *Flow) View(s *domain.WizardSession) domain.SessionView {
	v := domain.SessionView{
		ID:          s.ID,
		ClaimNumber: s.ClaimNumber,
		Step:        s.Step,
		StepNumber:  s.Step.Number(),
		StepCount:   len(domain.WizardSteps),
		Form:        s.Form,
		Photos:      s.Photos,
		CanProceed:  !s.Submitted && f.CanProceed(s),
		Submitted:   s.Submitted,
	}
	if !s.Form.AccidentDatetime.IsZero() {
		v.WithinDeadline = f.eval.WithinDeadline(s.Form.AccidentDatetime)
		v.TimeRemaining = f.eval.TimeRemaining(s.Form.AccidentDatetime)
	}
	return v
}

func (f *Flow) mutable(s *domain.WizardSession) error {
	if s.Submitted {
		return fmt.Errorf("session %s already submitted: %w", s.ID, e.ErrInvalidState)
	}
	return nil
}

func (f *Flow) moveTo(s *domain.WizardSession, step domain.WizardStep) {
	s.Step = step
	s.UpdatedAt = f.eval.Now().UTC()
}

// nextOpenStep is the first step after the current one that is a photo step
// without a photo, or review.
func nextOpenStep(s *domain.WizardSession) domain.WizardStep {
	for _, step := range domain.WizardSteps[s.Step.Number():] {
		a, ok := step.Angle()
		if !ok || s.Photos.Get(a) == nil {
			return step
		}
	}
	return domain.StepReview
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

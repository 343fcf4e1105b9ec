package wizard_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoClaims/internal/domain"
	"autoClaims/internal/eligibility"
	"autoClaims/internal/wizard"
	"autoClaims/pkg/e"
)

type fakeCreator struct {
	calls []domain.ClaimInsert
	err   error
}

func (c *fakeCreator) Create(_ context.Context, in domain.ClaimInsert) (*domain.Claim, error) {
	c.calls = append(c.calls, in)
	if c.err != nil {
		return nil, c.err
	}
	return &domain.Claim{ID: uuid.New(), ClaimNumber: in.ClaimNumber, Status: in.Status, Photos: in.Photos}, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

var accident = time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC)

func newFlow(at time.Time) (*wizard.Flow, *clock) {
	c := &clock{t: at}
	return wizard.New(eligibility.NewEvaluator(0, c.now), 0), c
}

func str(s string) *string { return &s }

func fillForm(t *testing.T, f *wizard.Flow, s *domain.WizardSession) {
	t.Helper()
	require.NoError(t, f.Update(s, domain.FormPatch{
		UserName:            str("Amina Hassan"),
		ContactEmail:        str("amina@example.com"),
		ContactPhone:        str("+254700000000"),
		PolicyNumber:        str("POL-123"),
		AccidentDatetime:    &accident,
		VehiclePlate:        str("KDA 123A"),
		VehicleMake:         str("Toyota"),
		VehicleModel:        str("Corolla"),
		AccidentDescription: str("Rear-ended at a junction"),
	}))
}

func photoAt(a domain.Angle, ts time.Time) *domain.CapturedPhoto {
	return &domain.CapturedPhoto{Angle: a, Timestamp: ts, URL: "https://cdn.example.com/" + string(a) + ".jpg"}
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	a := f.NewSession()
	b := f.NewSession()

	assert.Equal(t, domain.StepInfo, a.Step)
	assert.True(t, strings.HasPrefix(a.ClaimNumber, wizard.ClaimNumberPrefix))
	assert.Len(t, a.ClaimNumber, len(wizard.ClaimNumberPrefix)+26)
	assert.NotEqual(t, a.ClaimNumber, b.ClaimNumber)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCheck_PerStep(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	s := f.NewSession()

	assert.ErrorIs(t, f.Check(s), e.ErrIncompleteStep)

	require.NoError(t, f.Update(s, domain.FormPatch{
		AccidentDatetime:    &accident,
		AccidentDescription: str("hit a pole"),
		PolicyNumber:        str("  "),
	}))
	assert.ErrorIs(t, f.Check(s), e.ErrIncompleteStep)

	require.NoError(t, f.Update(s, domain.FormPatch{PolicyNumber: str("POL-1")}))
	assert.NoError(t, f.Check(s))
	require.NoError(t, f.Next(s))
	assert.Equal(t, domain.StepVehicle, s.Step)

	assert.ErrorIs(t, f.Next(s), e.ErrIncompleteStep)
	require.NoError(t, f.Update(s, domain.FormPatch{VehicleMake: str("Mazda"), VehicleModel: str("3"), VehiclePlate: str("X1")}))
	require.NoError(t, f.Next(s))

	assert.False(t, f.CanProceed(s))
	require.NoError(t, f.Update(s, domain.FormPatch{UserName: str("A"), ContactEmail: str("a@b.co"), ContactPhone: str("1")}))
	require.NoError(t, f.Next(s))
	assert.Equal(t, domain.StepPhotosFront, s.Step)

	// photo steps never block
	for _, want := range []domain.WizardStep{domain.StepPhotosRear, domain.StepPhotosLeft, domain.StepPhotosRight, domain.StepReview} {
		require.NoError(t, f.Next(s))
		assert.Equal(t, want, s.Step)
	}

	assert.ErrorIs(t, f.Check(s), e.ErrPhotosMissing)
	assert.ErrorIs(t, f.Next(s), e.ErrPhotosMissing)
}

func TestCheck_FutureAccidentRejected(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(-time.Minute))
	s := f.NewSession()
	fillForm(t, f, s)

	assert.ErrorIs(t, f.Next(s), e.ErrAccidentInFuture)
	assert.Equal(t, domain.StepInfo, s.Step)
}

func TestBack(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	s := f.NewSession()

	assert.ErrorIs(t, f.Back(s), e.ErrInvalidState)

	fillForm(t, f, s)
	require.NoError(t, f.Next(s))
	require.NoError(t, f.Back(s))
	assert.Equal(t, domain.StepInfo, s.Step)
}

func TestAttachPhoto_AutoAdvances(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	s := f.NewSession()
	s.Step = domain.StepPhotosFront

	next, err := f.AttachPhoto(s, photoAt(domain.AngleFront, accident))
	require.NoError(t, err)
	assert.Equal(t, domain.StepPhotosRear, next)

	// attaching an angle that is not the current step keeps position
	next, err = f.AttachPhoto(s, photoAt(domain.AngleRight, accident))
	require.NoError(t, err)
	assert.Equal(t, domain.StepPhotosRear, next)
	assert.NotNil(t, s.Photos.Get(domain.AngleRight))

	_, err = f.AttachPhoto(s, &domain.CapturedPhoto{Angle: domain.AngleRear})
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	s.Step = domain.StepPhotosRight
	next, err = f.AttachPhoto(s, photoAt(domain.AngleRight, accident))
	require.NoError(t, err)
	assert.Equal(t, domain.StepReview, next)
	assert.Equal(t, 500*time.Millisecond, wizard.AutoAdvanceDelay)
}

func TestDiscardPhoto_ReturnsToAngleStep(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	s := f.NewSession()
	s.Step = domain.StepReview
	for _, a := range domain.Angles {
		s.Photos.Put(a, photoAt(a, accident))
	}

	require.NoError(t, f.DiscardPhoto(s, domain.AngleLeft))
	assert.Nil(t, s.Photos.Get(domain.AngleLeft))
	assert.Equal(t, domain.StepPhotosLeft, s.Step)

	assert.ErrorIs(t, f.DiscardPhoto(s, domain.Angle("roof")), e.ErrInvalidInput)
}

func TestRetakeFromReview_ReturnsToReview(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	s := f.NewSession()
	s.Step = domain.StepReview
	for _, a := range domain.Angles {
		s.Photos.Put(a, photoAt(a, accident))
	}

	require.NoError(t, f.DiscardPhoto(s, domain.AngleFront))
	next, err := f.AttachPhoto(s, photoAt(domain.AngleFront, accident.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, domain.StepReview, next)

	// with two gaps the flow stops at the next empty angle
	s.Photos.Remove(domain.AngleRight)
	require.NoError(t, f.DiscardPhoto(s, domain.AngleRear))
	next, err = f.AttachPhoto(s, photoAt(domain.AngleRear, accident.Add(2*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, domain.StepPhotosRight, next)
}

func reviewSession(t *testing.T, f *wizard.Flow, photoSpan time.Duration) *domain.WizardSession {
	t.Helper()

	s := f.NewSession()
	fillForm(t, f, s)
	start := accident.Add(10 * time.Minute)
	for i, a := range domain.Angles {
		ts := start.Add(time.Duration(i) * photoSpan / 3)
		s.Photos.Put(a, photoAt(a, ts))
	}
	s.Step = domain.StepReview
	return s
}

func TestSubmit_CreatesPendingClaimOnce(t *testing.T) {
	t.Parallel()

	f, clk := newFlow(accident.Add(time.Hour))
	s := reviewSession(t, f, 30*time.Minute)
	store := &fakeCreator{}

	claim, err := f.Submit(context.Background(), s, store)
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	in := store.calls[0]
	assert.Equal(t, domain.ClaimPending, in.Status)
	assert.Equal(t, s.ClaimNumber, in.ClaimNumber)
	assert.Equal(t, []string{
		"https://cdn.example.com/front.jpg",
		"https://cdn.example.com/rear.jpg",
		"https://cdn.example.com/left.jpg",
		"https://cdn.example.com/right.jpg",
	}, in.Photos.URLs())
	assert.Equal(t, clk.t, in.SubmissionDatetime)
	assert.True(t, in.AccidentDatetime.Before(in.SubmissionDatetime))

	assert.True(t, s.Submitted)
	assert.Equal(t, claim.ID, s.ClaimID)

	_, err = f.Submit(context.Background(), s, store)
	assert.ErrorIs(t, err, e.ErrInvalidState)
	assert.Len(t, store.calls, 1)
}

func TestSubmit_StoreFailureStaysOnReview(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	s := reviewSession(t, f, time.Minute)
	store := &fakeCreator{err: errors.New("connection reset")}

	_, err := f.Submit(context.Background(), s, store)
	require.Error(t, err)
	assert.Equal(t, domain.StepReview, s.Step)
	assert.False(t, s.Submitted)

	store.err = nil
	_, err = f.Submit(context.Background(), s, store)
	require.NoError(t, err)
	assert.Len(t, store.calls, 2)
}

func TestSubmit_RejectsIncoherentOrMissingPhotos(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(2 * time.Hour))
	store := &fakeCreator{}

	s := reviewSession(t, f, 31*time.Minute)
	_, err := f.Submit(context.Background(), s, store)
	assert.ErrorIs(t, err, e.ErrSessionIncoherent)

	s = reviewSession(t, f, time.Minute)
	s.Photos.Remove(domain.AngleRear)
	_, err = f.Submit(context.Background(), s, store)
	assert.ErrorIs(t, err, e.ErrPhotosMissing)

	assert.Empty(t, store.calls)
}

func TestDeadlineExceeded_BlocksAtInfoWithoutStoreCalls(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(25 * time.Hour))
	store := &fakeCreator{}
	s := f.NewSession()
	fillForm(t, f, s)

	err := f.Next(s)
	require.ErrorIs(t, err, e.ErrDeadlinePassed)
	assert.Equal(t, domain.StepInfo, s.Step)

	v := f.View(s)
	assert.False(t, v.CanProceed)
	assert.False(t, v.WithinDeadline)
	assert.Equal(t, eligibility.DeadlinePassed, v.TimeRemaining)

	_, err = f.Submit(context.Background(), s, store)
	assert.ErrorIs(t, err, e.ErrInvalidState)
	assert.Empty(t, store.calls)
}

func TestView(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(2*time.Hour + 30*time.Minute))
	s := f.NewSession()

	v := f.View(s)
	assert.Equal(t, 1, v.StepNumber)
	assert.Equal(t, 8, v.StepCount)
	assert.Empty(t, v.TimeRemaining)

	fillForm(t, f, s)
	v = f.View(s)
	assert.True(t, v.CanProceed)
	assert.True(t, v.WithinDeadline)
	assert.Equal(t, "21h 30m remaining", v.TimeRemaining)
}

func TestSubmittedSessionIsFrozen(t *testing.T) {
	t.Parallel()

	f, _ := newFlow(accident.Add(time.Hour))
	s := reviewSession(t, f, time.Minute)
	_, err := f.Submit(context.Background(), s, &fakeCreator{})
	require.NoError(t, err)

	assert.ErrorIs(t, f.Back(s), e.ErrInvalidState)
	assert.ErrorIs(t, f.Update(s, domain.FormPatch{UserName: str("x")}), e.ErrInvalidState)
	assert.ErrorIs(t, f.DiscardPhoto(s, domain.AngleFront), e.ErrInvalidState)
	assert.False(t, f.View(s).CanProceed)
}

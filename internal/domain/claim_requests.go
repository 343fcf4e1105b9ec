package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReviewRequest struct {
	Notes string `json:"notes" validate:"max=4000"`
}

type ListClaimsRequest struct {
	Status string `query:"status"`
	Query  string `query:"q"`
}

type ListClaimsResponse struct {
	Claims []*Claim `json:"claims"`
	Status string   `json:"status"`
	Total  int      `json:"total"`
}

type EligibilityResponse struct {
	WithinDeadline bool   `json:"within_deadline"`
	TimeRemaining  string `json:"time_remaining"`
}

// SessionView is what the wizard UI renders for the current step.
type SessionView struct {
	ID             uuid.UUID   `json:"id"`
	ClaimNumber    string      `json:"claim_number"`
	Step           WizardStep  `json:"step"`
	StepNumber     int         `json:"step_number"`
	StepCount      int         `json:"step_count"`
	Form           FormData    `json:"form"`
	Photos         CapturedSet `json:"photos"`
	CanProceed     bool        `json:"can_proceed"`
	WithinDeadline bool        `json:"within_deadline"`
	TimeRemaining  string      `json:"time_remaining,omitempty"`
	Submitted      bool        `json:"submitted"`
}

type CaptureResponse struct {
	Photo         *CapturedPhoto `json:"photo"`
	Preview       string         `json:"preview"`
	NextStep      WizardStep     `json:"next_step"`
	AdvanceAfter  int64          `json:"advance_after_ms"`
	Instructions  []string       `json:"instructions"`
	AngleName     string         `json:"angle_name"`
	PhotoPosition int            `json:"photo_position"`
}

type SubmitResponse struct {
	ID          uuid.UUID `json:"id"`
	ClaimNumber string    `json:"claim_number"`
}

type InstructionsResponse struct {
	Angle        Angle    `json:"angle"`
	Name         string   `json:"name"`
	Position     int      `json:"position"`
	Instructions []string `json:"instructions"`
}

// CaptureRequest is one frame posted by the claimant's camera.
type CaptureRequest struct {
	Data        []byte
	ContentType string
	DeviceInfo  string
	CapturedAt  time.Time
}

type DashboardResponse struct {
	Claims ListClaimsResponse `json:"claims"`
	Stats  ClaimStats         `json:"stats"`
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimPending, ClaimApproved, ClaimRejected:
		return true
	}
	return false
}

// StatusFilter selects claims by status; the zero value matches every claim.
type StatusFilter struct {
	Status ClaimStatus
}

func (f StatusFilter) All() bool { return f.Status == "" }

func (f StatusFilter) String() string {
	if f.All() {
		return "all"
	}
	return string(f.Status)
}

// ParseStatusFilter accepts "", "all" or one of the persisted statuses.
// Anything else, including the dashboard's legacy "in-progress", is rejected.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return StatusFilter{}, true
	}
	st := ClaimStatus(s)
	if !st.Valid() {
		return StatusFilter{}, false
	}
	return StatusFilter{Status: st}, true
}

type Claim struct {
	ID                  uuid.UUID   `json:"id"`
	ClaimNumber         string      `json:"claim_number"`
	UserName            string      `json:"user_name"`
	PolicyNumber        string      `json:"policy_number"`
	ContactEmail        string      `json:"contact_email"`
	ContactPhone        string      `json:"contact_phone"`
	AccidentDatetime    time.Time   `json:"accident_datetime"`
	SubmissionDatetime  time.Time   `json:"submission_datetime"`
	VehiclePlate        string      `json:"vehicle_plate"`
	VehicleMake         string      `json:"vehicle_make"`
	VehicleModel        string      `json:"vehicle_model"`
	AccidentDescription string      `json:"accident_description"`
	Photos              PhotoSet    `json:"photos"`
	Status              ClaimStatus `json:"status"`
	AdminNotes          string      `json:"admin_notes,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// Matches reports whether q is a case-insensitive substring of the claim
// number, claimant name, vehicle make or vehicle model.
func (c *Claim) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range []string{c.ClaimNumber, c.UserName, c.VehicleMake, c.VehicleModel} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ClaimInsert is the record assembled by the submission flow.
type ClaimInsert struct {
	ClaimNumber         string
	UserName            string
	PolicyNumber        string
	ContactEmail        string
	ContactPhone        string
	AccidentDatetime    time.Time
	SubmissionDatetime  time.Time
	VehiclePlate        string
	VehicleMake         string
	VehicleModel        string
	AccidentDescription string
	Photos              PhotoSet
	Status              ClaimStatus
}

type ClaimStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type WizardStep string

const (
	StepInfo        WizardStep = "info"
	StepVehicle     WizardStep = "vehicle"
	StepContact     WizardStep = "contact"
	StepPhotosFront WizardStep = "photos-front"
	StepPhotosRear  WizardStep = "photos-rear"
	StepPhotosLeft  WizardStep = "photos-left"
	StepPhotosRight WizardStep = "photos-right"
	StepReview      WizardStep = "review"
)

var WizardSteps = []WizardStep{
	StepInfo,
	StepVehicle,
	StepContact,
	StepPhotosFront,
	StepPhotosRear,
	StepPhotosLeft,
	StepPhotosRight,
	StepReview,
}

// Number is the 1-based position shown in the progress header.
func (s WizardStep) Number() int {
	for i, x := range WizardSteps {
		if x == s {
			return i + 1
		}
	}
	return 0
}

// Angle returns the photo angle captured on this step, if any.
func (s WizardStep) Angle() (Angle, bool) {
	switch s {
	case StepPhotosFront:
		return AngleFront, true
	case StepPhotosRear:
		return AngleRear, true
	case StepPhotosLeft:
		return AngleLeft, true
	case StepPhotosRight:
		return AngleRight, true
	}
	return "", false
}

func PhotoStep(a Angle) WizardStep {
	return WizardStep("photos-" + string(a))
}

type FormData struct {
	UserName            string    `json:"user_name"`
	ContactEmail        string    `json:"contact_email"`
	ContactPhone        string    `json:"contact_phone"`
	PolicyNumber        string    `json:"policy_number"`
	AccidentDatetime    time.Time `json:"accident_datetime"`
	VehiclePlate        string    `json:"vehicle_plate"`
	VehicleMake         string    `json:"vehicle_make"`
	VehicleModel        string    `json:"vehicle_model"`
	AccidentDescription string    `json:"accident_description"`
}

// FormPatch carries the fields a client changed; nil fields are left alone.
type FormPatch struct {
	UserName            *string    `json:"user_name" validate:"omitempty,max=200"`
	ContactEmail        *string    `json:"contact_email" validate:"omitempty,email"`
	ContactPhone        *string    `json:"contact_phone" validate:"omitempty,max=32"`
	PolicyNumber        *string    `json:"policy_number" validate:"omitempty,max=64"`
	AccidentDatetime    *time.Time `json:"accident_datetime"`
	VehiclePlate        *string    `json:"vehicle_plate" validate:"omitempty,max=32"`
	VehicleMake         *string    `json:"vehicle_make" validate:"omitempty,max=64"`
	VehicleModel        *string    `json:"vehicle_model" validate:"omitempty,max=64"`
	AccidentDescription *string    `json:"accident_description" validate:"omitempty,max=4000"`
}

func (f *FormData) Apply(p FormPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.UserName, p.UserName)
	set(&f.ContactEmail, p.ContactEmail)
	set(&f.ContactPhone, p.ContactPhone)
	set(&f.PolicyNumber, p.PolicyNumber)
	set(&f.VehiclePlate, p.VehiclePlate)
	set(&f.VehicleMake, p.VehicleMake)
	set(&f.VehicleModel, p.VehicleModel)
	set(&f.AccidentDescription, p.AccidentDescription)
	if p.AccidentDatetime != nil {
		f.AccidentDatetime = p.AccidentDatetime.UTC()
	}
}

// WizardSession is the state of one claimant's submission wizard.
type WizardSession struct {
	ID          uuid.UUID   `json:"id"`
	ClaimNumber string      `json:"claim_number"`
	Step        WizardStep  `json:"step"`
	Form        FormData    `json:"form"`
	Photos      CapturedSet `json:"photos"`
	ClaimID     uuid.UUID   `json:"claim_id,omitempty"`
	Submitted   bool        `json:"submitted"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

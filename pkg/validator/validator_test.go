package validator_test

import (
	"testing"

	"autoClaims/pkg/validator"
)

type reviewInput struct {
	Notes string `validate:"notblank"`
}

func TestValidateStruct_NotBlankAccepts(t *testing.T) {
	t.Parallel()

	if err := validator.ValidateStruct(reviewInput{Notes: "ok"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestValidateStruct_NotBlank(t *testing.T) {
	t.Parallel()

	if err := validator.ValidateStruct(reviewInput{Notes: "   "}); err == nil {
		t.Fatalf("expected whitespace notes to fail")
	}
}

func TestValidateVar_Angle(t *testing.T) {
	t.Parallel()

	if err := validator.ValidateVar("rear", "angle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validator.ValidateVar("roof", "angle"); err == nil {
		t.Fatalf("expected roof to be rejected")
	}
}

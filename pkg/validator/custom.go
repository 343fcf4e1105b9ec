package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("notblank", validateNotBlank)
	validate.RegisterValidation("angle", validateAngle)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateAngle(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "front", "rear", "left", "right":
		return true
	}
	return false
}

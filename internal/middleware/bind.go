package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"autoClaims/pkg/e"
	"autoClaims/pkg/validator"
)

// BindJSON decodes exactly one JSON object from the request body into dst
// and validates it. Failures wrap e.ErrInvalidInput.
func BindJSON[T any](r *http.Request, dst *T) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w: %w", e.ErrInvalidInput, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON: trailing data: %w", e.ErrInvalidInput)
	}

	if err := validator.ValidateStruct(dst); err != nil {
		return fmt.Errorf("%w: %w", e.ErrInvalidInput, err)
	}
	return nil
}

package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
	ErrDeadline        = errors.New("deadline exceeded")
	ErrCanceled        = errors.New("context canceled")
	ErrUniqueViolation = errors.New("unique violation")

	// claim eligibility
	ErrDeadlinePassed   = errors.New("24-hour claim deadline passed")
	ErrAccidentInFuture = errors.New("accident time is in the future")

	// photo validation
	ErrPhotoTooLarge     = errors.New("photo is too large")
	ErrNotAnImage        = errors.New("file is not an image")
	ErrPhotoStale        = errors.New("photo was not taken recently")
	ErrSessionIncoherent = errors.New("photos must be taken in the same session")

	// wizard gating
	ErrIncompleteStep = errors.New("step is incomplete")
	ErrPhotosMissing  = errors.New("all 4 photos are required")
	ErrInvalidState   = errors.New("invalid state for this action")

	// review
	ErrNotesRequired = errors.New("notes are required")
	ErrInvalidStatus = errors.New("invalid claim status")

	// external collaborators
	ErrStoreUnavailable = errors.New("store is not configured")
	ErrUploadFailed     = errors.New("photo upload failed")

	// camera device
	ErrCameraPermission  = errors.New("camera permission denied")
	ErrCameraNotFound    = errors.New("no camera found")
	ErrCameraUnavailable = errors.New("camera unavailable")
)

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
		case "23503", "23514", "22P02":
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, ErrInternal)
}

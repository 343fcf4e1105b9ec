// Package capture drives a single photo-angle capture against a camera
// device: acquire a stream, grab a frame, compress, upload, accept.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"

	"autoClaims/pkg/e"
)

type Facing string

const (
	FacingEnvironment Facing = "environment"
	FacingUser        Facing = "user"
)

type Range struct {
	Ideal int
	Min   int
}

// Constraints describe the video stream a device should open. Audio is
// never requested.
type Constraints struct {
	FacingMode  Facing
	Width       Range
	Height      Range
	AspectRatio float64
}

func DefaultConstraints() Constraints {
	return Constraints{
		FacingMode:  FacingEnvironment,
		Width:       Range{Ideal: 1920, Min: 640},
		Height:      Range{Ideal: 1080, Min: 480},
		AspectRatio: 16.0 / 9.0,
	}
}

// Satisfies reports whether a w x h frame meets the minimum resolution.
func (c Constraints) Satisfies(w, h int) bool {
	return w >= c.Width.Min && h >= c.Height.Min
}

type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is an open video track. Stop must be safe to call more than once.
type Stream interface {
	Frame(ctx context.Context) (image.Image, error)
	Stop()
}

const (
	MsgPermissionDenied = "Camera access denied. Please enable camera permissions in your browser settings."
	MsgNoCamera         = "No camera found on this device."
	MsgCameraFailed     = "Unable to access camera. Please try again."

	MsgCaptureFailed = "Failed to capture photo"
	MsgTooLarge      = "Photo is too large. Please try again."
	MsgStale         = "Photo was not taken recently. Please capture a new one."
	MsgUploadFailed  = "Failed to upload photo. Please try again."
)

// ClassifyDeviceError folds any acquisition error into one of the three
// camera sentinels, keeping the original error in the chain.
func ClassifyDeviceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, e.ErrCameraPermission), errors.Is(err, e.ErrCameraNotFound),
		errors.Is(err, e.ErrCameraUnavailable):
		return err
	}
	return fmt.Errorf("%w: %w", e.ErrCameraUnavailable, err)
}

// Message returns the user-facing text for a capture step error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, e.ErrCameraPermission):
		return MsgPermissionDenied
	case errors.Is(err, e.ErrCameraNotFound):
		return MsgNoCamera
	case errors.Is(err, e.ErrCameraUnavailable):
		return MsgCameraFailed
	case errors.Is(err, e.ErrPhotoTooLarge):
		return MsgTooLarge
	case errors.Is(err, e.ErrPhotoStale):
		return MsgStale
	case errors.Is(err, e.ErrUploadFailed):
		return MsgUploadFailed
	}
	return MsgCaptureFailed
}

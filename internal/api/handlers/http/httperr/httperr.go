// Package httperr maps domain errors to HTTP status codes and client-safe
// messages for every handler package.
package httperr

import (
	"errors"
	"net/http"

	"autoClaims/internal/capture"
	"autoClaims/pkg/e"
)

type rule struct {
	err    error
	status int
	msg    string
}

// Order matters: the first matching sentinel wins.
var rules = []rule{
	{e.ErrStoreUnavailable, http.StatusServiceUnavailable, "storage is temporarily unavailable, please retry"},
	{e.ErrCameraPermission, http.StatusUnprocessableEntity, capture.MsgPermissionDenied},
	{e.ErrCameraNotFound, http.StatusUnprocessableEntity, capture.MsgNoCamera},
	{e.ErrCameraUnavailable, http.StatusUnprocessableEntity, capture.MsgCameraFailed},
	{e.ErrPhotoTooLarge, http.StatusRequestEntityTooLarge, capture.MsgTooLarge},
	{e.ErrNotAnImage, http.StatusUnsupportedMediaType, e.ErrNotAnImage.Error()},
	{e.ErrPhotoStale, http.StatusUnprocessableEntity, capture.MsgStale},
	{e.ErrUploadFailed, http.StatusBadGateway, capture.MsgUploadFailed},
	{e.ErrDeadlinePassed, http.StatusUnprocessableEntity, e.ErrDeadlinePassed.Error()},
	{e.ErrAccidentInFuture, http.StatusUnprocessableEntity, e.ErrAccidentInFuture.Error()},
	{e.ErrIncompleteStep, http.StatusUnprocessableEntity, e.ErrIncompleteStep.Error()},
	{e.ErrPhotosMissing, http.StatusUnprocessableEntity, e.ErrPhotosMissing.Error()},
	{e.ErrSessionIncoherent, http.StatusUnprocessableEntity, e.ErrSessionIncoherent.Error()},
	{e.ErrInvalidState, http.StatusConflict, e.ErrInvalidState.Error()},
	{e.ErrNotesRequired, http.StatusBadRequest, e.ErrNotesRequired.Error()},
	{e.ErrInvalidStatus, http.StatusBadRequest, e.ErrInvalidStatus.Error()},
	{e.ErrNotFound, http.StatusNotFound, "not found"},
	{e.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
	{e.ErrUniqueViolation, http.StatusConflict, "conflict"},
	{e.ErrConflict, http.StatusConflict, "conflict"},
	{e.ErrDeadline, http.StatusGatewayTimeout, "request timed out"},
}

// Status returns the response code and message for err.
func Status(err error) (int, string) {
	for _, r := range rules {
		if errors.Is(err, r.err) {
			return r.status, r.msg
		}
	}
	return http.StatusInternalServerError, "internal error"
}

package types

import (
	"errors"
	"net/http"

	appErr "github.com/recipe-app/api/pkg/errors"
)

// FromAppError converts err into the wire error and the status to send it
// with. Internal failures are reported without their cause.
func FromAppError(err error) (*APIError, int) {
	var e *appErr.AppError
	if !errors.As(err, &e) {
		return &APIError{Code: string(appErr.CodeInternal), Message: "internal server error"}, http.StatusInternalServerError
	}
	status := appErr.HTTPStatus(e.Code)
	if status == http.StatusInternalServerError {
		return &APIError{Code: string(appErr.CodeInternal), Message: "internal server error"}, status
	}
	return &APIError{Code: string(e.Code), Message: e.Message, Fields: e.Fields}, status
}

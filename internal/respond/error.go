package respond

import (
	"net/http"

	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
)

// ErrorCode is the machine-readable code inside an error envelope.
type ErrorCode string

const (
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse is the body shape of every error the core emits.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code and a client-safe message.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error builds a JSON error envelope. The message must already be
// client-safe; internal failure detail never belongs here.
func Error(status int, code ErrorCode, message string) *httpmsg.Response {
	resp, err := JSON(status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
	if err != nil {
		// The envelope is plain strings, so this cannot fail in practice.
		return Text(http.StatusInternalServerError, "internal server error")
	}
	return resp
}

// BadRequest builds the standard 400 envelope.
func BadRequest(message string) *httpmsg.Response {
	return Error(http.StatusBadRequest, ErrCodeBadRequest, message)
}

// NotFound builds the standard 404 envelope.
func NotFound(message string) *httpmsg.Response {
	return Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError builds the generic 500 envelope.
func InternalError() *httpmsg.Response {
	return Error(http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/gin-gonic/gin"
)

// Error codes carried in the envelope.
const (
	CodeValidation         = "validation_error"
	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeConflict           = "conflict"
	CodeNotFound           = "not_found"
	CodeNoResults          = "no_results"
	CodeOffsetOutOfBounds  = "offset_out_of_bounds"
	CodeInternal           = "internal_error"
	internalErrorMessage   = "Internal server error"
	invalidTodoIDMessage   = "Invalid todo ID"
	malformedBodyMessage   = "Malformed JSON body"
	invalidCredentialsText = "Invalid email or password"
)

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Field   string     `json:"field,omitempty"`
	Meta    *ErrorMeta `json:"meta,omitempty"`
}

// ErrorMeta describes the filtered set when a page falls outside it.
type ErrorMeta struct {
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// ErrorEnvelope is {"error": {...}}.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// apiError is an error already shaped for the wire.
type apiError struct {
	status int
	body   ErrorBody
	cause  error
}

func (e *apiError) Error() string { return e.body.Message }
func (e *apiError) Unwrap() error { return e.cause }

func newAPIError(status int, code, message string, cause error) *apiError {
	return &apiError{status: status, body: ErrorBody{Code: code, Message: message}, cause: cause}
}

func badRequest(message, field string) *apiError {
	e := newAPIError(http.StatusBadRequest, CodeBadRequest, message, common.ErrorValidation)
	e.body.Field = field
	return e
}

func unauthorized(message string, cause error) *apiError {
	return newAPIError(http.StatusUnauthorized, CodeUnauthorized, message, cause)
}

// classify maps an error to its status and envelope body. Anything not
// recognised is an internal error whose details stay in the logs.
func classify(err error) (int, ErrorBody) {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.status, ae.body
	}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorBody{Code: CodeValidation, Message: ve.Error(), Field: ve.Field}
	}

	var oob *common.OutOfBoundsError
	if errors.As(err, &oob) {
		return http.StatusNotFound, ErrorBody{
			Code:    CodeOffsetOutOfBounds,
			Message: "Offset is beyond the last todo",
			Meta:    &ErrorMeta{Total: oob.Total, HasMore: false},
		}
	}

	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, ErrorBody{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorBody{Code: CodeUnauthorized, Message: "Invalid or expired token"}
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, ErrorBody{Code: CodeUnauthorized, Message: invalidCredentialsText}
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, ErrorBody{Code: CodeConflict, Message: "User with this email already exists"}
	case errors.Is(err, common.ErrNoResults):
		return http.StatusNotFound, ErrorBody{Code: CodeNoResults, Message: "No todos found"}
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, ErrorBody{Code: CodeNotFound, Message: "Not found"}
	}

	return http.StatusInternalServerError, ErrorBody{Code: CodeInternal, Message: internalErrorMessage}
}

// abortWithError writes the envelope for err and stops the chain. err is
// kept on the gin context for the access log.
func abortWithError(c *gin.Context, err error) {
	status, body := classify(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: body})
}

// notFound names the missing resource in the message.
func notFound(what string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return newAPIError(http.StatusNotFound, CodeNotFound, what+" not found", err)
	}
	return err
}

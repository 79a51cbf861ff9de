package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/netvalue/pkg/errors"
)

// ErrorBody is the error envelope written by [WriteError].
type ErrorBody struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail carries the machine-readable code and the user message.
type ErrorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrCodeTooLarge):
		return http.StatusRequestEntityTooLarge
	case errs.Is(err, errs.ErrCodeNotFound), errs.Is(err, errs.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errs.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode JSON response", "error", err)
	}
}

// WriteError writes the error envelope for err. Errors without a client
// facing code are logged and reported as INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, requestID string, err error) {
	status := StatusFor(err)
	detail := ErrorDetail{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "request_id", requestID, "error", err)
		detail = ErrorDetail{Code: errs.ErrCodeInternal, Message: http.StatusText(status)}
	}
	WriteJSON(w, status, ErrorBody{Error: detail, RequestID: requestID})
}

// DecodeJSON decodes the request body into v, rejecting unknown fields and
// trailing data, then validates v's struct tags. Failures are INVALID_FORMAT
// for malformed JSON and INVALID_INPUT for failed validation.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.Wrap(errs.ErrCodeTooLarge, err, "request body exceeds %d bytes", maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return errs.New(errs.ErrCodeInvalidFormat, "request body is empty")
		}
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request body")
	}
	if dec.More() {
		return errs.New(errs.ErrCodeInvalidFormat, "request body has trailing data")
	}
	return errs.ValidateStruct(v)
}

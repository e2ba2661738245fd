package errcodes

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldError identifies a single request parameter that failed validation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	Fields   []FieldError

	cause error
}

func (err *Error) Error() string {
	if err.cause != nil {
		return err.Message + ": " + err.cause.Error()
	}
	return err.Message
}

func (err *Error) Unwrap() error {
	return err.cause
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Fields = err.Fields
	te.cause = err.cause
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found.",
		Code:     "not_found",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     "unsupported_media_type",
	}
}

func MalformedPayload() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Malformed Payload",
		Code:     "malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Request body can't be empty.",
		Code:     "empty_request_body",
	}
}

func TooManyRequests() error {
	return &Error{
		HTTPCode: http.StatusTooManyRequests,
		Message:  "Too Many Requests",
		Code:     "too_many_requests",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     "unknown_parameter",
		Fields:   []FieldError{{Field: param, Reason: "unknown parameter"}},
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_error",
	}
}

// ValidationErrors reports every offending parameter at once. The message is
// the reasons joined together so clients that only read "message" still see
// all of them.
func ValidationErrors(fields []FieldError) error {
	reasons := make([]string, 0, len(fields))
	for _, f := range fields {
		reasons = append(reasons, f.Reason)
	}
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  strings.Join(reasons, "; "),
		Code:     "validation_error",
		Fields:   fields,
	}
}

// ExecutionError wraps a failure of the backing store. Clients only ever see a
// generic message; the cause is kept for logging.
func ExecutionError(cause error) error {
	return &Error{
		HTTPCode: http.StatusInternalServerError,
		Message:  "Internal Server Error",
		Code:     "execution_error",
		cause:    cause,
	}
}

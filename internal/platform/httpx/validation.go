package httpx

import "net/http"

// ValidationError builds the envelope used for per-field form validation
// failures. The field map is attached under a "fields" key so clients can
// surface messages inline.
func ValidationError(message string, fields map[string]string) Error {
	err := NewError("validation_failed", message, http.StatusUnprocessableEntity)
	if len(fields) == 0 {
		return err
	}
	detail := make(map[string]any, len(fields))
	for name, msg := range fields {
		detail[name] = msg
	}
	return err.WithDetails(map[string]any{"fields": detail})
}

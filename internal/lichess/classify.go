package lichess

import (
	"encoding/json"
	"strings"

	"github.com/cootshk/LiChess-Bot/internal/errors"
)

// classify maps an HTTP status and response body onto the error
// taxonomy. Every operation in this package routes its response through
// here; none of them carries its own status-code handling.
//
//	2xx             -> nil (body belongs to the caller)
//	429             -> RATE_LIMITED, body ignored
//	404             -> NOT_FOUND
//	400             -> BAD_REQUEST with the body's error field
//	other non-2xx   -> API_ERROR when the server supplied an error
//	                   message, INVALID_TOKEN otherwise
func classify(status int, body []byte, path string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 429:
		return errors.NewRateLimitedError()
	case status == 404:
		return errors.NewNotFoundError("resource", path)
	case status == 400:
		reason := serverError(body)
		if reason == "" {
			reason = strings.TrimSpace(string(body))
		}
		if reason == "" {
			reason = "request rejected"
		}
		return errors.NewBadRequestError(reason)
	default:
		if msg := serverError(body); msg != "" {
			return errors.NewAPIError(status, msg)
		}
		// No parseable error message: treated as an authentication failure.
		return errors.NewInvalidTokenError(status)
	}
}

// serverError extracts the "error" field from a JSON error body,
// returning "" when the body is absent, unparseable, or the field is
// not a string.
func serverError(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

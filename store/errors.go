package store

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

var (
	ErrUnavailable   = errors.New("spreadsheet service unavailable")
	ErrQuotaExceeded = errors.New("spreadsheet quota exceeded - please try again later")
	ErrMissingField  = errors.New("missing required field")
	ErrNotFound      = errors.New("record not found")
	ErrSchema        = errors.New("incompatible worksheet header")
)

// isQuotaError returns true for the errors the Sheets API returns when the per-minute request quota
// has been exceeded.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var e *googleapi.Error
	if errors.As(err, &e) && e.Code == 429 {
		return true
	}

	s := err.Error()
	for _, signature := range []string{"Quota exceeded", "RATE_LIMIT_EXCEEDED", "RESOURCE_EXHAUSTED", "429"} {
		if strings.Contains(s, signature) {
			return true
		}
	}

	return false
}

package errors

import (
	stderrors "errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// FromAPIError classifies an error returned by a YouTube Data API call.
// Errors whose API-reported message contains a "quota"-class substring are
// rotation-eligible; every other API-reported error is terminal for the call.
// Anything that never produced an API response is a transport failure.
func FromAPIError(err error) *AppError {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		msg := apiMessage(apiErr)
		if strings.Contains(strings.ToLower(msg), "quota") {
			return Wrap(err, CodeQuotaExhausted, msg)
		}
		return Wrap(err, CodeRequestRejected, msg)
	}

	return Wrap(err, CodeNetwork, "network error")
}

// apiMessage extracts the most specific human-readable message from a
// googleapi error. Item reasons such as "quotaExceeded" are folded in so the
// substring classification sees them even when the top-level message is vague.
func apiMessage(apiErr *googleapi.Error) string {
	parts := make([]string, 0, len(apiErr.Errors)+1)
	if apiErr.Message != "" {
		parts = append(parts, apiErr.Message)
	}
	for _, item := range apiErr.Errors {
		if item.Reason != "" {
			parts = append(parts, item.Reason)
		}
	}
	if len(parts) == 0 {
		return apiErr.Error()
	}
	return strings.Join(parts, ": ")
}

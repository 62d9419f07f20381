package errors

import "strings"

// translations maps substrings of raw API error messages to the text shown to
// the user. Matching is case-insensitive; the first matching entry wins.
// Longer, more specific triggers come before the generic ones.
var translations = []struct {
	trigger string
	message string
}{
	{"The request cannot be completed because you have exceeded your quota", "request rejected: daily quota exceeded"},
	{"YouTube Data API v3 has not been used in project", "YouTube Data API v3 is not enabled for this project"},
	{"Daily Limit Exceeded", "daily limit exceeded"},
	{"API key is not valid", "API key is not valid or is restricted"},
	{"API key not valid", "API key is not valid"},
	{"API key is missing", "API key is missing"},
	{"keyExpired", "API key has expired"},
	{"keyInvalid", "API key is malformed"},
	{"quotaExceeded", "quota exceeded"},
	{"rateLimitExceeded", "rate limit exceeded"},
	{"quota", "daily quota exhausted"},
	{"invalidParameter", "invalid request parameter"},
	{"Unauthorized", "unauthorized"},
	{"Forbidden", "access forbidden - check the API key"},
	{"forbidden", "access forbidden"},
	{"Not Found", "endpoint not found"},
	{"Bad Request", "bad request"},
	{"Internal Server Error", "upstream server error"},
	{"Network error", "network connection failed"},
}

// Translate maps a raw API error message to a human-readable one.
// Unrecognized messages pass through verbatim.
func Translate(message string) string {
	if message == "" {
		return "unknown error"
	}
	lower := strings.ToLower(message)
	for _, t := range translations {
		if strings.Contains(lower, strings.ToLower(t.trigger)) {
			return t.message
		}
	}
	return message
}

// TranslateError renders an error for display, unwrapping AppError messages
// through the translation table.
func TranslateError(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := err.(*AppError); ok {
		return Translate(appErr.Message)
	}
	return Translate(err.Error())
}

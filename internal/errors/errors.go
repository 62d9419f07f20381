package errors

import "fmt"

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInvalidArg = "INVALID_ARGUMENT"
	CodeExternal   = "EXTERNAL_ERROR"
	CodeConflict   = "CONFLICT" // Resource already exists (UNIQUE violation)

	// YouTube Data API call outcomes
	CodeQuotaExhausted    = "QUOTA_EXHAUSTED"    // rotation-eligible: credential call budget depleted
	CodeRequestRejected   = "REQUEST_REJECTED"   // any other API-reported failure, not rotation-eligible
	CodeNetwork           = "NETWORK_ERROR"      // transport-level failure before an API response
	CodeCredentialInvalid = "CREDENTIAL_INVALID" // probe determined the key itself is bad
	CodeNoCredentials     = "NO_CREDENTIALS"     // pool is empty or every credential was tried
)

// HasCode reports whether err (or anything it wraps) is an AppError with the given code
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// IsQuotaExhausted reports whether err is a rotation-eligible quota error
func IsQuotaExhausted(err error) bool {
	return HasCode(err, CodeQuotaExhausted)
}

package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// Authentication
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrNotAuthenticated   ErrCode = "NOT_AUTHENTICATED"

	// Authorization
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// Validation
	ErrValidation    ErrCode = "VALIDATION_ERROR"
	ErrMissingParams ErrCode = "MISSING_PARAMS"
	ErrInvalidID     ErrCode = "INVALID_ID"

	// Resources
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrDuplicateAccount ErrCode = "DUPLICATE_ACCOUNT"

	// Rate limiting
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// Server
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Username or password is incorrect."
	case ErrNotAuthenticated:
		return "You are not logged in."
	case ErrPermissionDenied:
		return "You do not have permission to perform this operation."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrMissingParams:
		return "Required parameters are missing."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrNotFound:
		return "Resource not found."
	case ErrDuplicateAccount:
		return "An account with this username already exists."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}

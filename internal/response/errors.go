package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidAdminKey ErrCode = "INVALID_ADMIN_KEY"
	ErrTokenRequired   ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid    ErrCode = "TOKEN_INVALID"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Import ────────────────────────────────────────────────────────
	ErrFileRequired      ErrCode = "FILE_REQUIRED"
	ErrUndecodableFile   ErrCode = "UNDECODABLE_FILE"
	ErrMissingColumns    ErrCode = "MISSING_COLUMNS"
	ErrNoUsableQuestions ErrCode = "NO_USABLE_QUESTIONS"

	// ─── Sessions ──────────────────────────────────────────────────────
	ErrSessionNotFound      ErrCode = "SESSION_NOT_FOUND"
	ErrSessionCompleted     ErrCode = "SESSION_COMPLETED"
	ErrSessionNotCompleted  ErrCode = "SESSION_NOT_COMPLETED"
	ErrInvalidOption        ErrCode = "INVALID_OPTION"
	ErrNoWrongAnswers       ErrCode = "NO_WRONG_ANSWERS"
	ErrNoQuestionsAvailable ErrCode = "NO_QUESTIONS_AVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidAdminKey:
		return "The admin key is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Import ────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUndecodableFile:
		return "The file could not be decoded as UTF-8 or Shift_JIS."
	case ErrMissingColumns:
		return "The file is missing required columns."
	case ErrNoUsableQuestions:
		return "No usable questions could be read from the file."

	// ─── Sessions ──────────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "The quiz session was not found."
	case ErrSessionCompleted:
		return "The quiz session is already completed."
	case ErrSessionNotCompleted:
		return "The quiz session is not completed yet."
	case ErrInvalidOption:
		return "The selected option is out of range."
	case ErrNoWrongAnswers:
		return "The quiz session has no wrong answers to retry."
	case ErrNoQuestionsAvailable:
		return "No questions match the requested filters."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}

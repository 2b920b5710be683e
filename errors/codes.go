package errors

// ErrorCode is the machine-readable code carried in every error envelope
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1002
	ErrorCode_NOT_FOUND         ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1004
	ErrorCode_PERMISSION_DENIED ErrorCode = 1005

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Conversation
	ErrorCode_SESSION_NOT_FOUND  ErrorCode = 3000
	ErrorCode_TRANSCRIPT_EMPTY   ErrorCode = 3001
	ErrorCode_TRANSCRIPT_TOO_BIG ErrorCode = 3002

	// Collaborators
	ErrorCode_CALENDAR_UNAVAILABLE    ErrorCode = 4000
	ErrorCode_NOTES_UNAVAILABLE       ErrorCode = 4001
	ErrorCode_TRANSCRIBER_UNAVAILABLE ErrorCode = 4002
	ErrorCode_EXTERNAL_API_FAILED     ErrorCode = 4003
	ErrorCode_INVALID_TIME            ErrorCode = 4004
	ErrorCode_STORAGE_UNAVAILABLE     ErrorCode = 4005
	ErrorCode_ARCHIVE_UNAVAILABLE     ErrorCode = 4006
	ErrorCode_OAUTH_STATE_INVALID     ErrorCode = 4007
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                 "HTTP_OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:         "UNAUTHENTICATED",
	ErrorCode_PERMISSION_DENIED:       "PERMISSION_DENIED",
	ErrorCode_AUTH_INVALID_TOKEN:      "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:      "AUTH_TOKEN_EXPIRED",
	ErrorCode_SESSION_NOT_FOUND:       "SESSION_NOT_FOUND",
	ErrorCode_TRANSCRIPT_EMPTY:        "TRANSCRIPT_EMPTY",
	ErrorCode_TRANSCRIPT_TOO_BIG:      "TRANSCRIPT_TOO_BIG",
	ErrorCode_CALENDAR_UNAVAILABLE:    "CALENDAR_UNAVAILABLE",
	ErrorCode_NOTES_UNAVAILABLE:       "NOTES_UNAVAILABLE",
	ErrorCode_TRANSCRIBER_UNAVAILABLE: "TRANSCRIBER_UNAVAILABLE",
	ErrorCode_EXTERNAL_API_FAILED:     "EXTERNAL_API_FAILED",
	ErrorCode_STORAGE_UNAVAILABLE:     "STORAGE_UNAVAILABLE",
	ErrorCode_ARCHIVE_UNAVAILABLE:     "ARCHIVE_UNAVAILABLE",
	ErrorCode_OAUTH_STATE_INVALID:     "OAUTH_STATE_INVALID",
	ErrorCode_INVALID_TIME:            "INVALID_TIME",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

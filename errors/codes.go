package errors

import "fmt"

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int

const (
	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Call sessions
	ErrorCode_SESSION_NOT_FOUND     ErrorCode = 2000
	ErrorCode_SESSION_CLOSED        ErrorCode = 2001
	ErrorCode_SESSION_ALREADY_ENDED ErrorCode = 2002
	ErrorCode_SESSION_BUSY          ErrorCode = 2003

	// Traffic
	ErrorCode_RATE_LIMIT_EXCEEDED ErrorCode = 3000

	// Integrations
	ErrorCode_SPEECH_FAILED ErrorCode = 4000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:       "INVALID_PAYLOAD",
	ErrorCode_SESSION_NOT_FOUND:     "SESSION_NOT_FOUND",
	ErrorCode_SESSION_CLOSED:        "SESSION_CLOSED",
	ErrorCode_SESSION_ALREADY_ENDED: "SESSION_ALREADY_ENDED",
	ErrorCode_SESSION_BUSY:          "SESSION_BUSY",
	ErrorCode_RATE_LIMIT_EXCEEDED:   "RATE_LIMIT_EXCEEDED",
	ErrorCode_SPEECH_FAILED:         "SPEECH_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a code rendered by MarshalText
func (c *ErrorCode) UnmarshalText(text []byte) error {
	for code, name := range errorCodeNames {
		if name == string(text) {
			*c = code
			return nil
		}
	}
	return fmt.Errorf("unknown error code %q", text)
}

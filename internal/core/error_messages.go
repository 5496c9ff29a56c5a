package core

// error_messages.go maps errors to user-facing messages with support codes.
//
// # Conversion Errors (CSV001-CSV099)
//
// Converter failures are shown verbatim; the message already names the
// failed validation step.
//
//	CSV001 - EmptyInput: nothing to convert
//	CSV002 - InsufficientRows: header without data rows
//	CSV003 - ColumnMismatch: "row N has X columns, expected Y"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Input exceeds the configured size limit
//	FILE002 - Upload is not a .csv or .txt file
//	FILE003 - Upload request without a file
//	FILE004 - Unknown character encoding name
//
// # Service Errors
//
//	CONV001 - All conversion slots busy
//	REQ001  - Request cancelled
//	REQ002  - Request timed out
//	REQ003  - Request body could not be read
//	RATE001 - Rate limited
//	AUTH001 - Missing or invalid API key
//	ERR000  - Anything else; the technical error is only logged
//
// Sentinel errors are matched with errors.Is first. Remaining errors are
// matched case-insensitively by substring, first pattern wins.

import (
	"context"
	"errors"
	"strings"

	"github.com/JonMunkholm/csv2json/internal/convert"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// conversionActions holds the hint shown next to each converter failure.
var conversionActions = map[convert.Kind]UserMessage{
	convert.EmptyInput: {
		Action: "Paste CSV text or upload a .csv file",
		Code:   "CSV001",
	},
	convert.InsufficientRows: {
		Action: "Add at least one data row below the header",
		Code:   "CSV002",
	},
	convert.ColumnMismatch: {
		Action: "Make every row have as many comma-separated values as the header",
		Code:   "CSV003",
	},
}

var (
	msgInputTooLarge = UserMessage{
		Message: "Input exceeds the maximum size",
		Action:  "Split the file into smaller parts",
		Code:    "FILE001",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller input or try again later",
		Code:    "REQ002",
	}
)

// sentinelMessages maps package errors to messages.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrInputTooLarge, msgInputTooLarge},
	{ErrUnsupportedFile, UserMessage{
		Message: "Only .csv and .txt files are supported",
		Action:  "Choose a CSV file",
		Code:    "FILE002",
	}},
	{ErrNoFile, UserMessage{
		Message: "No file was selected",
		Action:  "Choose a CSV file to upload",
		Code:    "FILE003",
	}},
	{ErrUnknownEncoding, UserMessage{
		Message: "Unknown character encoding",
		Action:  "Use an encoding name such as utf-8, latin1 or windows-1251",
		Code:    "FILE004",
	}},
	{ErrTooManyConversions, UserMessage{
		Message: "The converter is busy",
		Action:  "Please wait a moment and try again",
		Code:    "CONV001",
	}},
	{context.Canceled, UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPatterns catches errors that arrive as plain text, such as
// middleware responses and wrapped library errors.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"request body too large", msgInputTooLarge},
	{"bad request", UserMessage{
		Message: "The request could not be read",
		Action:  "Send CSV text as JSON {\"csv\": ...}, a form field or a text/csv body",
		Code:    "REQ003",
	}},
	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
	{"api key", UserMessage{
		Message: "Missing or invalid API key",
		Action:  "Send a valid key in the X-API-Key header",
		Code:    "AUTH001",
	}},
	{"deadline exceeded", msgTimeout},
	{"timeout", msgTimeout},
}

// defaultMessage is used when nothing else matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts err into a message suitable for the UI.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ce *convert.Error
	if errors.As(err, &ce) {
		msg := conversionActions[ce.Kind]
		msg.Message = ce.Error()
		if msg.Code == "" {
			msg.Code = "CSV000"
		}
		return msg
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}

// IsUserError reports whether err was caused by the input rather than the
// environment. Such errors are shown with their user message.
func IsUserError(err error) bool {
	if convert.KindOf(err) != "" {
		return true
	}
	return errors.Is(err, ErrInputTooLarge) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrUnknownEncoding)
}

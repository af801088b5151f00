package searchclient

import "errors"

// User-facing messages. Transport details are never shown to visitors.
const (
	MessageSearchUnavailable = "Search is unavailable right now. Please try again."
	MessageSubmissionFailed  = "We couldn't send your message. Please try again later."
	MessageInvalidContact    = "Please check the form and try again."
	MessageGeneric           = "Something went wrong. Please try again."
)

// UserMessage maps err to the generic message shown to visitors. nil maps to "".
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidContact):
		return MessageInvalidContact
	case errors.Is(err, ErrSearchUnavailable):
		return MessageSearchUnavailable
	case errors.Is(err, ErrSubmissionFailed):
		return MessageSubmissionFailed
	default:
		return MessageGeneric
	}
}

package admin

import "fmt"

// Code classifies a failed admin call for the transport layer.
type Code uint8

const (
	CodeInternal Code = iota + 1
)

func (c Code) String() string {
	switch c {
	case CodeInternal:
		return "INTERNAL"
	default:
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
}

// StatusError is a request error carrying its classification and cause.
type StatusError struct {
	code  Code
	text  string
	cause error
}

func (e *StatusError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.code, e.text)
	}
	return fmt.Sprintf("%s: %s: %v", e.code, e.text, e.cause)
}

func (e *StatusError) Code() Code {
	return e.code
}

func (e *StatusError) Unwrap() error {
	return e.cause
}

func NewInternalError(text string, cause error) *StatusError {
	return &StatusError{code: CodeInternal, text: text, cause: cause}
}

// MissingTopicError reports a configured topic without registered statistics.
// It signals a startup ordering bug and is raised with panic, never returned.
type MissingTopicError struct {
	Topic     string
	Direction string
}

func (e *MissingTopicError) Error() string {
	return fmt.Sprintf("no %s statistics registered for configured topic %q", e.Direction, e.Topic)
}

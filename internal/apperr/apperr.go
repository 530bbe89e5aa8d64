package apperr

import "fmt"

// Kind is a stable, machine-discriminable failure category.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindExtraction    Kind = "extraction"
	KindEmptySource   Kind = "empty_source"
	KindGeneration    Kind = "generation"
)

// Error carries a Kind alongside a user-facing message. Validation errors
// may additionally name the offending fields.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Extraction(err error) *Error {
	return &Error{Kind: KindExtraction, Message: "unable to extract content from the provided URL", Err: err}
}

func EmptySource() *Error {
	return &Error{Kind: KindEmptySource, Message: "nothing to analyze: provide notes or a URL with readable text"}
}

func Generation(msg string, err error) *Error {
	return &Error{Kind: KindGeneration, Message: msg, Err: err}
}

package schema

import (
	"fmt"
)

//////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is the kind of a pipeline failure
type Err uint

type kindError struct {
	kind  Err
	msg   string
	cause error
}

//////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrInvalidUtterance Err = iota + 1
	ErrTranscriptionFailed
	ErrReportGenerationFailed
)

//////////////////////////////////////////////////////////////////////////////
// ERROR

func (e Err) Error() string {
	switch e {
	case ErrInvalidUtterance:
		return "invalid utterance"
	case ErrTranscriptionFailed:
		return "transcription failed"
	case ErrReportGenerationFailed:
		return "report generation failed"
	default:
		return fmt.Sprintf("error %d", uint(e))
	}
}

func (e Err) With(args ...any) error {
	return &kindError{kind: e, msg: fmt.Sprint(args...)}
}

func (e Err) Withf(format string, args ...any) error {
	return &kindError{kind: e, msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of this kind which also matches cause with errors.Is
func (e Err) Wrap(cause error) error {
	if cause == nil {
		return nil
	}
	return &kindError{kind: e, cause: cause}
}

func (e *kindError) Error() string {
	switch {
	case e.cause != nil && e.msg != "":
		return e.kind.Error() + ": " + e.msg + ": " + e.cause.Error()
	case e.cause != nil:
		return e.kind.Error() + ": " + e.cause.Error()
	case e.msg != "":
		return e.kind.Error() + ": " + e.msg
	default:
		return e.kind.Error()
	}
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

package store

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why an insert or query failed
type ErrorCode int

const (
	CodeNonExistentSubject ErrorCode = iota
	CodeNonExistentPredicate
	CodeNonExistentObject
	CodeUnknownError

	CodeFailureToInsertSubject
	CodeFailureToInsertPredicate
	CodeFailureToInsertObject
	CodeFailureToInsertTriple
	CodeUnderSpecifiedQueryFilter

	CodeTripleNotFound
	CodeSubjectNotFound
	CodeObjectNotFound
)

func (c ErrorCode) String() string {
	switch c {
	case CodeNonExistentSubject:
		return "non-existent subject"
	case CodeNonExistentPredicate:
		return "non-existent predicate"
	case CodeNonExistentObject:
		return "non-existent object"
	case CodeUnknownError:
		return "unknown error"
	case CodeFailureToInsertSubject:
		return "failure to insert subject"
	case CodeFailureToInsertPredicate:
		return "failure to insert predicate"
	case CodeFailureToInsertObject:
		return "failure to insert object"
	case CodeFailureToInsertTriple:
		return "failure to insert triple"
	case CodeUnderSpecifiedQueryFilter:
		return "under-specified query filter"
	case CodeTripleNotFound:
		return "triple not found"
	case CodeSubjectNotFound:
		return "subject not found"
	case CodeObjectNotFound:
		return "object not found"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// Error is returned by every fallible QuadStore operation. Err holds the
// collaborator error that caused it, if any, and is reachable with errors.Unwrap.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so the Err* values below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

var (
	ErrNonExistentSubject        = &Error{Code: CodeNonExistentSubject}
	ErrNonExistentPredicate      = &Error{Code: CodeNonExistentPredicate}
	ErrNonExistentObject         = &Error{Code: CodeNonExistentObject}
	ErrUnknown                   = &Error{Code: CodeUnknownError}
	ErrFailureToInsertSubject    = &Error{Code: CodeFailureToInsertSubject}
	ErrFailureToInsertPredicate  = &Error{Code: CodeFailureToInsertPredicate}
	ErrFailureToInsertObject     = &Error{Code: CodeFailureToInsertObject}
	ErrFailureToInsertTriple     = &Error{Code: CodeFailureToInsertTriple}
	ErrUnderSpecifiedQueryFilter = &Error{Code: CodeUnderSpecifiedQueryFilter}
	ErrTripleNotFound            = &Error{Code: CodeTripleNotFound}
	ErrSubjectNotFound           = &Error{Code: CodeSubjectNotFound}
	ErrObjectNotFound            = &Error{Code: CodeObjectNotFound}

	// ErrResolveUnsupported is returned by Resolve and Lookup* when the graph
	// does not implement Resolver
	ErrResolveUnsupported = errors.New("graph does not support resolving terms")
)

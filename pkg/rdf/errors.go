package rdf

import "errors"

var (
	// ErrInvalidDeserializationRequest is returned when a literal's datatype
	// does not match the type it is being deserialized into
	ErrInvalidDeserializationRequest = errors.New("invalid deserialization request")

	// ErrInvalidLiteral is returned when a literal's bytes cannot hold a value
	// of its datatype
	ErrInvalidLiteral = errors.New("invalid literal")

	// ErrUnregisteredDatatype is returned for a Go type or datatype IRI that was
	// never registered
	ErrUnregisteredDatatype = errors.New("unregistered datatype")

	// ErrDatatypeConflict is returned when a registration reuses an ID, IRI or type
	ErrDatatypeConflict = errors.New("datatype conflict")
)

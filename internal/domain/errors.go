package domain

import "errors"

var (
	// ErrFileOpen is returned when an input or output file cannot be opened.
	ErrFileOpen = errors.New("cannot open file")
	// ErrStrictParse is returned when a required field of a strict dataset is
	// not a number.
	ErrStrictParse = errors.New("cannot parse field")
	// ErrUnknownFunction is returned for function names missing from the registry.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrArity is returned when a function receives the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrShapeMismatch is returned when two compared datasets differ in row count.
	ErrShapeMismatch = errors.New("datasets must have the same number of rows")
)

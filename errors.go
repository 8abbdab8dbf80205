package polymon

import (
	"errors"
)

// Errors returned by the converter. They are wrapped with details; test for
// them with errors.Is.
var (
	ErrInputNotFound     = errors.New("input document not found")
	ErrInputSuffix       = errors.New("input document must have suffix " + DocumentExt)
	ErrMalformedDocument = errors.New("malformed document")
	ErrShapeMismatch     = errors.New("image shape mismatch")
	ErrOutputWrite       = errors.New("writing output image")
)

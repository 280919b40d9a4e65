package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for recoverable business-rule conflicts. Operations that
// return them leave the document untouched.
var (
	ErrDuplicateProduct = errors.New("product already exists")
	ErrProductNotFound  = errors.New("product not found")
)

// ValidationError reports malformed or missing user input. Recoverable: the
// caller is expected to re-prompt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MalformedDocumentError means the backing file exists but could not be
// decoded as a document. Fatal for the current process: there is no
// automatic repair or quarantine, the file has to be fixed by hand.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed inventory document %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field returns an error instance that wraps the original error with
// additional information. It returns nil if the provided error is nil.
// Use this function to create an error instance describing a
// field/attribute error.
//
// Use Go naming for the field name. For example, FeeCollector or
// FeeInterval. When the error is for a nested field, use dot notation
// to construct the path, for example Vault.Owner.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}

	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

func isNilErr(err error) bool {
	return err == nil
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

// Field returns the name of the field that this error describes.
func (e *fieldError) Field() string {
	return e.field
}

// FieldErrors returns the list of all errors that are created for the given
// field name. An empty result is returned for an error that is not
// carrying any field error, including nil.
func FieldErrors(err error, fieldName string) []error {
	if err == nil {
		return nil
	}

	if u, ok := err.(unpacker); ok {
		var res []error
		for _, e := range u.Unpack() {
			res = append(res, FieldErrors(e, fieldName)...)
		}
		return res
	}

	type fielder interface {
		Field() string
	}
	if f, ok := err.(fielder); ok && f.Field() == fieldName {
		return []error{err}
	}

	if c, ok := err.(causer); ok {
		return FieldErrors(c.Cause(), fieldName)
	}

	return nil
}

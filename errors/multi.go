package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened. All
// represented errors are clubbed together as a flat structure instead of
// each being a separate container.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		switch e := e.(type) {
		case nil:
			continue
		case multiError:
			res = append(res, e...)
		default:
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiError represents a group of errors. It is a result of combining
// multiple errors into one.
type multiError []error

var _ unpacker = (multiError)(nil)

// Unpack implements the unpacker interface.
func (errs multiError) Unpack() []error {
	return errs
}

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return "<nil>"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Code returns the code of the first contained error. This is consistent
// with the fail-fast approach of the error handling.
func (errs multiError) Code() uint32 {
	if len(errs) == 0 {
		return 0
	}
	type coder interface {
		Code() uint32
	}
	if c, ok := errs[0].(coder); ok {
		return c.Code()
	}
	return 1
}

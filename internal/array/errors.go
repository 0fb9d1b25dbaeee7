package array

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// ShapeError reports an operation whose operand shapes are invalid or
// incompatible: broadcast mismatches, matmul inner-dimension mismatches,
// bad reduction axes, out-of-range view slices, and invalid shapes at
// construction time.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return e.Msg
}

// errShapef builds a stack-carrying ShapeError.
func errShapef(format string, args ...any) error {
	return errors.WithStack(&ShapeError{Msg: fmt.Sprintf(format, args...)})
}

// Errorf exposes ShapeError construction to sibling packages that
// enforce shape constraints of their own.
func Errorf(format string, args ...any) error {
	return errShapef(format, args...)
}

// IsShapeError reports whether err wraps a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return stderrors.As(err, &se)
}

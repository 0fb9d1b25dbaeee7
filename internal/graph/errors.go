package graph

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"

	"github.com/gradix-ml/gradix/internal/array"
)

// MissingPlaceholderError reports an evaluation that reached a
// placeholder with no entry in the feed.
type MissingPlaceholderError struct {
	ID string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("no value fed for placeholder %q", e.ID)
}

// PlaceholderShapeError reports a fed value whose shape does not match
// the placeholder's declared shape.
type PlaceholderShapeError struct {
	ID   string
	Want array.Shape
	Got  array.Shape
}

func (e *PlaceholderShapeError) Error() string {
	return fmt.Sprintf("placeholder %q declared shape %v, fed value has shape %v", e.ID, e.Want, e.Got)
}

// InvalidMutationError reports an Assign or AssignAdd on a node that is
// not a variable.
type InvalidMutationError struct {
	Node string
}

func (e *InvalidMutationError) Error() string {
	return fmt.Sprintf("cannot assign to %s node: only variables hold mutable state", e.Node)
}

// IsMissingPlaceholder reports whether err wraps a MissingPlaceholderError.
func IsMissingPlaceholder(err error) bool {
	var e *MissingPlaceholderError
	return stderrors.As(err, &e)
}

// IsPlaceholderShape reports whether err wraps a PlaceholderShapeError.
func IsPlaceholderShape(err error) bool {
	var e *PlaceholderShapeError
	return stderrors.As(err, &e)
}

// IsInvalidMutation reports whether err wraps an InvalidMutationError.
func IsInvalidMutation(err error) bool {
	var e *InvalidMutationError
	return stderrors.As(err, &e)
}

func errMissingPlaceholder(id string) error {
	return errors.WithStack(&MissingPlaceholderError{ID: id})
}

func errPlaceholderShape(id string, want, got array.Shape) error {
	return errors.WithStack(&PlaceholderShapeError{ID: id, Want: want, Got: got})
}

// ErrInvalidMutation builds a stack-carrying InvalidMutationError for
// the named node kind.
func ErrInvalidMutation(node string) error {
	return errors.WithStack(&InvalidMutationError{Node: node})
}

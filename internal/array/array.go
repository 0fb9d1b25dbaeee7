// Package array implements a dense n-dimensional array of floating
// point values with NumPy-style broadcasting, matrix multiplication,
// reductions and read-only slicing views.
//
// Arrays are value-like: operations return fresh arrays and never alias
// the operands' buffers. The *Assign method variants mutate the
// receiver in place instead.
package array

import (
	"fmt"
	"strings"
)

// Float constrains the element types arrays can hold.
type Float interface {
	~float32 | ~float64
}

// Array is a dense n-dimensional array stored as a flat row-major
// buffer. The buffer length always equals the product of the shape's
// dimensions.
type Array[T Float] struct {
	shape Shape
	data  []T
}

// New creates an array of the given shape with every element set to value.
func New[T Float](value T, shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	data := make([]T, shape.NumElements())
	for i := range data {
		data[i] = value
	}
	return &Array[T]{shape: shape.Clone(), data: data}, nil
}

// FromSlice creates an array from an existing flat buffer. The buffer
// is copied; its length must match the shape's element count.
func FromSlice[T Float](data []T, shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, errShapef("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	buf := make([]T, len(data))
	copy(buf, data)
	return &Array[T]{shape: shape.Clone(), data: buf}, nil
}

// Zeros creates an array of the given shape filled with zeros.
func Zeros[T Float](shape Shape) (*Array[T], error) {
	return New[T](0, shape)
}

// Ones creates an array of the given shape filled with ones.
func Ones[T Float](shape Shape) (*Array[T], error) {
	return New[T](1, shape)
}

// Full creates an array of the given shape filled with value.
func Full[T Float](value T, shape Shape) (*Array[T], error) {
	return New(value, shape)
}

// Shape returns a copy of the array's shape.
func (a *Array[T]) Shape() Shape {
	return a.shape.Clone()
}

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int {
	return len(a.shape)
}

// NumElements returns the total number of elements.
func (a *Array[T]) NumElements() int {
	return len(a.data)
}

// Data returns the underlying flat buffer. Callers must treat it as
// read-only unless they own the array.
func (a *Array[T]) Data() []T {
	return a.data
}

// At returns the element at the given multi-index. Panics when the
// index has the wrong rank or is out of range; element access is a
// programmer-controlled path, not an input-validation one.
func (a *Array[T]) At(index ...int) T {
	return a.data[a.flatIndex(index)]
}

// Set stores value at the given multi-index. Panics on a bad index,
// like At.
func (a *Array[T]) Set(value T, index ...int) {
	a.data[a.flatIndex(index)] = value
}

func (a *Array[T]) flatIndex(index []int) int {
	if len(index) != len(a.shape) {
		panic(fmt.Sprintf("array: index %v has rank %d, array has rank %d", index, len(index), len(a.shape)))
	}
	flat := 0
	for i, idx := range index {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("array: index %v out of range for shape %v", index, a.shape))
		}
		flat = flat*a.shape[i] + idx
	}
	return flat
}

// Clone returns a deep copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	buf := make([]T, len(a.data))
	copy(buf, a.data)
	return &Array[T]{shape: a.shape.Clone(), data: buf}
}

// Equal reports whether two arrays have the same shape and identical
// element values.
func (a *Array[T]) Equal(other *Array[T]) bool {
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i, v := range a.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// Reshape returns an array sharing the same element values with a new
// shape. The element count must be unchanged.
func (a *Array[T]) Reshape(shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(a.data) {
		return nil, errShapef("cannot reshape %v (%d elements) to %v (%d elements)",
			a.shape, len(a.data), shape, shape.NumElements())
	}
	out := a.Clone()
	out.shape = shape.Clone()
	return out, nil
}

// String renders the array as nested bracketed rows.
func (a *Array[T]) String() string {
	var sb strings.Builder
	a.render(&sb, 0, 0)
	return sb.String()
}

func (a *Array[T]) render(sb *strings.Builder, dim, offset int) {
	sb.WriteByte('[')
	if dim == len(a.shape)-1 {
		for i := range a.shape[dim] {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%v", a.data[offset+i])
		}
	} else {
		stride := 1
		for _, d := range a.shape[dim+1:] {
			stride *= d
		}
		for i := range a.shape[dim] {
			if i > 0 {
				sb.WriteString(",\n")
				sb.WriteString(strings.Repeat(" ", dim+1))
			}
			a.render(sb, dim+1, offset+i*stride)
		}
	}
	sb.WriteByte(']')
}

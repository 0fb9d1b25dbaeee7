package array

import "fmt"

// Shape describes the dimensions of an n-dimensional array.
//
// A valid shape is non-empty and every entry is positive. A shape of
// [1] is the closest thing to a scalar this package has.
type Shape []int

// NumElements returns the total number of elements an array of this
// shape holds (the product of all dimensions).
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Equal reports whether two shapes have identical rank and dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, dim := range s {
		if dim != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Validate checks that the shape is non-empty with all positive dimensions.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return errShapef("shape must have at least one dimension")
	}
	for i, dim := range s {
		if dim <= 0 {
			return errShapef("shape %v has non-positive dimension %d at axis %d", s, dim, i)
		}
	}
	return nil
}

// String renders the shape as a dimension list, e.g. "[2, 3, 4]".
func (s Shape) String() string {
	out := "["
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", dim)
	}
	return out + "]"
}

// BroadcastShapes computes the shape two arrays broadcast to under
// NumPy alignment rules: dimensions are compared from the trailing end,
// a pair is compatible when equal or when either side is 1, and the
// shorter shape is treated as left-padded with ones.
//
// Returns a ShapeError when any aligned pair is incompatible.
func BroadcastShapes(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	out := make(Shape, maxLen)
	for i := range maxLen {
		da, db := 1, 1
		if i < len(a) {
			da = a[len(a)-1-i]
		}
		if i < len(b) {
			db = b[len(b)-1-i]
		}
		switch {
		case da == db:
			out[maxLen-1-i] = da
		case da == 1:
			out[maxLen-1-i] = db
		case db == 1:
			out[maxLen-1-i] = da
		default:
			return nil, errShapef("cannot broadcast shapes %v and %v: dimensions %d and %d are incompatible", a, b, da, db)
		}
	}
	return out, nil
}

// matchingTrailingDims counts how many trailing dimensions of the two
// shapes are literally equal. Elementwise kernels use the count to pick
// the largest contiguous slice they can process per broadcast step.
func matchingTrailingDims(a, b Shape) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

// BroadcastMatMulShape computes the result shape of a batched matrix
// product: both operands must have rank >= 2, inner dimensions must
// agree, and the batch prefixes must broadcast.
func BroadcastMatMulShape(a, b Shape) (Shape, error) {
	if len(a) < 2 || len(b) < 2 {
		return nil, errShapef("matmul requires at least 2 dimensions, got shapes %v and %v", a, b)
	}
	m, k := a[len(a)-2], a[len(a)-1]
	k2, n := b[len(b)-2], b[len(b)-1]
	if k != k2 {
		return nil, errShapef("matmul inner dimensions do not agree: %v x %v", a, b)
	}
	prefix, err := BroadcastShapes(a[:len(a)-2], b[:len(b)-2])
	if err != nil {
		return nil, err
	}
	out := make(Shape, 0, len(prefix)+2)
	out = append(out, prefix...)
	return append(out, m, n), nil
}

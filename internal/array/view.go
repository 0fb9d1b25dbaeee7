package array

// Slice selects elements along one axis of a view. Use the
// constructors; the zero value selects nothing useful.
type Slice struct {
	kind  sliceKind
	start int
	end   int
}

type sliceKind uint8

const (
	sliceIndex sliceKind = iota
	sliceRange
	sliceFrom
	sliceTo
	sliceAll
)

// Index selects a single position along an axis. The axis is dropped
// from the view's shape.
func Index(i int) Slice {
	return Slice{kind: sliceIndex, start: i}
}

// Range selects the half-open interval [start, end) along an axis.
func Range(start, end int) Slice {
	return Slice{kind: sliceRange, start: start, end: end}
}

// From selects [start, len) along an axis.
func From(start int) Slice {
	return Slice{kind: sliceFrom, start: start}
}

// To selects [0, end) along an axis.
func To(end int) Slice {
	return Slice{kind: sliceTo, end: end}
}

// All selects the whole axis.
func All() Slice {
	return Slice{kind: sliceAll}
}

// bounds resolves the slice against an axis of length dim.
func (s Slice) bounds(dim int) (start, end int) {
	switch s.kind {
	case sliceIndex:
		return s.start, s.start + 1
	case sliceRange:
		return s.start, s.end
	case sliceFrom:
		return s.start, dim
	case sliceTo:
		return 0, s.end
	default:
		return 0, dim
	}
}

// View is a read-only selection of a region of an array. It references
// the source array's buffer; Materialize copies the region out.
type View[T Float] struct {
	src   *Array[T]
	index []Slice
	shape Shape
}

// View builds a read-only view over the array. One Slice per dimension
// is required and each must stay within its axis's bounds.
func (a *Array[T]) View(index ...Slice) (*View[T], error) {
	if len(index) != len(a.shape) {
		return nil, errShapef("view index has %d slices, array has rank %d", len(index), len(a.shape))
	}
	shape := make(Shape, 0, len(a.shape))
	for i, s := range index {
		start, end := s.bounds(a.shape[i])
		if start < 0 || start >= end || end > a.shape[i] {
			return nil, errShapef("slice [%d, %d) out of range for axis %d of shape %v",
				start, end, i, a.shape)
		}
		if s.kind != sliceIndex {
			shape = append(shape, end-start)
		}
	}
	if len(shape) == 0 {
		shape = Shape{1}
	}
	slices := make([]Slice, len(index))
	copy(slices, index)
	return &View[T]{src: a, index: slices, shape: shape}, nil
}

// Shape returns the shape of the selected region. Axes selected with
// Index are dropped; selecting every axis by Index yields [1].
func (v *View[T]) Shape() Shape {
	return v.shape.Clone()
}

// Materialize copies the selected region into a fresh array.
func (v *View[T]) Materialize() *Array[T] {
	out := make([]T, 0, v.shape.NumElements())
	coord := make([]int, len(v.src.shape))
	for i, s := range v.index {
		coord[i], _ = s.bounds(v.src.shape[i])
	}
	for {
		flat := 0
		for i, c := range coord {
			flat = flat*v.src.shape[i] + c
		}
		out = append(out, v.src.data[flat])

		carry := len(coord) - 1
		for carry >= 0 {
			start, end := v.index[carry].bounds(v.src.shape[carry])
			coord[carry]++
			if coord[carry] < end {
				break
			}
			coord[carry] = start
			carry--
		}
		if carry < 0 {
			break
		}
	}
	return &Array[T]{shape: v.shape.Clone(), data: out}
}

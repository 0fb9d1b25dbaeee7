package array

// AllAxes selects every axis of an array for reduction, collapsing it
// to a single element.
const AllAxes = -1

// ReduceShape computes the shape a reduction produces without running
// it. With keepDims the reduced axis keeps length 1; without it the
// axis is removed (reducing the only axis, or all axes, yields [1]).
func ReduceShape(shape Shape, axis int, keepDims bool) (Shape, error) {
	if axis != AllAxes && (axis < 0 || axis >= len(shape)) {
		return nil, errShapef("invalid reduction axis %d for shape %v", axis, shape)
	}
	if axis == AllAxes {
		if keepDims {
			out := make(Shape, len(shape))
			for i := range out {
				out[i] = 1
			}
			return out, nil
		}
		return Shape{1}, nil
	}
	if keepDims {
		out := shape.Clone()
		out[axis] = 1
		return out, nil
	}
	if len(shape) == 1 {
		return Shape{1}, nil
	}
	out := make(Shape, 0, len(shape)-1)
	out = append(out, shape[:axis]...)
	return append(out, shape[axis+1:]...), nil
}

// Reduce collapses one axis (or all of them, with AllAxes) by folding
// reducer over it. The fold is seeded with the first element along the
// axis, so reducer needs no identity element.
func (a *Array[T]) Reduce(reducer func(T, T) T, axis int, keepDims bool) (*Array[T], error) {
	outShape, err := ReduceShape(a.shape, axis, keepDims)
	if err != nil {
		return nil, err
	}
	out := make([]T, outShape.NumElements())

	if axis == AllAxes {
		acc := a.data[0]
		for _, v := range a.data[1:] {
			acc = reducer(acc, v)
		}
		out[0] = acc
		return &Array[T]{shape: outShape, data: out}, nil
	}

	// Walk the output positions while sliding a window over the input:
	// axisStride steps between consecutive elements along the reduced
	// axis, blockLen elements per block spanned by that axis.
	axisStride := 1
	for _, dim := range a.shape[axis+1:] {
		axisStride *= dim
	}
	blockLen := axisStride * a.shape[axis]
	dimLen := a.shape[axis]

	processed := 0
	blockStart := 0
	row := 0
	for i := range out {
		acc := a.data[blockStart+row]
		processed++
		for j := 1; j < dimLen; j++ {
			processed++
			acc = reducer(acc, a.data[blockStart+axisStride*j+row])
		}
		out[i] = acc
		row++
		if processed%blockLen == 0 {
			blockStart += blockLen
			row = 0
		}
	}
	return &Array[T]{shape: outShape, data: out}, nil
}

// ReduceSum sums the elements along axis (or all elements with AllAxes).
func (a *Array[T]) ReduceSum(axis int, keepDims bool) (*Array[T], error) {
	return a.Reduce(func(x, y T) T { return x + y }, axis, keepDims)
}

// ReduceProd multiplies the elements along axis.
func (a *Array[T]) ReduceProd(axis int, keepDims bool) (*Array[T], error) {
	return a.Reduce(func(x, y T) T { return x * y }, axis, keepDims)
}

// ReduceMax takes the maximum along axis.
func (a *Array[T]) ReduceMax(axis int, keepDims bool) (*Array[T], error) {
	return a.Reduce(func(x, y T) T { return max(x, y) }, axis, keepDims)
}

// ReduceMin takes the minimum along axis.
func (a *Array[T]) ReduceMin(axis int, keepDims bool) (*Array[T], error) {
	return a.Reduce(func(x, y T) T { return min(x, y) }, axis, keepDims)
}

// ReduceMean averages the elements along axis. The divisor is the
// reduced axis's length, or the total element count with AllAxes.
func (a *Array[T]) ReduceMean(axis int, keepDims bool) (*Array[T], error) {
	sum, err := a.ReduceSum(axis, keepDims)
	if err != nil {
		return nil, err
	}
	sum.DivAssignScalar(T(ReduceCount(a.shape, axis)))
	return sum, nil
}

// ReduceCount returns the number of input elements folded into each
// output element of a reduction over axis.
func ReduceCount(shape Shape, axis int) int {
	if axis == AllAxes {
		return shape.NumElements()
	}
	return shape[axis]
}

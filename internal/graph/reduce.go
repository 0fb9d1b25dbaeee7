package graph

import "github.com/gradix-ml/gradix/internal/array"

// reduceOp holds the shared structure of reduction nodes. The gradient
// broadcasts the upstream gradient back over the reduced axis, scaled
// by gradScale per folded element: 1 for a sum, 1/count for a mean.
type reduceOp[T array.Float] struct {
	input    Op[T]
	axis     int
	keepDims bool
	name     string
	mean     bool
}

// NewReduceSum builds a node summing along axis (array.AllAxes sums
// everything).
func NewReduceSum[T array.Float](input Op[T], axis int, keepDims bool) Op[T] {
	return &reduceOp[T]{input: input, axis: axis, keepDims: keepDims, name: "ReduceSum"}
}

// NewReduceMean builds a node averaging along axis (array.AllAxes
// averages everything).
func NewReduceMean[T array.Float](input Op[T], axis int, keepDims bool) Op[T] {
	return &reduceOp[T]{input: input, axis: axis, keepDims: keepDims, name: "ReduceMean", mean: true}
}

func (o *reduceOp[T]) Name() string { return o.name }

func (o *reduceOp[T]) Inputs() []Op[T] { return []Op[T]{o.input} }

func (o *reduceOp[T]) Shape() (array.Shape, error) {
	in, err := o.input.Shape()
	if err != nil {
		return nil, err
	}
	return array.ReduceShape(in, o.axis, o.keepDims)
}

func (o *reduceOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	v, err := Value(o.input, feed, cache)
	if err != nil {
		return nil, err
	}
	if o.mean {
		return v.ReduceMean(o.axis, o.keepDims)
	}
	return v.ReduceSum(o.axis, o.keepDims)
}

func (o *reduceOp[T]) AccumGrad(_ Feed[T], _ Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	if child != o.input {
		return nil, nil
	}
	inShape, err := o.input.Shape()
	if err != nil {
		return nil, err
	}

	// With keepDims off the reduced axis is missing from grad's shape,
	// which would misalign the broadcast for any non-trailing axis.
	// Re-insert it with length 1 first.
	g := grad
	if !o.keepDims {
		var kept array.Shape
		if o.axis == array.AllAxes {
			kept = make(array.Shape, len(inShape))
			for i := range kept {
				kept[i] = 1
			}
		} else {
			kept = make(array.Shape, 0, len(inShape))
			kept = append(kept, inShape[:o.axis]...)
			kept = append(kept, 1)
			kept = append(kept, inShape[o.axis+1:]...)
		}
		if g, err = grad.Reshape(kept); err != nil {
			return nil, err
		}
	}

	scale := T(1)
	if o.mean {
		scale = 1 / T(array.ReduceCount(inShape, o.axis))
	}
	back, err := array.Full[T](scale, inShape)
	if err != nil {
		return nil, err
	}
	return g.Mul(back)
}

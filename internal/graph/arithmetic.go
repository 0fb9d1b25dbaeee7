package graph

import "github.com/gradix-ml/gradix/internal/array"

// binary holds the shared structure of two-input elementwise nodes.
// Result shapes follow the arrays' broadcast rules.
type binary[T array.Float] struct {
	x, y Op[T]
}

func (b *binary[T]) Inputs() []Op[T] { return []Op[T]{b.x, b.y} }

func (b *binary[T]) Shape() (array.Shape, error) {
	xs, err := b.x.Shape()
	if err != nil {
		return nil, err
	}
	ys, err := b.y.Shape()
	if err != nil {
		return nil, err
	}
	return array.BroadcastShapes(xs, ys)
}

// onesLike materializes an all-ones array of op's static shape. The
// broadcast-back gradient rules multiply the upstream gradient by it so
// contributions take the broadcast result shape regardless of which
// operand they flow toward.
func onesLike[T array.Float](op Op[T]) (*array.Array[T], error) {
	shape, err := op.Shape()
	if err != nil {
		return nil, err
	}
	return array.Ones[T](shape)
}

type addOp[T array.Float] struct {
	binary[T]
}

// NewAdd builds an elementwise addition node.
func NewAdd[T array.Float](x, y Op[T]) Op[T] {
	return &addOp[T]{binary[T]{x: x, y: y}}
}

func (o *addOp[T]) Name() string { return "Add" }

func (o *addOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	xv, err := Value(o.x, feed, cache)
	if err != nil {
		return nil, err
	}
	yv, err := Value(o.y, feed, cache)
	if err != nil {
		return nil, err
	}
	return xv.Add(yv)
}

func (o *addOp[T]) AccumGrad(_ Feed[T], _ Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	switch child {
	case o.x, o.y:
		ones, err := onesLike(child)
		if err != nil {
			return nil, err
		}
		return grad.Mul(ones)
	}
	return nil, nil
}

type subOp[T array.Float] struct {
	binary[T]
}

// NewSub builds an elementwise subtraction node.
func NewSub[T array.Float](x, y Op[T]) Op[T] {
	return &subOp[T]{binary[T]{x: x, y: y}}
}

func (o *subOp[T]) Name() string { return "Sub" }

func (o *subOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	xv, err := Value(o.x, feed, cache)
	if err != nil {
		return nil, err
	}
	yv, err := Value(o.y, feed, cache)
	if err != nil {
		return nil, err
	}
	return xv.Sub(yv)
}

func (o *subOp[T]) AccumGrad(_ Feed[T], _ Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	switch child {
	case o.x:
		ones, err := onesLike(o.x)
		if err != nil {
			return nil, err
		}
		return grad.Mul(ones)
	case o.y:
		ones, err := onesLike(o.y)
		if err != nil {
			return nil, err
		}
		return grad.Mul(ones.Neg())
	}
	return nil, nil
}

type mulOp[T array.Float] struct {
	binary[T]
}

// NewMul builds an elementwise multiplication node.
func NewMul[T array.Float](x, y Op[T]) Op[T] {
	return &mulOp[T]{binary[T]{x: x, y: y}}
}

func (o *mulOp[T]) Name() string { return "Mul" }

func (o *mulOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	xv, err := Value(o.x, feed, cache)
	if err != nil {
		return nil, err
	}
	yv, err := Value(o.y, feed, cache)
	if err != nil {
		return nil, err
	}
	return xv.Mul(yv)
}

func (o *mulOp[T]) AccumGrad(feed Feed[T], cache Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	switch child {
	case o.x:
		yv, err := Value(o.y, feed, cache)
		if err != nil {
			return nil, err
		}
		return grad.Mul(yv)
	case o.y:
		xv, err := Value(o.x, feed, cache)
		if err != nil {
			return nil, err
		}
		return grad.Mul(xv)
	}
	return nil, nil
}

type divOp[T array.Float] struct {
	binary[T]
}

// NewDiv builds an elementwise division node.
func NewDiv[T array.Float](x, y Op[T]) Op[T] {
	return &divOp[T]{binary[T]{x: x, y: y}}
}

func (o *divOp[T]) Name() string { return "Div" }

func (o *divOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	xv, err := Value(o.x, feed, cache)
	if err != nil {
		return nil, err
	}
	yv, err := Value(o.y, feed, cache)
	if err != nil {
		return nil, err
	}
	return xv.Div(yv)
}

func (o *divOp[T]) AccumGrad(feed Feed[T], cache Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	switch child {
	case o.x:
		yv, err := Value(o.y, feed, cache)
		if err != nil {
			return nil, err
		}
		ones, err := onesLike(o.x)
		if err != nil {
			return nil, err
		}
		recip, err := ones.Div(yv)
		if err != nil {
			return nil, err
		}
		return grad.Mul(recip)
	case o.y:
		xv, err := Value(o.x, feed, cache)
		if err != nil {
			return nil, err
		}
		yv, err := Value(o.y, feed, cache)
		if err != nil {
			return nil, err
		}
		ySq, err := yv.Mul(yv)
		if err != nil {
			return nil, err
		}
		d, err := xv.Neg().Div(ySq)
		if err != nil {
			return nil, err
		}
		return grad.Mul(d)
	}
	return nil, nil
}

// scalarOp holds the shared structure of array-scalar nodes: the value
// is input's value with fn applied per element, and the gradient toward
// the input is the upstream gradient scaled by a constant factor.
type scalarOp[T array.Float] struct {
	input  Op[T]
	name   string
	fn     func(T) T
	factor T
}

// NewAddScalar builds a node adding s to every element.
func NewAddScalar[T array.Float](input Op[T], s T) Op[T] {
	return &scalarOp[T]{input: input, name: "AddScalar", fn: func(x T) T { return x + s }, factor: 1}
}

// NewSubScalar builds a node subtracting s from every element.
func NewSubScalar[T array.Float](input Op[T], s T) Op[T] {
	return &scalarOp[T]{input: input, name: "SubScalar", fn: func(x T) T { return x - s }, factor: 1}
}

// NewMulScalar builds a node multiplying every element by s.
func NewMulScalar[T array.Float](input Op[T], s T) Op[T] {
	return &scalarOp[T]{input: input, name: "MulScalar", fn: func(x T) T { return x * s }, factor: s}
}

// NewDivScalar builds a node dividing every element by s.
func NewDivScalar[T array.Float](input Op[T], s T) Op[T] {
	return &scalarOp[T]{input: input, name: "DivScalar", fn: func(x T) T { return x / s }, factor: 1 / s}
}

func (o *scalarOp[T]) Name() string { return o.name }

func (o *scalarOp[T]) Inputs() []Op[T] { return []Op[T]{o.input} }

func (o *scalarOp[T]) Shape() (array.Shape, error) { return o.input.Shape() }

func (o *scalarOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	v, err := Value(o.input, feed, cache)
	if err != nil {
		return nil, err
	}
	v.MapAssign(o.fn)
	return v, nil
}

func (o *scalarOp[T]) AccumGrad(_ Feed[T], _ Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	if child != o.input {
		return nil, nil
	}
	return grad.MulScalar(o.factor), nil
}

type negOp[T array.Float] struct {
	input Op[T]
}

// NewNeg builds an elementwise negation node.
func NewNeg[T array.Float](input Op[T]) Op[T] {
	return &negOp[T]{input: input}
}

func (o *negOp[T]) Name() string { return "Neg" }

func (o *negOp[T]) Inputs() []Op[T] { return []Op[T]{o.input} }

func (o *negOp[T]) Shape() (array.Shape, error) { return o.input.Shape() }

func (o *negOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	v, err := Value(o.input, feed, cache)
	if err != nil {
		return nil, err
	}
	v.NegAssign()
	return v, nil
}

func (o *negOp[T]) AccumGrad(_ Feed[T], _ Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	if child != o.input {
		return nil, nil
	}
	return grad.Neg(), nil
}

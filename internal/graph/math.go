package graph

import (
	"math"

	"github.com/gradix-ml/gradix/internal/array"
)

// mapOp applies a unary function elementwise. Its gradient toward the
// input is the upstream gradient times deriv applied to the input's
// value.
type mapOp[T array.Float] struct {
	input Op[T]
	name  string
	fn    func(T) T
	deriv func(T) T
}

func (o *mapOp[T]) Name() string { return o.name }

func (o *mapOp[T]) Inputs() []Op[T] { return []Op[T]{o.input} }

func (o *mapOp[T]) Shape() (array.Shape, error) { return o.input.Shape() }

func (o *mapOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	v, err := Value(o.input, feed, cache)
	if err != nil {
		return nil, err
	}
	v.MapAssign(o.fn)
	return v, nil
}

func (o *mapOp[T]) AccumGrad(feed Feed[T], cache Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	if child != o.input {
		return nil, nil
	}
	v, err := Value(o.input, feed, cache)
	if err != nil {
		return nil, err
	}
	v.MapAssign(o.deriv)
	return grad.Mul(v)
}

func sin[T array.Float](x T) T     { return T(math.Sin(float64(x))) }
func cos[T array.Float](x T) T     { return T(math.Cos(float64(x))) }
func ln[T array.Float](x T) T      { return T(math.Log(float64(x))) }
func exp[T array.Float](x T) T     { return T(math.Exp(float64(x))) }
func tanh[T array.Float](x T) T    { return T(math.Tanh(float64(x))) }
func sigmoid[T array.Float](x T) T { return T(1 / (1 + math.Exp(-float64(x)))) }

// NewSin builds an elementwise sine node.
func NewSin[T array.Float](input Op[T]) Op[T] {
	return &mapOp[T]{input: input, name: "Sin", fn: sin[T], deriv: cos[T]}
}

// NewCos builds an elementwise cosine node.
func NewCos[T array.Float](input Op[T]) Op[T] {
	return &mapOp[T]{
		input: input,
		name:  "Cos",
		fn:    cos[T],
		deriv: func(x T) T { return -sin(x) },
	}
}

// NewLn builds an elementwise natural logarithm node.
func NewLn[T array.Float](input Op[T]) Op[T] {
	return &mapOp[T]{
		input: input,
		name:  "Ln",
		fn:    ln[T],
		deriv: func(x T) T { return 1 / x },
	}
}

// NewExp builds an elementwise natural exponential node.
func NewExp[T array.Float](input Op[T]) Op[T] {
	return &mapOp[T]{input: input, name: "Exp", fn: exp[T], deriv: exp[T]}
}

// NewSigmoid builds an elementwise logistic sigmoid node.
func NewSigmoid[T array.Float](input Op[T]) Op[T] {
	return &mapOp[T]{
		input: input,
		name:  "Sigmoid",
		fn:    sigmoid[T],
		deriv: func(x T) T {
			s := sigmoid(x)
			return s * (1 - s)
		},
	}
}

// NewTanh builds an elementwise hyperbolic tangent node.
func NewTanh[T array.Float](input Op[T]) Op[T] {
	return &mapOp[T]{
		input: input,
		name:  "Tanh",
		fn:    tanh[T],
		deriv: func(x T) T {
			t := tanh(x)
			return 1 - t*t
		},
	}
}

// NewReLU builds an elementwise rectifier node.
func NewReLU[T array.Float](input Op[T]) Op[T] {
	return &mapOp[T]{
		input: input,
		name:  "ReLU",
		fn: func(x T) T {
			if x > 0 {
				return x
			}
			return 0
		},
		deriv: func(x T) T {
			if x > 0 {
				return 1
			}
			return 0
		},
	}
}

// NewPow builds an elementwise power node raising every element to p.
func NewPow[T array.Float](input Op[T], p T) Op[T] {
	return &mapOp[T]{
		input: input,
		name:  "Pow",
		fn:    func(x T) T { return T(math.Pow(float64(x), float64(p))) },
		deriv: func(x T) T { return p * T(math.Pow(float64(x), float64(p-1))) },
	}
}

// NewLog builds an elementwise logarithm node in the given base.
func NewLog[T array.Float](input Op[T], base T) Op[T] {
	logBase := T(math.Log(float64(base)))
	return &mapOp[T]{
		input: input,
		name:  "Log",
		fn:    func(x T) T { return ln(x) / logBase },
		deriv: func(x T) T { return 1 / (x * logBase) },
	}
}

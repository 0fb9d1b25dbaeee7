package graph

import "github.com/gradix-ml/gradix/internal/array"

type matMulOp[T array.Float] struct {
	x, y Op[T]
}

// NewMatMul builds a batched matrix multiplication node.
func NewMatMul[T array.Float](x, y Op[T]) Op[T] {
	return &matMulOp[T]{x: x, y: y}
}

func (o *matMulOp[T]) Name() string { return "MatMul" }

func (o *matMulOp[T]) Inputs() []Op[T] { return []Op[T]{o.x, o.y} }

func (o *matMulOp[T]) Shape() (array.Shape, error) {
	xs, err := o.x.Shape()
	if err != nil {
		return nil, err
	}
	ys, err := o.y.Shape()
	if err != nil {
		return nil, err
	}
	return array.BroadcastMatMulShape(xs, ys)
}

func (o *matMulOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	xv, err := Value(o.x, feed, cache)
	if err != nil {
		return nil, err
	}
	yv, err := Value(o.y, feed, cache)
	if err != nil {
		return nil, err
	}
	return xv.MatMul(yv)
}

// AccumGrad follows the matrix chain rule: d/dX = G Y^T and d/dY = X^T G,
// with transposes over the trailing two dimensions.
func (o *matMulOp[T]) AccumGrad(feed Feed[T], cache Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	switch child {
	case o.x:
		yv, err := Value(o.y, feed, cache)
		if err != nil {
			return nil, err
		}
		yt, err := yv.Transpose()
		if err != nil {
			return nil, err
		}
		return grad.MatMul(yt)
	case o.y:
		xv, err := Value(o.x, feed, cache)
		if err != nil {
			return nil, err
		}
		xt, err := xv.Transpose()
		if err != nil {
			return nil, err
		}
		return xt.MatMul(grad)
	}
	return nil, nil
}

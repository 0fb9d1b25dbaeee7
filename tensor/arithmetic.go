// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/gradix-ml/gradix/internal/graph"

// Add builds the elementwise sum of two tensors under broadcasting.
func (t *Tensor[T]) Add(other *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewAdd(t.op, other.op))
}

// Sub builds the elementwise difference of two tensors under broadcasting.
func (t *Tensor[T]) Sub(other *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewSub(t.op, other.op))
}

// Mul builds the elementwise product of two tensors under broadcasting.
func (t *Tensor[T]) Mul(other *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewMul(t.op, other.op))
}

// Div builds the elementwise quotient of two tensors under broadcasting.
func (t *Tensor[T]) Div(other *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewDiv(t.op, other.op))
}

// MatMul builds the batched matrix product of two tensors.
func (t *Tensor[T]) MatMul(other *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewMatMul(t.op, other.op))
}

// Neg builds the elementwise negation of the tensor.
func (t *Tensor[T]) Neg() *Tensor[T] {
	return wrap(graph.NewNeg(t.op))
}

// AddScalar builds a tensor with s added to every element.
func (t *Tensor[T]) AddScalar(s T) *Tensor[T] {
	return wrap(graph.NewAddScalar(t.op, s))
}

// SubScalar builds a tensor with s subtracted from every element.
func (t *Tensor[T]) SubScalar(s T) *Tensor[T] {
	return wrap(graph.NewSubScalar(t.op, s))
}

// MulScalar builds a tensor with every element multiplied by s.
func (t *Tensor[T]) MulScalar(s T) *Tensor[T] {
	return wrap(graph.NewMulScalar(t.op, s))
}

// DivScalar builds a tensor with every element divided by s.
func (t *Tensor[T]) DivScalar(s T) *Tensor[T] {
	return wrap(graph.NewDivScalar(t.op, s))
}

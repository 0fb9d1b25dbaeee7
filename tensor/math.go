// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/gradix-ml/gradix/internal/graph"

// Sin builds the elementwise sine of a tensor.
func Sin[T Float](t *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewSin(t.op))
}

// Cos builds the elementwise cosine of a tensor.
func Cos[T Float](t *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewCos(t.op))
}

// Ln builds the elementwise natural logarithm of a tensor.
func Ln[T Float](t *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewLn(t.op))
}

// Exp builds the elementwise natural exponential of a tensor.
func Exp[T Float](t *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewExp(t.op))
}

// Sigmoid builds the elementwise logistic sigmoid of a tensor.
func Sigmoid[T Float](t *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewSigmoid(t.op))
}

// Tanh builds the elementwise hyperbolic tangent of a tensor.
func Tanh[T Float](t *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewTanh(t.op))
}

// ReLU builds the elementwise rectifier of a tensor.
func ReLU[T Float](t *Tensor[T]) *Tensor[T] {
	return wrap(graph.NewReLU(t.op))
}

// Pow builds a tensor raising every element to the power p.
func Pow[T Float](t *Tensor[T], p T) *Tensor[T] {
	return wrap(graph.NewPow(t.op, p))
}

// Log builds the elementwise logarithm of a tensor in the given base.
func Log[T Float](t *Tensor[T], base T) *Tensor[T] {
	return wrap(graph.NewLog(t.op, base))
}

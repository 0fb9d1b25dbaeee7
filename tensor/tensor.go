// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor builds lazy computational graphs over arrays.
//
// A Tensor is a handle on one node of a graph. Nothing is computed
// while a graph is being built; Eval runs a memoized forward pass and
// Grad runs reverse-mode automatic differentiation back to any node in
// the graph. Handles wrapping the same node are interchangeable: graph
// identity lives in the node, not the handle.
//
//	a := tensor.NewVariable(w)            // learnable state
//	x := tensor.NewPlaceholder[float32]("x", array.Shape{4, 2})
//	y := a.MatMul(x)
//	out, err := y.Eval(tensor.Feed[float32]{"x": batch})
//	grad, err := y.Grad(a, tensor.Feed[float32]{"x": batch})
package tensor

import (
	"github.com/gradix-ml/gradix/internal/array"
	"github.com/gradix-ml/gradix/internal/graph"
)

// Float constrains the element types tensors can hold.
type Float = array.Float

// Feed supplies placeholder values for one evaluation, keyed by
// placeholder id.
type Feed[T array.Float] = graph.Feed[T]

// Tensor is a handle on one node of a computational graph.
type Tensor[T array.Float] struct {
	op graph.Op[T]
}

// NewVariable creates a tensor holding mutable state initialized with a
// copy of init. Assign and AssignAdd change it between evaluations.
func NewVariable[T array.Float](init *array.Array[T]) *Tensor[T] {
	return &Tensor[T]{op: graph.NewVariable(init)}
}

// NewPlaceholder creates a tensor whose value is supplied through the
// feed at evaluation time. The declared shape is enforced against every
// fed value.
func NewPlaceholder[T array.Float](id string, shape array.Shape) *Tensor[T] {
	return &Tensor[T]{op: graph.NewPlaceholder[T](id, shape)}
}

func wrap[T array.Float](op graph.Op[T]) *Tensor[T] {
	return &Tensor[T]{op: op}
}

// Shape returns the tensor's result shape without evaluating it.
func (t *Tensor[T]) Shape() (array.Shape, error) {
	return t.op.Shape()
}

// Eval computes the tensor's value. Each call uses a fresh cache, so a
// node shared by several branches is computed once per call and
// variable mutations are picked up on the next call.
func (t *Tensor[T]) Eval(feed Feed[T]) (*array.Array[T], error) {
	return graph.Eval(t.op, feed)
}

// Grad computes d(t)/d(target) by reverse-mode accumulation. Returns
// (nil, nil) when target's node is not part of t's graph.
func (t *Tensor[T]) Grad(target *Tensor[T], feed Feed[T]) (*array.Array[T], error) {
	return graph.Grad(t.op, target.op, feed)
}

// Assign replaces a variable tensor's value. Fails with
// InvalidMutationError on any other node kind, and with ShapeError when
// the value's shape differs from the variable's.
func (t *Tensor[T]) Assign(value *array.Array[T]) error {
	v, ok := t.op.(*graph.Variable[T])
	if !ok {
		return graph.ErrInvalidMutation(t.op.Name())
	}
	return v.Assign(value)
}

// AssignAdd adds delta into a variable tensor's value in place, with
// the same failure modes as Assign.
func (t *Tensor[T]) AssignAdd(delta *array.Array[T]) error {
	v, ok := t.op.(*graph.Variable[T])
	if !ok {
		return graph.ErrInvalidMutation(t.op.Name())
	}
	return v.AssignAdd(delta)
}

// IsInvalidMutation reports whether err came from assigning to a
// non-variable tensor.
func IsInvalidMutation(err error) bool {
	return graph.IsInvalidMutation(err)
}

// IsMissingPlaceholder reports whether err came from evaluating with a
// placeholder absent from the feed.
func IsMissingPlaceholder(err error) bool {
	return graph.IsMissingPlaceholder(err)
}

// IsPlaceholderShape reports whether err came from feeding a value
// whose shape differs from the placeholder's declared shape.
func IsPlaceholderShape(err error) bool {
	return graph.IsPlaceholderShape(err)
}

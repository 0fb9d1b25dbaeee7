// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/gradix-ml/gradix/internal/array"
	"github.com/gradix-ml/gradix/internal/graph"
)

// AllAxes selects every axis for reduction, collapsing the tensor to a
// single element.
const AllAxes = array.AllAxes

// ReduceSum builds a tensor summing t along axis (AllAxes sums
// everything). With keepDims the reduced axis keeps length 1.
func ReduceSum[T Float](t *Tensor[T], axis int, keepDims bool) *Tensor[T] {
	return wrap(graph.NewReduceSum(t.op, axis, keepDims))
}

// ReduceMean builds a tensor averaging t along axis (AllAxes averages
// everything). The divisor is the reduced axis's length, or the total
// element count with AllAxes.
func ReduceMean[T Float](t *Tensor[T], axis int, keepDims bool) *Tensor[T] {
	return wrap(graph.NewReduceMean(t.op, axis, keepDims))
}

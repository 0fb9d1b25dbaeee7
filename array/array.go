// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array is the public interface to gradix's dense
// n-dimensional arrays.
//
// It re-exports the internal array engine: shapes, broadcasting
// elementwise arithmetic, matrix multiplication, reductions and
// read-only views. See the graph-building package tensor for deferred,
// differentiable computation over these arrays.
package array

import iarray "github.com/gradix-ml/gradix/internal/array"

// Float constrains the element types arrays can hold.
type Float = iarray.Float

// Array is a dense n-dimensional array with a flat row-major buffer.
type Array[T Float] = iarray.Array[T]

// Shape describes the dimensions of an array.
type Shape = iarray.Shape

// ShapeError reports incompatible or invalid operand shapes.
type ShapeError = iarray.ShapeError

// View is a read-only selection of a region of an array.
type View[T Float] = iarray.View[T]

// Slice selects elements along one axis of a view.
type Slice = iarray.Slice

// AllAxes selects every axis of an array for reduction.
const AllAxes = iarray.AllAxes

// New creates an array of the given shape with every element set to value.
func New[T Float](value T, shape Shape) (*Array[T], error) {
	return iarray.New(value, shape)
}

// FromSlice creates an array from a flat buffer; the buffer is copied
// and its length must match the shape's element count.
func FromSlice[T Float](data []T, shape Shape) (*Array[T], error) {
	return iarray.FromSlice(data, shape)
}

// Zeros creates an array of the given shape filled with zeros.
func Zeros[T Float](shape Shape) (*Array[T], error) {
	return iarray.Zeros[T](shape)
}

// Ones creates an array of the given shape filled with ones.
func Ones[T Float](shape Shape) (*Array[T], error) {
	return iarray.Ones[T](shape)
}

// Full creates an array of the given shape filled with value.
func Full[T Float](value T, shape Shape) (*Array[T], error) {
	return iarray.Full(value, shape)
}

// BroadcastShapes computes the shape two arrays broadcast to, or a
// ShapeError when they are incompatible.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return iarray.BroadcastShapes(a, b)
}

// ReduceShape computes the shape a reduction over axis produces.
func ReduceShape(shape Shape, axis int, keepDims bool) (Shape, error) {
	return iarray.ReduceShape(shape, axis, keepDims)
}

// IsShapeError reports whether err wraps a ShapeError.
func IsShapeError(err error) bool {
	return iarray.IsShapeError(err)
}

// Index selects a single position along an axis, dropping the axis from
// the view's shape.
func Index(i int) Slice {
	return iarray.Index(i)
}

// Range selects the half-open interval [start, end) along an axis.
func Range(start, end int) Slice {
	return iarray.Range(start, end)
}

// From selects [start, len) along an axis.
func From(start int) Slice {
	return iarray.From(start)
}

// To selects [0, end) along an axis.
func To(end int) Slice {
	return iarray.To(end)
}

// All selects the whole axis.
func All() Slice {
	return iarray.All()
}

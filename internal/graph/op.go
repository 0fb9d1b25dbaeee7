// Package graph implements a lazy computational graph over arrays:
// source nodes hold or receive values, operator nodes derive them, and
// the engine provides memoized forward evaluation plus reverse-mode
// gradient accumulation.
//
// Nodes are identified by pointer: two nodes are the same node exactly
// when they are the same allocation. Every cache and gradient map in
// this package is keyed on that identity.
package graph

import "github.com/gradix-ml/gradix/internal/array"

// Feed supplies values for placeholders during one evaluation, keyed by
// placeholder id.
type Feed[T array.Float] map[string]*array.Array[T]

// Cache memoizes node values within a single evaluation pass.
type Cache[T array.Float] map[Op[T]]*array.Array[T]

// Op is a node of the computational graph.
//
// Compute and AccumGrad receive the evaluation's cache so repeated
// subexpressions are evaluated once per pass.
type Op[T array.Float] interface {
	// Name returns the node kind, e.g. "Add" or "Variable".
	Name() string

	// Inputs returns the node's direct inputs, empty for sources.
	Inputs() []Op[T]

	// Shape returns the node's result shape without evaluating it.
	Shape() (array.Shape, error)

	// Compute evaluates the node. Implementations obtain input values
	// through Value so the cache is consulted first.
	Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error)

	// AccumGrad maps the gradient accumulated at this node onto one of
	// its inputs: given d(root)/d(this) it returns the contribution to
	// d(root)/d(child). Returns (nil, nil) when child is not an input.
	AccumGrad(feed Feed[T], cache Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error)
}

// Value returns op's value for this evaluation, computing and caching
// it on first use. The returned array is a copy; callers may mutate it.
func Value[T array.Float](op Op[T], feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	if v, ok := cache[op]; ok {
		return v.Clone(), nil
	}
	v, err := op.Compute(feed, cache)
	if err != nil {
		return nil, err
	}
	cache[op] = v
	return v.Clone(), nil
}

// Eval evaluates op with a fresh cache.
func Eval[T array.Float](op Op[T], feed Feed[T]) (*array.Array[T], error) {
	return Value(op, feed, make(Cache[T]))
}

// wrapperOp seeds the gradient walk: it sits above the root so the root
// itself receives a gradient through the same AccumGrad path as every
// other node.
type wrapperOp[T array.Float] struct {
	inner Op[T]
}

func (w *wrapperOp[T]) Name() string { return "Wrapper" }

func (w *wrapperOp[T]) Inputs() []Op[T] { return []Op[T]{w.inner} }

func (w *wrapperOp[T]) Shape() (array.Shape, error) { return w.inner.Shape() }

func (w *wrapperOp[T]) Compute(feed Feed[T], cache Cache[T]) (*array.Array[T], error) {
	return Value(w.inner, feed, cache)
}

func (w *wrapperOp[T]) AccumGrad(_ Feed[T], _ Cache[T], child Op[T], grad *array.Array[T]) (*array.Array[T], error) {
	if child != w.inner {
		return nil, nil
	}
	return grad.Clone(), nil
}

// Grad computes d(root)/d(target) by reverse accumulation.
//
// The walk starts from an all-ones gradient of the root's shape and
// pushes (child, parent) pairs onto an explicit stack; each pop maps
// the parent's accumulated gradient onto the child and sums it into the
// child's slot. The walk never expands below target, so gradients flow
// into it but not through it. Returns (nil, nil) when target is not
// reachable from root.
func Grad[T array.Float](root, target Op[T], feed Feed[T]) (*array.Array[T], error) {
	rootShape, err := root.Shape()
	if err != nil {
		return nil, err
	}
	ones, err := array.Ones[T](rootShape)
	if err != nil {
		return nil, err
	}
	if root == target {
		return ones, nil
	}

	cache := make(Cache[T])
	accum := make(Cache[T])
	var wrapper Op[T] = &wrapperOp[T]{inner: root}
	accum[wrapper] = ones

	type edge struct {
		child  Op[T]
		parent Op[T]
	}
	stack := []edge{{child: root, parent: wrapper}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		g, err := e.parent.AccumGrad(feed, cache, e.child, accum[e.parent])
		if err != nil {
			return nil, err
		}
		if g != nil {
			if acc, ok := accum[e.child]; ok {
				if err := acc.AddAssign(g); err != nil {
					return nil, err
				}
			} else {
				accum[e.child] = g
			}
		}
		if e.child != target {
			for _, c := range e.child.Inputs() {
				stack = append(stack, edge{child: c, parent: e.child})
			}
		}
	}
	return accum[target], nil
}

// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim implements gradient-descent optimizers over tensor
// variables.
//
// An optimizer owns a set of variable tensors and, on each Step,
// differentiates a loss tensor with respect to every one of them and
// applies its update rule in place through AssignAdd. Variables the
// loss does not depend on are left untouched.
//
//	opt := optim.NewSGD([]*tensor.Tensor[float32]{w, b}, optim.SGDConfig{LR: 0.01})
//	for range epochs {
//	    if err := opt.Step(loss, feed); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"github.com/gradix-ml/gradix/array"
	"github.com/gradix-ml/gradix/tensor"
)

// Optimizer is the interface shared by all update rules.
type Optimizer[T tensor.Float] interface {
	// Step differentiates loss with respect to every managed variable
	// and applies one update.
	Step(loss *tensor.Tensor[T], feed tensor.Feed[T]) error

	// LR returns the current learning rate.
	LR() float64
}

// paramGrad differentiates loss with respect to p and folds the result
// down to p's shape. A variable broadcast during the forward pass (a
// bias added across a batch, for instance) receives its gradient in the
// broadcast result's shape; summing over the broadcast dimensions
// recovers the per-parameter gradient. Returns nil when loss does not
// depend on p.
func paramGrad[T tensor.Float](loss, p *tensor.Tensor[T], feed tensor.Feed[T]) (*array.Array[T], error) {
	g, err := loss.Grad(p, feed)
	if err != nil || g == nil {
		return nil, err
	}
	shape, err := p.Shape()
	if err != nil {
		return nil, err
	}
	for len(g.Shape()) > len(shape) {
		if g, err = g.ReduceSum(0, false); err != nil {
			return nil, err
		}
	}
	for i, dim := range shape {
		if g.Shape()[i] != dim {
			if g, err = g.ReduceSum(i, true); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

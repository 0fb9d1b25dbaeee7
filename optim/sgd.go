// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/gradix-ml/gradix/array"
	"github.com/gradix-ml/gradix/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[T tensor.Float] struct {
	params     []*tensor.Tensor[T]
	lr         float64
	momentum   float64
	velocities map[*tensor.Tensor[T]]*array.Array[T]
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // learning rate (default 0.01)
	Momentum float64 // momentum factor, 0 disables it
}

// NewSGD creates an SGD optimizer over the given variable tensors.
func NewSGD[T tensor.Float](params []*tensor.Tensor[T], config SGDConfig) *SGD[T] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[T]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*tensor.Tensor[T]]*array.Array[T]),
	}
}

// Step differentiates loss with respect to every managed variable and
// applies one descent update.
func (s *SGD[T]) Step(loss *tensor.Tensor[T], feed tensor.Feed[T]) error {
	for _, p := range s.params {
		g, err := paramGrad(loss, p, feed)
		if err != nil {
			return err
		}
		if g == nil {
			continue
		}
		if s.momentum != 0 {
			v, ok := s.velocities[p]
			if !ok {
				shape, err := p.Shape()
				if err != nil {
					return err
				}
				if v, err = array.Zeros[T](shape); err != nil {
					return err
				}
				s.velocities[p] = v
			}
			v.MulAssignScalar(T(s.momentum))
			if err := v.AddAssign(g); err != nil {
				return err
			}
			g = v.Clone()
		}
		if err := p.AssignAdd(g.MulScalar(T(-s.lr))); err != nil {
			return err
		}
	}
	return nil
}

// LR returns the learning rate.
func (s *SGD[T]) LR() float64 {
	return s.lr
}

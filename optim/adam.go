// Copyright 2025 The Gradix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"math"

	"github.com/gradix-ml/gradix/array"
	"github.com/gradix-ml/gradix/tensor"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2014).
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient^2
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
type Adam[T tensor.Float] struct {
	params []*tensor.Tensor[T]
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int
	m      map[*tensor.Tensor[T]]*array.Array[T]
	v      map[*tensor.Tensor[T]]*array.Array[T]
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // learning rate (default 0.001)
	Betas [2]float64 // moment decay rates (default 0.9, 0.999)
	Eps   float64    // numerical stability term (default 1e-8)
}

// NewAdam creates an Adam optimizer over the given variable tensors.
func NewAdam[T tensor.Float](params []*tensor.Tensor[T], config AdamConfig) *Adam[T] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam[T]{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*tensor.Tensor[T]]*array.Array[T]),
		v:      make(map[*tensor.Tensor[T]]*array.Array[T]),
	}
}

// Step differentiates loss with respect to every managed variable and
// applies one bias-corrected adaptive update.
func (a *Adam[T]) Step(loss *tensor.Tensor[T], feed tensor.Feed[T]) error {
	a.t++
	mCorr := 1 - math.Pow(a.beta1, float64(a.t))
	vCorr := 1 - math.Pow(a.beta2, float64(a.t))

	for _, p := range a.params {
		g, err := paramGrad(loss, p, feed)
		if err != nil {
			return err
		}
		if g == nil {
			continue
		}
		m, v, err := a.moments(p)
		if err != nil {
			return err
		}

		m.MulAssignScalar(T(a.beta1))
		if err := m.AddAssign(g.MulScalar(T(1 - a.beta1))); err != nil {
			return err
		}
		v.MulAssignScalar(T(a.beta2))
		gSq, err := g.Mul(g)
		if err != nil {
			return err
		}
		if err := v.AddAssign(gSq.MulScalar(T(1 - a.beta2))); err != nil {
			return err
		}

		mHat := m.DivScalar(T(mCorr))
		vHat := v.DivScalar(T(vCorr))
		denom := vHat.Map(func(x T) T { return T(math.Sqrt(float64(x))) }).AddScalar(T(a.eps))
		update, err := mHat.Div(denom)
		if err != nil {
			return err
		}
		if err := p.AssignAdd(update.MulScalar(T(-a.lr))); err != nil {
			return err
		}
	}
	return nil
}

// moments returns the parameter's first and second moment buffers,
// creating zeroed ones on first use.
func (a *Adam[T]) moments(p *tensor.Tensor[T]) (*array.Array[T], *array.Array[T], error) {
	if m, ok := a.m[p]; ok {
		return m, a.v[p], nil
	}
	shape, err := p.Shape()
	if err != nil {
		return nil, nil, err
	}
	m, err := array.Zeros[T](shape)
	if err != nil {
		return nil, nil, err
	}
	v, err := array.Zeros[T](shape)
	if err != nil {
		return nil, nil, err
	}
	a.m[p] = m
	a.v[p] = v
	return m, v, nil
}

// LR returns the learning rate.
func (a *Adam[T]) LR() float64 {
	return a.lr
}

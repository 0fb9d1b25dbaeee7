package graph

import "github.com/gradix-ml/gradix/internal/array"

// Variable is a source node holding mutable state that persists across
// evaluations. Assign and AssignAdd change the stored array in place,
// so every graph referencing the node sees the new value on its next
// evaluation without rebuilding anything.
type Variable[T array.Float] struct {
	value *array.Array[T]
}

// NewVariable creates a variable initialized with a copy of init.
func NewVariable[T array.Float](init *array.Array[T]) *Variable[T] {
	return &Variable[T]{value: init.Clone()}
}

func (v *Variable[T]) Name() string { return "Variable" }

func (v *Variable[T]) Inputs() []Op[T] { return nil }

func (v *Variable[T]) Shape() (array.Shape, error) { return v.value.Shape(), nil }

func (v *Variable[T]) Compute(_ Feed[T], _ Cache[T]) (*array.Array[T], error) {
	return v.value.Clone(), nil
}

func (v *Variable[T]) AccumGrad(_ Feed[T], _ Cache[T], _ Op[T], _ *array.Array[T]) (*array.Array[T], error) {
	return nil, nil
}

// Assign replaces the variable's value. The new value must have the
// variable's shape.
func (v *Variable[T]) Assign(value *array.Array[T]) error {
	if !v.value.Shape().Equal(value.Shape()) {
		return array.Errorf("cannot assign shape %v to variable of shape %v", value.Shape(), v.value.Shape())
	}
	v.value = value.Clone()
	return nil
}

// AssignAdd adds delta into the variable's value in place. The delta
// must have the variable's shape.
func (v *Variable[T]) AssignAdd(delta *array.Array[T]) error {
	if !v.value.Shape().Equal(delta.Shape()) {
		return array.Errorf("cannot assign-add shape %v to variable of shape %v", delta.Shape(), v.value.Shape())
	}
	return v.value.AddAssign(delta)
}

// Placeholder is a source node whose value arrives through the feed at
// evaluation time. The declared shape is enforced against every fed
// value.
type Placeholder[T array.Float] struct {
	id    string
	shape array.Shape
}

// NewPlaceholder creates a placeholder identified by id with a declared
// shape.
func NewPlaceholder[T array.Float](id string, shape array.Shape) *Placeholder[T] {
	return &Placeholder[T]{id: id, shape: shape.Clone()}
}

func (p *Placeholder[T]) Name() string { return "Placeholder" }

// ID returns the feed key the placeholder resolves through.
func (p *Placeholder[T]) ID() string { return p.id }

func (p *Placeholder[T]) Inputs() []Op[T] { return nil }

func (p *Placeholder[T]) Shape() (array.Shape, error) { return p.shape.Clone(), nil }

func (p *Placeholder[T]) Compute(feed Feed[T], _ Cache[T]) (*array.Array[T], error) {
	v, ok := feed[p.id]
	if !ok {
		return nil, errMissingPlaceholder(p.id)
	}
	if !v.Shape().Equal(p.shape) {
		return nil, errPlaceholderShape(p.id, p.shape.Clone(), v.Shape())
	}
	return v.Clone(), nil
}

func (p *Placeholder[T]) AccumGrad(_ Feed[T], _ Cache[T], _ Op[T], _ *array.Array[T]) (*array.Array[T], error) {
	return nil, nil
}

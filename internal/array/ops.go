package array

// binaryOp applies f elementwise under broadcasting and returns a fresh
// array of the broadcast shape.
func (a *Array[T]) binaryOp(b *Array[T], f func(T, T) T) (*Array[T], error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	trailing := matchingTrailingDims(a.shape, b.shape)
	it, err := newBroadcastIterator(a, b, trailing)
	if err != nil {
		return nil, err
	}
	out := make([]T, shape.NumElements())
	pos := 0
	for {
		sa, sb, ok := it.next()
		if !ok {
			break
		}
		dst := out[pos : pos+len(sa)]
		for i := range dst {
			dst[i] = f(sa[i], sb[i])
		}
		pos += len(sa)
	}
	return &Array[T]{shape: shape, data: out}, nil
}

// binaryOpAssign applies f elementwise in place. Broadcasting may grow
// the receiver to the broadcast shape.
func (a *Array[T]) binaryOpAssign(b *Array[T], f func(T, T) T) error {
	out, err := a.binaryOp(b, f)
	if err != nil {
		return err
	}
	a.shape = out.shape
	a.data = out.data
	return nil
}

// Add returns the elementwise sum of two arrays under broadcasting.
func (a *Array[T]) Add(b *Array[T]) (*Array[T], error) {
	return a.binaryOp(b, func(x, y T) T { return x + y })
}

// Sub returns the elementwise difference of two arrays under broadcasting.
func (a *Array[T]) Sub(b *Array[T]) (*Array[T], error) {
	return a.binaryOp(b, func(x, y T) T { return x - y })
}

// Mul returns the elementwise product of two arrays under broadcasting.
func (a *Array[T]) Mul(b *Array[T]) (*Array[T], error) {
	return a.binaryOp(b, func(x, y T) T { return x * y })
}

// Div returns the elementwise quotient of two arrays under broadcasting.
func (a *Array[T]) Div(b *Array[T]) (*Array[T], error) {
	return a.binaryOp(b, func(x, y T) T { return x / y })
}

// AddAssign adds b into the receiver in place.
func (a *Array[T]) AddAssign(b *Array[T]) error {
	return a.binaryOpAssign(b, func(x, y T) T { return x + y })
}

// SubAssign subtracts b from the receiver in place.
func (a *Array[T]) SubAssign(b *Array[T]) error {
	return a.binaryOpAssign(b, func(x, y T) T { return x - y })
}

// MulAssign multiplies the receiver by b in place.
func (a *Array[T]) MulAssign(b *Array[T]) error {
	return a.binaryOpAssign(b, func(x, y T) T { return x * y })
}

// DivAssign divides the receiver by b in place.
func (a *Array[T]) DivAssign(b *Array[T]) error {
	return a.binaryOpAssign(b, func(x, y T) T { return x / y })
}

// Map returns a fresh array with f applied to every element.
func (a *Array[T]) Map(f func(T) T) *Array[T] {
	out := a.Clone()
	out.MapAssign(f)
	return out
}

// MapAssign applies f to every element in place.
func (a *Array[T]) MapAssign(f func(T) T) {
	for i, v := range a.data {
		a.data[i] = f(v)
	}
}

// AddScalar returns a fresh array with s added to every element.
func (a *Array[T]) AddScalar(s T) *Array[T] {
	return a.Map(func(x T) T { return x + s })
}

// SubScalar returns a fresh array with s subtracted from every element.
func (a *Array[T]) SubScalar(s T) *Array[T] {
	return a.Map(func(x T) T { return x - s })
}

// MulScalar returns a fresh array with every element multiplied by s.
func (a *Array[T]) MulScalar(s T) *Array[T] {
	return a.Map(func(x T) T { return x * s })
}

// DivScalar returns a fresh array with every element divided by s.
func (a *Array[T]) DivScalar(s T) *Array[T] {
	return a.Map(func(x T) T { return x / s })
}

// AddAssignScalar adds s to every element in place.
func (a *Array[T]) AddAssignScalar(s T) {
	a.MapAssign(func(x T) T { return x + s })
}

// SubAssignScalar subtracts s from every element in place.
func (a *Array[T]) SubAssignScalar(s T) {
	a.MapAssign(func(x T) T { return x - s })
}

// MulAssignScalar multiplies every element by s in place.
func (a *Array[T]) MulAssignScalar(s T) {
	a.MapAssign(func(x T) T { return x * s })
}

// DivAssignScalar divides every element by s in place.
func (a *Array[T]) DivAssignScalar(s T) {
	a.MapAssign(func(x T) T { return x / s })
}

// Neg returns a fresh array with every element negated.
func (a *Array[T]) Neg() *Array[T] {
	return a.Map(func(x T) T { return -x })
}

// NegAssign negates every element in place.
func (a *Array[T]) NegAssign() {
	a.MapAssign(func(x T) T { return -x })
}

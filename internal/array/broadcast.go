package array

// broadcastIterator walks two arrays in lockstep under broadcasting
// without materializing replicated data. The trailing dims of both
// shapes are treated as an opaque contiguous block; the remaining
// leading dims are left-padded with ones, checked for compatibility and
// iterated in row-major order. Each step yields one contiguous slice
// from each array, re-yielding slices wherever a padded dimension is 1.
type broadcastIterator[T Float] struct {
	a, b      *Array[T]
	prefixA   Shape
	prefixB   Shape
	result    Shape
	sliceLenA int
	sliceLenB int
	index     []int
	done      bool
}

func newBroadcastIterator[T Float](a, b *Array[T], trailingDims int) (*broadcastIterator[T], error) {
	if trailingDims > len(a.shape) || trailingDims > len(b.shape) {
		return nil, errShapef("cannot split off %d trailing dimensions from shapes %v and %v",
			trailingDims, a.shape, b.shape)
	}
	maxLen := max(len(a.shape), len(b.shape)) - trailingDims

	it := &broadcastIterator[T]{
		a:         a,
		b:         b,
		prefixA:   paddedPrefix(a.shape, trailingDims, maxLen),
		prefixB:   paddedPrefix(b.shape, trailingDims, maxLen),
		sliceLenA: trailingLen(a.shape, trailingDims),
		sliceLenB: trailingLen(b.shape, trailingDims),
	}
	it.result = make(Shape, maxLen)
	for i := range maxLen {
		da, db := it.prefixA[i], it.prefixB[i]
		if da != db && da != 1 && db != 1 {
			return nil, errShapef("cannot broadcast shapes %v and %v: dimensions %d and %d are incompatible",
				a.shape, b.shape, da, db)
		}
		it.result[i] = max(da, db)
	}
	it.index = make([]int, maxLen)
	return it, nil
}

// paddedPrefix drops the trailing dims and left-pads with ones up to length n.
func paddedPrefix(shape Shape, trailingDims, n int) Shape {
	prefix := shape[:len(shape)-trailingDims]
	out := make(Shape, n)
	for i := range n - len(prefix) {
		out[i] = 1
	}
	copy(out[n-len(prefix):], prefix)
	return out
}

func trailingLen(shape Shape, trailingDims int) int {
	n := 1
	for _, dim := range shape[len(shape)-trailingDims:] {
		n *= dim
	}
	return n
}

// next yields the pair of slices for the current broadcast step, or
// ok=false once all steps are exhausted.
func (it *broadcastIterator[T]) next() (sliceA, sliceB []T, ok bool) {
	if it.done {
		return nil, nil, false
	}
	if len(it.index) == 0 {
		it.done = true
		return it.a.data, it.b.data, true
	}
	offA := it.sliceOffset(it.prefixA, it.sliceLenA)
	offB := it.sliceOffset(it.prefixB, it.sliceLenB)
	sliceA = it.a.data[offA : offA+it.sliceLenA]
	sliceB = it.b.data[offB : offB+it.sliceLenB]
	it.advance()
	return sliceA, sliceB, true
}

// sliceOffset maps the current result-space index into one array's flat
// buffer, skipping dimensions of size 1 so they re-yield the same slice.
func (it *broadcastIterator[T]) sliceOffset(prefix Shape, sliceLen int) int {
	off := 0
	stride := sliceLen
	for i := len(prefix) - 1; i >= 0; i-- {
		if it.index[i] < prefix[i] {
			off += it.index[i] * stride
		}
		stride *= prefix[i]
	}
	return off
}

// advance increments the result-space index in row-major order.
func (it *broadcastIterator[T]) advance() {
	it.index[len(it.index)-1]++
	for i := len(it.index) - 1; i >= 0; i-- {
		if i == 0 && it.index[0] == it.result[0] {
			it.done = true
		}
		if it.index[i] == it.result[i] && i != 0 {
			it.index[i] = 0
			it.index[i-1]++
		}
	}
}

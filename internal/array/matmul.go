package array

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// MatMul returns the batched matrix product of two arrays. The last two
// dimensions of each operand form the matrices; leading dimensions are
// batch dimensions and broadcast against each other.
func (a *Array[T]) MatMul(b *Array[T]) (*Array[T], error) {
	outShape, err := BroadcastMatMulShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	m := a.shape[len(a.shape)-2]
	k := a.shape[len(a.shape)-1]
	n := b.shape[len(b.shape)-1]

	it, err := newBroadcastIterator(a, b, 2)
	if err != nil {
		return nil, err
	}
	out := make([]T, outShape.NumElements())
	pos := 0
	for {
		sa, sb, ok := it.next()
		if !ok {
			break
		}
		gemm(m, n, k, sa, sb, out[pos:pos+m*n])
		pos += m * n
	}
	return &Array[T]{shape: outShape, data: out}, nil
}

// gemm computes dst = a(m x k) * b(k x n) for one batch slice. float32
// and float64 dispatch to gonum's BLAS kernels; named float types fall
// back to the naive triple loop.
func gemm[T Float](m, n, k int, a, b, dst []T) {
	switch av := any(a).(type) {
	case []float32:
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: m, Cols: k, Stride: k, Data: av},
			blas32.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float32)},
			0,
			blas32.General{Rows: m, Cols: n, Stride: n, Data: any(dst).([]float32)})
	case []float64:
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: m, Cols: k, Stride: k, Data: av},
			blas64.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float64)},
			0,
			blas64.General{Rows: m, Cols: n, Stride: n, Data: any(dst).([]float64)})
	default:
		for i := range m {
			for j := range n {
				var sum T
				for p := range k {
					sum += a[i*k+p] * b[p*n+j]
				}
				dst[i*n+j] = sum
			}
		}
	}
}

// Transpose returns a fresh array with the last two dimensions swapped.
// Leading dimensions are treated as batch dimensions.
func (a *Array[T]) Transpose() (*Array[T], error) {
	if len(a.shape) < 2 {
		return nil, errShapef("transpose requires at least 2 dimensions, got shape %v", a.shape)
	}
	rows := a.shape[len(a.shape)-2]
	cols := a.shape[len(a.shape)-1]
	sliceLen := rows * cols

	out := make([]T, len(a.data))
	for off := 0; off < len(a.data); off += sliceLen {
		transpose2d(rows, cols, a.data[off:off+sliceLen], out[off:off+sliceLen])
	}
	outShape := a.shape.Clone()
	outShape[len(outShape)-2] = cols
	outShape[len(outShape)-1] = rows
	return &Array[T]{shape: outShape, data: out}, nil
}

// TransposeAssign swaps the last two dimensions in place.
func (a *Array[T]) TransposeAssign() error {
	out, err := a.Transpose()
	if err != nil {
		return err
	}
	a.shape = out.shape
	a.data = out.data
	return nil
}

func transpose2d[T Float](rows, cols int, src, dst []T) {
	for i := range rows {
		for j := range cols {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
}

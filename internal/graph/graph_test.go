package graph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradix-ml/gradix/internal/array"
	"github.com/gradix-ml/gradix/internal/graph"
)

func variable(t *testing.T, value float64, shape array.Shape) *graph.Variable[float64] {
	t.Helper()
	a, err := array.New(value, shape)
	require.NoError(t, err)
	return graph.NewVariable(a)
}

func assertAllEqual(t *testing.T, want float64, a *array.Array[float64], shape array.Shape) {
	t.Helper()
	require.Equal(t, shape, a.Shape())
	for _, v := range a.Data() {
		assert.Equal(t, want, v)
	}
}

func assertAllInDelta(t *testing.T, want float64, a *array.Array[float64], shape array.Shape) {
	t.Helper()
	require.Equal(t, shape, a.Shape())
	for _, v := range a.Data() {
		assert.InDelta(t, want, v, 1e-7)
	}
}

func TestVariableEval(t *testing.T) {
	v := variable(t, 3, array.Shape{2, 2})

	got, err := graph.Eval[float64](v, nil)
	require.NoError(t, err)
	assertAllEqual(t, 3, got, array.Shape{2, 2})
}

func TestAddEvalAndGrad(t *testing.T) {
	a := variable(t, 1, array.Shape{2, 2, 3})
	b := variable(t, 2, array.Shape{2, 2, 3})
	sum := graph.NewAdd[float64](a, b)

	got, err := graph.Eval(sum, nil)
	require.NoError(t, err)
	assertAllEqual(t, 3, got, array.Shape{2, 2, 3})

	ga, err := graph.Grad(sum, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 1, ga, array.Shape{2, 2, 3})

	gb, err := graph.Grad(sum, graph.Op[float64](b), nil)
	require.NoError(t, err)
	assertAllEqual(t, 1, gb, array.Shape{2, 2, 3})
}

func TestSelfGradientIsOnes(t *testing.T) {
	a := variable(t, 5, array.Shape{2, 3, 2})

	g, err := graph.Grad(graph.Op[float64](a), graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 1, g, array.Shape{2, 3, 2})
}

func TestUnreachableTargetHasNoGradient(t *testing.T) {
	a := variable(t, 1, array.Shape{2, 2})
	b := variable(t, 2, array.Shape{2, 2})
	sum := graph.NewAdd[float64](a, a)

	g, err := graph.Grad(sum, graph.Op[float64](b), nil)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestSubGrad(t *testing.T) {
	a := variable(t, 5, array.Shape{2, 2})
	b := variable(t, 3, array.Shape{2, 2})
	diff := graph.NewSub[float64](a, b)

	got, err := graph.Eval(diff, nil)
	require.NoError(t, err)
	assertAllEqual(t, 2, got, array.Shape{2, 2})

	ga, err := graph.Grad(diff, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 1, ga, array.Shape{2, 2})

	gb, err := graph.Grad(diff, graph.Op[float64](b), nil)
	require.NoError(t, err)
	assertAllEqual(t, -1, gb, array.Shape{2, 2})
}

func TestMulGrad(t *testing.T) {
	a := variable(t, 3, array.Shape{2, 2})
	b := variable(t, 4, array.Shape{2, 2})
	prod := graph.NewMul[float64](a, b)

	ga, err := graph.Grad(prod, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 4, ga, array.Shape{2, 2})

	gb, err := graph.Grad(prod, graph.Op[float64](b), nil)
	require.NoError(t, err)
	assertAllEqual(t, 3, gb, array.Shape{2, 2})
}

func TestDivGrad(t *testing.T) {
	a := variable(t, 6, array.Shape{2, 2})
	b := variable(t, 2, array.Shape{2, 2})
	quot := graph.NewDiv[float64](a, b)

	got, err := graph.Eval(quot, nil)
	require.NoError(t, err)
	assertAllEqual(t, 3, got, array.Shape{2, 2})

	// d(x/y)/dx = 1/y, d(x/y)/dy = -x/y^2
	ga, err := graph.Grad(quot, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllInDelta(t, 0.5, ga, array.Shape{2, 2})

	gb, err := graph.Grad(quot, graph.Op[float64](b), nil)
	require.NoError(t, err)
	assertAllInDelta(t, -1.5, gb, array.Shape{2, 2})
}

func TestScalarOps(t *testing.T) {
	a := variable(t, 4, array.Shape{2, 2})

	tests := []struct {
		name     string
		node     graph.Op[float64]
		wantEval float64
		wantGrad float64
	}{
		{"AddScalar", graph.NewAddScalar[float64](a, 3), 7, 1},
		{"SubScalar", graph.NewSubScalar[float64](a, 3), 1, 1},
		{"MulScalar", graph.NewMulScalar[float64](a, 3), 12, 3},
		{"DivScalar", graph.NewDivScalar[float64](a, 4), 1, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := graph.Eval(tt.node, nil)
			require.NoError(t, err)
			assertAllInDelta(t, tt.wantEval, got, array.Shape{2, 2})

			g, err := graph.Grad(tt.node, graph.Op[float64](a), nil)
			require.NoError(t, err)
			assertAllInDelta(t, tt.wantGrad, g, array.Shape{2, 2})
		})
	}
}

func TestNegEvalAndGrad(t *testing.T) {
	a := variable(t, 1, array.Shape{2, 3, 2})
	neg := graph.NewNeg[float64](a)

	got, err := graph.Eval(neg, nil)
	require.NoError(t, err)
	assertAllEqual(t, -1, got, array.Shape{2, 3, 2})

	g, err := graph.Grad(neg, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, -1, g, array.Shape{2, 3, 2})
}

func TestMatMulEvalAndGrad(t *testing.T) {
	a := variable(t, 1, array.Shape{2, 3, 2})
	b := variable(t, 2, array.Shape{2, 2, 4})
	c := variable(t, 1, array.Shape{2, 2})
	mm := graph.NewMatMul[float64](a, b)

	got, err := graph.Eval(mm, nil)
	require.NoError(t, err)
	assertAllEqual(t, 4, got, array.Shape{2, 3, 4})

	ga, err := graph.Grad(mm, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 8, ga, array.Shape{2, 3, 2})

	gb, err := graph.Grad(mm, graph.Op[float64](b), nil)
	require.NoError(t, err)
	assertAllEqual(t, 3, gb, array.Shape{2, 2, 4})

	gc, err := graph.Grad(mm, graph.Op[float64](c), nil)
	require.NoError(t, err)
	assert.Nil(t, gc)
}

func TestPlaceholderFeed(t *testing.T) {
	p := graph.NewPlaceholder[float64]("x", array.Shape{2, 2, 4})
	value, err := array.New(7.0, array.Shape{2, 2, 4})
	require.NoError(t, err)

	got, err := graph.Eval[float64](p, graph.Feed[float64]{"x": value})
	require.NoError(t, err)
	assertAllEqual(t, 7, got, array.Shape{2, 2, 4})
}

func TestPlaceholderMissingFeed(t *testing.T) {
	p := graph.NewPlaceholder[float64]("x", array.Shape{2, 2, 4})

	_, err := graph.Eval[float64](p, nil)
	require.Error(t, err)
	assert.True(t, graph.IsMissingPlaceholder(err))
}

func TestPlaceholderShapeMismatch(t *testing.T) {
	p := graph.NewPlaceholder[float64]("x", array.Shape{2, 2, 4})
	bad, err := array.New(1.0, array.Shape{2, 2, 5})
	require.NoError(t, err)

	_, err = graph.Eval[float64](p, graph.Feed[float64]{"x": bad})
	require.Error(t, err)
	assert.True(t, graph.IsPlaceholderShape(err))
}

func TestFanOutAccumulatesGradients(t *testing.T) {
	// e = (a+a)*a = 2a^2, de/da = 4a.
	a := variable(t, 1, array.Shape{1})
	e := graph.NewMul[float64](graph.NewAdd[float64](a, a), a)

	got, err := graph.Eval(e, nil)
	require.NoError(t, err)
	assertAllEqual(t, 2, got, array.Shape{1})

	g, err := graph.Grad(e, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 4, g, array.Shape{1})
}

func TestGradStopsAtTarget(t *testing.T) {
	// d(b)/d(b) where b = a*a must be ones even though b has inputs;
	// the walk must not descend past the target.
	a := variable(t, 3, array.Shape{2})
	b := graph.NewMul[float64](a, a)
	root := graph.NewAddScalar[float64](b, 1)

	g, err := graph.Grad(root, b, nil)
	require.NoError(t, err)
	assertAllEqual(t, 1, g, array.Shape{2})
}

func TestMapOpsEvalAndGrad(t *testing.T) {
	const x = 0.5
	a := variable(t, x, array.Shape{2, 2})

	tests := []struct {
		name     string
		node     graph.Op[float64]
		wantEval float64
		wantGrad float64
	}{
		{"Sin", graph.NewSin[float64](a), math.Sin(x), math.Cos(x)},
		{"Cos", graph.NewCos[float64](a), math.Cos(x), -math.Sin(x)},
		{"Ln", graph.NewLn[float64](a), math.Log(x), 1 / x},
		{"Exp", graph.NewExp[float64](a), math.Exp(x), math.Exp(x)},
		{"Tanh", graph.NewTanh[float64](a), math.Tanh(x), 1 - math.Tanh(x)*math.Tanh(x)},
		{
			"Sigmoid", graph.NewSigmoid[float64](a),
			1 / (1 + math.Exp(-x)),
			math.Exp(-x) / ((1 + math.Exp(-x)) * (1 + math.Exp(-x))),
		},
		{"ReLU", graph.NewReLU[float64](a), x, 1},
		{"Pow", graph.NewPow[float64](a, 3), x * x * x, 3 * x * x},
		{"Log", graph.NewLog[float64](a, 2), math.Log2(x), 1 / (x * math.Ln2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := graph.Eval(tt.node, nil)
			require.NoError(t, err)
			assertAllInDelta(t, tt.wantEval, got, array.Shape{2, 2})

			g, err := graph.Grad(tt.node, graph.Op[float64](a), nil)
			require.NoError(t, err)
			assertAllInDelta(t, tt.wantGrad, g, array.Shape{2, 2})
		})
	}
}

func TestReLUNegativeSide(t *testing.T) {
	a := variable(t, -2, array.Shape{3})
	relu := graph.NewReLU[float64](a)

	got, err := graph.Eval(relu, nil)
	require.NoError(t, err)
	assertAllEqual(t, 0, got, array.Shape{3})

	g, err := graph.Grad(relu, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 0, g, array.Shape{3})
}

func TestReduceSumEvalAndGrad(t *testing.T) {
	init, err := array.FromSlice([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, array.Shape{2, 3, 2})
	require.NoError(t, err)
	a := graph.NewVariable(init)

	sum := graph.NewReduceSum[float64](a, 1, false)
	got, err := graph.Eval(sum, nil)
	require.NoError(t, err)
	require.Equal(t, array.Shape{2, 2}, got.Shape())
	assert.Equal(t, []float64{6, 9, 24, 27}, got.Data())

	// d(sum)/d(a) is all ones, also for a mid-tensor axis without
	// keepDims.
	g, err := graph.Grad(sum, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 1, g, array.Shape{2, 3, 2})

	all := graph.NewReduceSum[float64](a, array.AllAxes, false)
	got, err = graph.Eval(all, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{66}, got.Data())

	g, err = graph.Grad(all, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllEqual(t, 1, g, array.Shape{2, 3, 2})
}

func TestReduceMeanEvalAndGrad(t *testing.T) {
	init, err := array.FromSlice([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, array.Shape{2, 3, 2})
	require.NoError(t, err)
	a := graph.NewVariable(init)

	mean := graph.NewReduceMean[float64](a, 1, true)
	got, err := graph.Eval(mean, nil)
	require.NoError(t, err)
	require.Equal(t, array.Shape{2, 1, 2}, got.Shape())
	assert.Equal(t, []float64{2, 3, 8, 9}, got.Data())

	g, err := graph.Grad(mean, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllInDelta(t, 1.0/3, g, array.Shape{2, 3, 2})

	all := graph.NewReduceMean[float64](a, array.AllAxes, false)
	got, err = graph.Eval(all, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{5.5}, got.Data())

	g, err = graph.Grad(all, graph.Op[float64](a), nil)
	require.NoError(t, err)
	assertAllInDelta(t, 1.0/12, g, array.Shape{2, 3, 2})
}

func TestVariableAssignVisibleOnNextEval(t *testing.T) {
	a := variable(t, 1, array.Shape{2, 2})
	doubled := graph.NewMulScalar[float64](a, 2)

	got, err := graph.Eval(doubled, nil)
	require.NoError(t, err)
	assertAllEqual(t, 2, got, array.Shape{2, 2})

	next, err := array.New(5.0, array.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, a.Assign(next))

	got, err = graph.Eval(doubled, nil)
	require.NoError(t, err)
	assertAllEqual(t, 10, got, array.Shape{2, 2})

	delta, err := array.New(1.0, array.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, a.AssignAdd(delta))

	got, err = graph.Eval(doubled, nil)
	require.NoError(t, err)
	assertAllEqual(t, 12, got, array.Shape{2, 2})
}

func TestVariableAssignShapeMismatch(t *testing.T) {
	a := variable(t, 1, array.Shape{2, 2})
	bad, err := array.New(1.0, array.Shape{3})
	require.NoError(t, err)

	err = a.Assign(bad)
	require.Error(t, err)
	assert.True(t, array.IsShapeError(err))

	err = a.AssignAdd(bad)
	require.Error(t, err)
	assert.True(t, array.IsShapeError(err))
}

// countingOp wraps a node and counts Compute calls, exposing whether
// the per-call cache actually memoizes shared subgraphs.
type countingOp struct {
	graph.Op[float64]
	computes int
}

func (c *countingOp) Compute(feed graph.Feed[float64], cache graph.Cache[float64]) (*array.Array[float64], error) {
	c.computes++
	return c.Op.Compute(feed, cache)
}

func TestEvalMemoizesSharedSubgraph(t *testing.T) {
	a := variable(t, 2, array.Shape{2})
	shared := &countingOp{Op: graph.NewMulScalar[float64](a, 3)}
	root := graph.NewAdd[float64](shared, shared)

	got, err := graph.Eval(root, nil)
	require.NoError(t, err)
	assertAllEqual(t, 12, got, array.Shape{2})
	assert.Equal(t, 1, shared.computes)

	// A second Eval uses a fresh cache.
	_, err = graph.Eval(root, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, shared.computes)
}

func TestCompositeExpression(t *testing.T) {
	initA, err := array.FromSlice(
		[]float64{2, 3, 4, 5, 10, 12, 2, 6, 12, 10, 23, 12}, array.Shape{2, 3, 2})
	require.NoError(t, err)
	a := graph.NewVariable(initA)
	b := variable(t, 3, array.Shape{2, 2, 4})
	c := graph.NewPlaceholder[float64]("test", array.Shape{2, 3, 4})

	phValue, err := array.New(17.0, array.Shape{2, 3, 4})
	require.NoError(t, err)
	feed := graph.Feed[float64]{"test": phValue}

	// (a @ b + 3) * c / 5
	result := graph.NewDivScalar[float64](
		graph.NewMul[float64](
			graph.NewAddScalar[float64](graph.NewMatMul[float64](a, b), 3), c), 5)

	got, err := graph.Eval(result, feed)
	require.NoError(t, err)
	require.Equal(t, array.Shape{2, 3, 4}, got.Shape())
	wantEval := []float64{
		61.2, 61.2, 61.2, 61.2,
		102, 102, 102, 102,
		234.6, 234.6, 234.6, 234.6,
		91.8, 91.8, 91.8, 91.8,
		234.6, 234.6, 234.6, 234.6,
		367.2, 367.2, 367.2, 367.2,
	}
	for i, want := range wantEval {
		assert.InDelta(t, want, got.Data()[i], 1e-7)
	}

	ga, err := graph.Grad(result, graph.Op[float64](a), feed)
	require.NoError(t, err)
	assertAllInDelta(t, 40.8, ga, array.Shape{2, 3, 2})

	gb, err := graph.Grad(result, graph.Op[float64](b), feed)
	require.NoError(t, err)
	require.Equal(t, array.Shape{2, 2, 4}, gb.Shape())
	wantGradB := []float64{
		54.4, 54.4, 54.4, 54.4,
		68, 68, 68, 68,
		125.8, 125.8, 125.8, 125.8,
		95.2, 95.2, 95.2, 95.2,
	}
	for i, want := range wantGradB {
		assert.InDelta(t, want, gb.Data()[i], 1e-6)
	}

	gc, err := graph.Grad(result, graph.Op[float64](c), feed)
	require.NoError(t, err)
	require.Equal(t, array.Shape{2, 3, 4}, gc.Shape())
	wantGradC := []float64{
		3.6, 3.6, 3.6, 3.6,
		6, 6, 6, 6,
		13.8, 13.8, 13.8, 13.8,
		5.4, 5.4, 5.4, 5.4,
		13.8, 13.8, 13.8, 13.8,
		21.6, 21.6, 21.6, 21.6,
	}
	for i, want := range wantGradC {
		assert.InDelta(t, want, gc.Data()[i], 1e-7)
	}
}

package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/polarize/schema"
)

func groupTable(pis, ys []float64) *schema.Table {
	tbl := schema.NewTable("pi", "y")
	for i := range pis {
		_ = tbl.AppendValues(pis[i], ys[i])
	}
	return tbl
}

func rateTable(rates []float64) *schema.Table {
	tbl := schema.NewTable("rate")
	for _, r := range rates {
		_ = tbl.AppendValues(r)
	}
	return tbl
}

func TestEstebanRayTwoGroups(t *testing.T) {
	// Two equal groups one unit apart: each ordered pair with i != j
	// contributes 0.5^(1+a) * 0.5 * 1.
	tbl := groupTable([]float64{0.5, 0.5}, []float64{0, 1})

	got, err := EstebanRay(tbl, 0, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)

	got, err = EstebanRay(tbl, 1, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-12)
}

func TestEstebanRayRowOrderInvariance(t *testing.T) {
	pis := []float64{0.2, 0.5, 0.3}
	ys := []float64{1, 4, 2}
	forward := groupTable(pis, ys)
	reversed := groupTable([]float64{0.3, 0.5, 0.2}, []float64{2, 4, 1})

	a, err := EstebanRay(forward, 1.3, nil)
	require.NoError(t, err)
	b, err := EstebanRay(reversed, 1.3, nil)
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-12)
}

func TestEstebanRayNormalize(t *testing.T) {
	// Doubling all proportions scales the raw sum by 2^(2+a); the
	// normalized value matches the unit-mass table.
	unit := groupTable([]float64{0.5, 0.5}, []float64{0, 1})
	doubled := groupTable([]float64{1, 1}, []float64{0, 1})

	want, err := EstebanRay(unit, 0.8, nil)
	require.NoError(t, err)

	got, err := EstebanRay(doubled, 0.8, &EstebanRayConfig{Normalize: true})
	require.NoError(t, err)
	assert.InDelta(t, want/math.Pow(1, 2+0.8), got/1, 1e-12)

	raw, err := EstebanRay(doubled, 0.8, nil)
	require.NoError(t, err)
	assert.InDelta(t, raw/math.Pow(2, 2+0.8), got, 1e-12)
}

func TestEstebanRayNormalizeZeroMass(t *testing.T) {
	tbl := groupTable([]float64{0, 0}, []float64{0, 1})
	_, err := EstebanRay(tbl, 0.5, &EstebanRayConfig{Normalize: true})
	assert.ErrorIs(t, err, ErrDegenerateComputation)
}

func TestEstebanRayColumnOverrides(t *testing.T) {
	tbl := schema.NewTable("weight", "position")
	_ = tbl.AppendValues(0.5, 0.0)
	_ = tbl.AppendValues(0.5, 1.0)

	got, err := EstebanRay(tbl, 0, &EstebanRayConfig{Pi: "weight", Y: "position"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestEstebanRayInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		tbl  *schema.Table
	}{
		{"empty table", schema.NewTable("pi", "y")},
		{"missing pi column", func() *schema.Table {
			tbl := schema.NewTable("y")
			_ = tbl.AppendValues(1.0)
			return tbl
		}()},
		{"non-numeric cell", func() *schema.Table {
			tbl := schema.NewTable("pi", "y")
			_ = tbl.AppendValues("half", 1.0)
			return tbl
		}()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EstebanRay(tc.tbl, 0.5, nil)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestReynalQuerol(t *testing.T) {
	tests := []struct {
		name  string
		rates []float64
		want  float64
	}{
		{"even two-way split", []float64{0.5, 0.5}, 1.0},
		{"single group captures all", []float64{1.0}, 0.0},
		{"degenerate zero rate pair", []float64{0.0, 1.0}, 0.0},
		{"four groups", []float64{0.4, 0.3, 0.2, 0.1}, 0.8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReynalQuerol(rateTable(tc.rates), nil)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestReynalQuerolBounds(t *testing.T) {
	// For two-group probability input, 0.5/0.5 is the unique maximum.
	peak, err := ReynalQuerol(rateTable([]float64{0.5, 0.5}), nil)
	require.NoError(t, err)
	for _, p := range []float64{0.1, 0.25, 0.49, 0.7, 0.95} {
		got, err := ReynalQuerol(rateTable([]float64{p, 1 - p}), nil)
		require.NoError(t, err)
		assert.Less(t, got, peak)
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestReynalQuerolMissingColumn(t *testing.T) {
	tbl := schema.NewTable("share")
	_ = tbl.AppendValues(0.5)
	_, err := ReynalQuerol(tbl, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWangTsui(t *testing.T) {
	// Mean is 2; each group deviates by 1, weighted by 0.5, over the mean.
	tbl := groupTable([]float64{0.5, 0.5}, []float64{1, 3})
	got, err := WangTsui(tbl, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

func TestWangTsuiUniformPositions(t *testing.T) {
	tbl := groupTable([]float64{0.3, 0.7}, []float64{2, 2})
	got, err := WangTsui(tbl, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)
}

func TestWangTsuiZeroMeanIsDegenerate(t *testing.T) {
	tbl := groupTable([]float64{0.5, 0.5}, []float64{1, -1})
	_, err := WangTsui(tbl, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateComputation))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func BenchmarkEstebanRay(b *testing.B) {
	pis := make([]float64, 500)
	ys := make([]float64, 500)
	for i := range pis {
		pis[i] = 1.0 / 500
		ys[i] = float64(i % 10)
	}
	tbl := groupTable(pis, ys)

	for b.Loop() {
		if _, err := EstebanRay(tbl, 1.0, nil); err != nil {
			b.Fatal(err)
		}
	}
}

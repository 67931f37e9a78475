package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/schema"
)

func shareTable(shares []float64) *schema.Table {
	tbl := schema.NewTable("share")
	for _, s := range shares {
		_ = tbl.AppendValues(s)
	}
	return tbl
}

func TestBlaisLago(t *testing.T) {
	// D'Hondt over [5000, 3000, 2000] with 5 seats yields [3, 1, 1],
	// so the top-two margin is 2 seats out of 5.
	tbl := partyTable([]string{"A", "B", "C"}, []float64{5000, 3000, 2000})
	got, details, err := BlaisLago(tbl, 5, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got, 1e-12)

	require.Equal(t, 3, details.Len())
	assert.Equal(t, "A", details.Label(0, "party"))
	seats, _ := details.Float(0, "seats")
	assert.Equal(t, 3.0, seats)
}

func TestBlaisLagoSingleParty(t *testing.T) {
	tbl := partyTable([]string{"A"}, []float64{1000})
	got, _, err := BlaisLago(tbl, 4, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)
}

func TestBlaisLagoEvenSplit(t *testing.T) {
	// Equal votes and an even seat count give a zero seat margin.
	tbl := partyTable([]string{"A", "B"}, []float64{100, 100})
	got, _, err := BlaisLago(tbl, 4, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestBlaisLagoInvalidSeats(t *testing.T) {
	tbl := partyTable([]string{"A"}, []float64{100})
	_, _, err := BlaisLago(tbl, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGrofmanSelb(t *testing.T) {
	tests := []struct {
		name   string
		shares []float64
		want   float64
	}{
		{"two-way tie", []float64{0.5, 0.5}, 1.0},
		{"dominant leader", []float64{0.6, 0.3, 0.1}, 0.1 / 0.24},
		{"unopposed leader", []float64{1.0}, 0.0},
		{"leader with zero challengers", []float64{0.7, 0.0, 0.0}, 0.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GrofmanSelb(shareTable(tc.shares), nil)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestGrofmanSelbBounds(t *testing.T) {
	cases := [][]float64{
		{0.4, 0.35, 0.25},
		{0.9, 0.05, 0.05},
		{0.34, 0.33, 0.33},
		{10, 5, 3, 2},
	}
	for _, shares := range cases {
		got, err := GrofmanSelb(shareTable(shares), nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestGrofmanSelbErrors(t *testing.T) {
	_, err := GrofmanSelb(shareTable([]float64{0.5, -0.1}), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GrofmanSelb(shareTable([]float64{0, 0}), nil)
	assert.ErrorIs(t, err, ErrDegenerateComputation)
}

func TestLaaksoTaagepera(t *testing.T) {
	tests := []struct {
		name   string
		shares []float64
		want   float64
	}{
		{"two equal parties", []float64{0.5, 0.5}, 2.0},
		{"single party", []float64{1.0}, 1.0},
		{"four equal parties", []float64{0.25, 0.25, 0.25, 0.25}, 4.0},
		{"uneven field", []float64{0.6, 0.3, 0.1}, 1.0 / 0.46},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LaaksoTaagepera(shareTable(tc.shares), nil)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestLaaksoTaageperaRawShares(t *testing.T) {
	// Shares are used as given: no renormalization. [2, 2] yields
	// 1 / (4 + 4) = 0.125, not the 2.0 a proportion rescale would give.
	got, err := LaaksoTaagepera(shareTable([]float64{2, 2}), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.125, got, 1e-12)
}

func TestLaaksoTaageperaBounds(t *testing.T) {
	// 1 <= ENP <= k, with the maximum only at perfectly equal shares.
	cases := [][]float64{
		{0.7, 0.2, 0.1},
		{0.5, 0.25, 0.25},
		{0.99, 0.005, 0.005},
	}
	for _, shares := range cases {
		got, err := LaaksoTaagepera(shareTable(shares), nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 1.0)
		assert.Less(t, got, float64(len(shares)))
	}
}

func TestLaaksoTaageperaDefaultAlpha(t *testing.T) {
	// A zero alpha resolves to the conventional exponent constant.
	resolved := (&LaaksoTaageperaConfig{}).withDefaults()
	assert.Equal(t, contract.DefaultENPAlpha, resolved.Alpha)

	var nilCfg *LaaksoTaageperaConfig
	assert.Equal(t, contract.DefaultENPAlpha, nilCfg.withDefaults().Alpha)
}

func TestLaaksoTaageperaCustomAlpha(t *testing.T) {
	// Any alpha keeps equal shares at exactly k.
	got, err := LaaksoTaagepera(shareTable([]float64{0.5, 0.5}), &LaaksoTaageperaConfig{Alpha: 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestLaaksoTaageperaErrors(t *testing.T) {
	_, err := LaaksoTaagepera(shareTable([]float64{0.5, 0.5}), &LaaksoTaageperaConfig{Alpha: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LaaksoTaagepera(shareTable([]float64{-0.5, 1.5}), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LaaksoTaagepera(shareTable([]float64{0, 0}), nil)
	assert.ErrorIs(t, err, ErrDegenerateComputation)
}

func TestGiniIndex(t *testing.T) {
	tests := []struct {
		name   string
		shares []float64
		want   float64
	}{
		{"perfect equality", []float64{5, 5, 5, 5}, 0.0},
		{"linear spread", []float64{1, 2, 3, 4}, 0.25},
		{"single holder", []float64{0, 0, 0, 10}, 0.75},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GiniIndex(shareTable(tc.shares), nil)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestGiniIndexErrors(t *testing.T) {
	_, err := GiniIndex(shareTable([]float64{0, 0}), nil)
	assert.ErrorIs(t, err, ErrDegenerateComputation)

	_, err = GiniIndex(schema.NewTable("share"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

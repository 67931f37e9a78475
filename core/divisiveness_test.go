package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/polarize/schema"
)

func electionTable(rows [][3]any) *schema.Table {
	tbl := schema.NewTable("unit", "candidate", "votes")
	for _, r := range rows {
		_ = tbl.AppendValues(r[0], r[1], r[2])
	}
	return tbl
}

// polarizedElection is the fully split two-unit race: each candidate takes
// 100% of one unit and 0% of the other.
func polarizedElection() *schema.Table {
	return electionTable([][3]any{
		{"1", "A", 100.0},
		{"1", "B", 0.0},
		{"2", "A", 0.0},
		{"2", "B", 100.0},
	})
}

// contestedElection is a two-unit race where both candidates compete
// everywhere. Expected values below are computed by hand from the
// antagonism formulas.
func contestedElection() *schema.Table {
	return electionTable([][3]any{
		{"1", "X", 100.0},
		{"1", "Y", 50.0},
		{"2", "X", 60.0},
		{"2", "Y", 90.0},
	})
}

func TestWithinEPFullySplit(t *testing.T) {
	got, details, err := WithinEP(polarizedElection(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	require.Equal(t, 2, details.Len())
	assert.Equal(t, []string{"candidate", "weight", "antagonism"}, details.Columns())
	for i := 0; i < details.Len(); i++ {
		w, _ := details.Float(i, "weight")
		a, _ := details.Float(i, "antagonism")
		assert.InDelta(t, 0.5, w, 1e-12)
		assert.InDelta(t, 0.5, a, 1e-12)
	}
}

func TestBetweenEPFullySplit(t *testing.T) {
	got, details, err := BetweenEP(polarizedElection(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)
	assert.Equal(t, 2, details.Len())
}

func TestDivisivenessContestedRace(t *testing.T) {
	within, _, err := WithinEP(contestedElection(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/15.0, within, 1e-12)

	between, _, err := BetweenEP(contestedElection(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 617.0/840.0, between, 1e-12)

	total, details, err := ElectoralDivisiveness(contestedElection(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 841.0/840.0, total, 1e-12)
	assert.Equal(t, []string{"candidate", "weight", "within", "between"}, details.Columns())

	// Per-candidate breakdown from the same hand computation.
	wantWithin := map[string]float64{"X": 2.0 / 15.0, "Y": 2.0 / 15.0}
	wantBetween := map[string]float64{"X": 43.0 / 120.0, "Y": 79.0 / 210.0}
	for i := 0; i < details.Len(); i++ {
		cand := details.Label(i, "candidate")
		w, _ := details.Float(i, "within")
		b, _ := details.Float(i, "between")
		assert.InDelta(t, wantWithin[cand], w, 1e-12)
		assert.InDelta(t, wantBetween[cand], b, 1e-12)
	}
}

func TestDivisivenessAdditivity(t *testing.T) {
	tables := map[string]*schema.Table{
		"fully split": polarizedElection(),
		"contested":   contestedElection(),
		"sparse": electionTable([][3]any{
			{"1", "A", 100.0},
			{"1", "B", 50.0},
			{"2", "A", 80.0},
			{"3", "B", 20.0},
			{"3", "C", 40.0},
		}),
	}
	for name, tbl := range tables {
		t.Run(name, func(t *testing.T) {
			within, _, err := WithinEP(tbl, nil)
			require.NoError(t, err)
			between, _, err := BetweenEP(tbl, nil)
			require.NoError(t, err)
			total, _, err := ElectoralDivisiveness(tbl, nil)
			require.NoError(t, err)
			assert.InDelta(t, within+between, total, 1e-12)
		})
	}
}

func TestDivisivenessExplicitScoreMatchesDerived(t *testing.T) {
	// Scores spelled out as votes over unit totals must reproduce the
	// derived-score result exactly.
	withScore := schema.NewTable("unit", "candidate", "votes", "score")
	_ = withScore.AppendValues("1", "X", 100.0, 100.0/150.0)
	_ = withScore.AppendValues("1", "Y", 50.0, 50.0/150.0)
	_ = withScore.AppendValues("2", "X", 60.0, 0.4)
	_ = withScore.AppendValues("2", "Y", 90.0, 0.6)

	want, _, err := ElectoralDivisiveness(contestedElection(), nil)
	require.NoError(t, err)
	got, _, err := ElectoralDivisiveness(withScore, nil)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)
}

func TestDivisivenessSingleCandidate(t *testing.T) {
	tbl := electionTable([][3]any{
		{"1", "A", 100.0},
		{"2", "A", 80.0},
	})
	total, details, err := ElectoralDivisiveness(tbl, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, total, 1e-12)
	assert.Equal(t, 1, details.Len())
}

func TestBetweenEPSingleUnit(t *testing.T) {
	tbl := electionTable([][3]any{
		{"1", "A", 60.0},
		{"1", "B", 40.0},
	})
	got, _, err := BetweenEP(tbl, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12)
}

func TestDivisivenessColumnOverrides(t *testing.T) {
	tbl := schema.NewTable("district", "person", "ballots")
	_ = tbl.AppendValues("1", "A", 100.0)
	_ = tbl.AppendValues("1", "B", 0.0)
	_ = tbl.AppendValues("2", "A", 0.0)
	_ = tbl.AppendValues("2", "B", 100.0)

	got, _, err := WithinEP(tbl, &DivisivenessConfig{
		Unit: "district", Candidate: "person", Votes: "ballots",
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestDivisivenessInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		tbl  *schema.Table
	}{
		{"empty table", schema.NewTable("unit", "candidate", "votes")},
		{"missing votes column", func() *schema.Table {
			tbl := schema.NewTable("unit", "candidate")
			_ = tbl.AppendValues("1", "A")
			return tbl
		}()},
		{"duplicate unit candidate pair", electionTable([][3]any{
			{"1", "A", 10.0},
			{"1", "A", 20.0},
		})},
		{"zero total unit", electionTable([][3]any{
			{"1", "A", 0.0},
			{"1", "B", 0.0},
		})},
		{"non-numeric votes", electionTable([][3]any{
			{"1", "A", "many"},
		})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ElectoralDivisiveness(tc.tbl, nil)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDivisivenessDoesNotMutateInput(t *testing.T) {
	tbl := contestedElection()
	before := tbl.Clone()
	_, _, err := ElectoralDivisiveness(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, before, tbl)
}

func BenchmarkElectoralDivisiveness(b *testing.B) {
	tbl := schema.NewTable("unit", "candidate", "votes")
	for u := 0; u < 50; u++ {
		for c := 0; c < 10; c++ {
			_ = tbl.AppendValues(
				string(rune('a'+u%26))+string(rune('0'+u/26)),
				string(rune('A'+c)),
				float64(100+u*c),
			)
		}
	}

	for b.Loop() {
		if _, _, err := ElectoralDivisiveness(tbl, nil); err != nil {
			b.Fatal(err)
		}
	}
}

package core

import (
	"math"

	"github.com/huangsam/polarize/schema"
)

// electionPivot is the candidates-by-units view of a long-format election
// table. present marks which (candidate, unit) cells the input actually
// carried; absent cells are skipped, never imputed as zero.
type electionPivot struct {
	candidates      []string
	units           []string
	votes           [][]float64
	scores          [][]float64
	present         [][]bool
	candidateTotals []float64
	grandTotal      float64
}

// pivotElection validates and reshapes a long-format table. Scores come
// from the score column when the table carries one; otherwise each
// present cell scores votes over the unit total. The branch is resolved
// once here, not per row.
func pivotElection(data *schema.Table, c DivisivenessConfig) (*electionPivot, error) {
	if err := requireTable(data, c.Unit, c.Candidate, c.Votes); err != nil {
		return nil, err
	}
	hasScore := data.HasColumn(c.Score)

	units := labelColumn(data, c.Unit)
	candidates := labelColumn(data, c.Candidate)
	votes, err := floatColumn(data, c.Votes)
	if err != nil {
		return nil, err
	}
	var scores []float64
	if hasScore {
		if scores, err = floatColumn(data, c.Score); err != nil {
			return nil, err
		}
	}

	p := &electionPivot{}
	unitIdx := map[string]int{}
	candIdx := map[string]int{}
	for i := range units {
		if _, ok := unitIdx[units[i]]; !ok {
			unitIdx[units[i]] = len(p.units)
			p.units = append(p.units, units[i])
		}
		if _, ok := candIdx[candidates[i]]; !ok {
			candIdx[candidates[i]] = len(p.candidates)
			p.candidates = append(p.candidates, candidates[i])
		}
	}

	nc, nu := len(p.candidates), len(p.units)
	p.votes = make([][]float64, nc)
	p.scores = make([][]float64, nc)
	p.present = make([][]bool, nc)
	for ci := range p.votes {
		p.votes[ci] = make([]float64, nu)
		p.scores[ci] = make([]float64, nu)
		p.present[ci] = make([]bool, nu)
	}

	unitTotals := make([]float64, nu)
	for i := range units {
		ci, ui := candIdx[candidates[i]], unitIdx[units[i]]
		if p.present[ci][ui] {
			return nil, invalidInputf("duplicate entry for unit %q candidate %q", units[i], candidates[i])
		}
		p.present[ci][ui] = true
		p.votes[ci][ui] = votes[i]
		if hasScore {
			p.scores[ci][ui] = scores[i]
		}
		unitTotals[ui] += votes[i]
	}

	for ui, total := range unitTotals {
		if total == 0 {
			return nil, invalidInputf("unit %q has zero total votes", p.units[ui])
		}
	}

	if !hasScore {
		for ci := range p.candidates {
			for ui := range p.units {
				if p.present[ci][ui] {
					p.scores[ci][ui] = p.votes[ci][ui] / unitTotals[ui]
				}
			}
		}
	}

	p.candidateTotals = make([]float64, nc)
	for ci := range p.candidates {
		for ui := range p.units {
			p.candidateTotals[ci] += p.votes[ci][ui]
		}
		p.grandTotal += p.candidateTotals[ci]
	}
	return p, nil
}

// candidateWeight is the candidate's share of the grand vote total.
func (p *electionPivot) candidateWeight(ci int) float64 {
	if p.grandTotal == 0 {
		return 0
	}
	return p.candidateTotals[ci] / p.grandTotal
}

// withinAntagonism returns per-candidate within-unit antagonism: the
// vote-weighted deviation of the candidate's unit scores from its global
// weight, scaled by (N-1) rivals and the candidate's vote total.
// A lone candidate or a zero-vote candidate contributes 0.
func (p *electionPivot) withinAntagonism() []float64 {
	n := len(p.candidates)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	for ci := range p.candidates {
		vc := p.candidateTotals[ci]
		if vc == 0 {
			continue
		}
		wc := p.candidateWeight(ci)
		var sum float64
		for ui := range p.units {
			if p.present[ci][ui] {
				sum += p.votes[ci][ui] * math.Abs(p.scores[ci][ui]-wc)
			}
		}
		out[ci] = sum / (float64(n-1) * vc)
	}
	return out
}

// betweenAntagonism returns per-candidate between-candidate antagonism:
// vote-weighted closeness of the candidate's unit scores to each rival's,
// over cells where both are present. With a single distinct unit there is
// no cross-unit variation to attribute, so every candidate gets 0; the
// same holds for a lone or zero-vote candidate.
func (p *electionPivot) betweenAntagonism() []float64 {
	n := len(p.candidates)
	out := make([]float64, n)
	if n < 2 || len(p.units) < 2 {
		return out
	}
	for ci := range p.candidates {
		vc := p.candidateTotals[ci]
		if vc == 0 {
			continue
		}
		var sum float64
		for ki := range p.candidates {
			if ki == ci {
				continue
			}
			for ui := range p.units {
				if p.present[ci][ui] && p.present[ki][ui] {
					sum += p.votes[ci][ui] * (1 - math.Abs(p.scores[ci][ui]-p.scores[ki][ui]))
				}
			}
		}
		out[ci] = sum / (float64(n) * float64(n-1) * vc)
	}
	return out
}

// WithinEP computes within-unit antagonism summed over candidates. The
// details table has one row per candidate: candidate, weight, antagonism.
func WithinEP(data *schema.Table, cfg *DivisivenessConfig) (float64, *schema.Table, error) {
	c := cfg.withDefaults()
	p, err := pivotElection(data, c)
	if err != nil {
		return 0, nil, err
	}

	within := p.withinAntagonism()
	details := schema.NewTable("candidate", "weight", "antagonism")
	var total float64
	for ci, cand := range p.candidates {
		total += within[ci]
		_ = details.AppendValues(cand, p.candidateWeight(ci), within[ci])
	}
	return total, details, nil
}

// BetweenEP computes between-candidate antagonism summed over candidates.
// The details table has one row per candidate: candidate, antagonism.
func BetweenEP(data *schema.Table, cfg *DivisivenessConfig) (float64, *schema.Table, error) {
	c := cfg.withDefaults()
	p, err := pivotElection(data, c)
	if err != nil {
		return 0, nil, err
	}

	between := p.betweenAntagonism()
	details := schema.NewTable("candidate", "antagonism")
	var total float64
	for ci, cand := range p.candidates {
		total += between[ci]
		_ = details.AppendValues(cand, between[ci])
	}
	return total, details, nil
}

// ElectoralDivisiveness computes within plus between antagonism from a
// single pivot, so the additivity holds exactly. The details table has
// one row per candidate: candidate, weight, within, between.
func ElectoralDivisiveness(data *schema.Table, cfg *DivisivenessConfig) (float64, *schema.Table, error) {
	c := cfg.withDefaults()
	p, err := pivotElection(data, c)
	if err != nil {
		return 0, nil, err
	}

	within := p.withinAntagonism()
	between := p.betweenAntagonism()
	details := schema.NewTable("candidate", "weight", "within", "between")
	var total float64
	for ci, cand := range p.candidates {
		total += within[ci] + between[ci]
		_ = details.AppendValues(cand, p.candidateWeight(ci), within[ci], between[ci])
	}
	return total, details, nil
}

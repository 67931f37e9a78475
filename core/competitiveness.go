package core

import (
	"math"

	"github.com/huangsam/polarize/schema"
)

// shareColumn extracts a share column, rejecting negative entries and
// flagging an all-zero column as degenerate.
func shareColumn(data *schema.Table, col string) ([]float64, error) {
	if err := requireTable(data, col); err != nil {
		return nil, err
	}
	shares, err := floatColumn(data, col)
	if err != nil {
		return nil, err
	}
	var total float64
	for i, s := range shares {
		if s < 0 {
			return nil, invalidInputf("column %q row %d is negative", col, i)
		}
		total += s
	}
	if total == 0 {
		return nil, degeneratef("all shares are zero")
	}
	return shares, nil
}

// BlaisLago computes Blais-Lago competitiveness: seats are allocated by
// D'Hondt, then
//
//	C = 1 - (seats1 - seats2) / nSeats
//
// where seats1 and seats2 are the two largest seat counts (seats2 is 0
// with a single party). Closer races score higher; C is in [0, 1].
// Details: one row per party with votes and seats, seats descending.
func BlaisLago(data *schema.Table, nSeats int, cfg *BlaisLagoConfig) (float64, *schema.Table, error) {
	c := cfg.withDefaults()
	parties, votes, err := partyVotes(data, c.Party, c.Votes)
	if err != nil {
		return 0, nil, err
	}
	seats, err := dhondtSeats(votes, nSeats)
	if err != nil {
		return 0, nil, err
	}

	details := allocationTable(parties, votes, seats)
	top, _ := details.Float(0, "seats")
	second := 0.0
	if details.Len() > 1 {
		second, _ = details.Float(1, "seats")
	}
	return 1 - (top-second)/float64(nSeats), details, nil
}

// GrofmanSelb computes the Grofman-Selb competitiveness of the challenger
// field against the leading entity:
//
//	C = sum_{i != L} s_i^2 / ((S - s_L) * s_L)
//
// where L is the largest share (earliest in input order on ties) and S
// the share sum. C is in [0, 1]: 1 for a two-way tie, 0 when the leader
// is unopposed (the 0/0 case resolves to 0).
func GrofmanSelb(data *schema.Table, cfg *GrofmanSelbConfig) (float64, error) {
	c := cfg.withDefaults()
	shares, err := shareColumn(data, c.Share)
	if err != nil {
		return 0, err
	}

	leader := 0
	var total float64
	for i, s := range shares {
		if s > shares[leader] {
			leader = i
		}
		total += s
	}

	rest := total - shares[leader]
	if rest == 0 {
		return 0, nil
	}
	var sumSq float64
	for i, s := range shares {
		if i != leader {
			sumSq += s * s
		}
	}
	return sumSq / (rest * shares[leader]), nil
}

// LaaksoTaagepera computes the effective number of parties:
//
//	ENP = (sum_i s_i^alpha)^(1/(1-alpha))
//
// over the shares as given, with the conventional alpha of 2 giving
// 1 / sum s^2. Shares are not renormalized; inputs that do not sum to 1
// still compute, they just lose the usual [1, k] interpretation.
// Alpha 1 makes the exponent undefined.
func LaaksoTaagepera(data *schema.Table, cfg *LaaksoTaageperaConfig) (float64, error) {
	c := cfg.withDefaults()
	if c.Alpha == 1 {
		return 0, invalidInputf("alpha 1 is undefined for the effective number of parties")
	}
	shares, err := shareColumn(data, c.Share)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, s := range shares {
		sum += math.Pow(s, c.Alpha)
	}
	return math.Pow(sum, 1/(1-c.Alpha)), nil
}

// GiniIndex computes the Gini index of share concentration: the mean
// absolute pairwise difference over twice the mean. 0 means perfect
// equality; values approach 1 as concentration grows.
func GiniIndex(data *schema.Table, cfg *GiniConfig) (float64, error) {
	c := cfg.withDefaults()
	shares, err := shareColumn(data, c.Share)
	if err != nil {
		return 0, err
	}

	var sumDiff, sum float64
	for _, a := range shares {
		sum += a
		for _, b := range shares {
			sumDiff += math.Abs(a - b)
		}
	}
	n := float64(len(shares))
	mean := sum / n
	return sumDiff / (2 * n * n * mean), nil
}

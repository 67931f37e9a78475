package core

import (
	"math"
	"sort"

	"github.com/huangsam/polarize/schema"
)

// partyVotes extracts the party and vote columns, rejecting duplicate
// party names and negative vote counts.
func partyVotes(data *schema.Table, partyCol, votesCol string) ([]string, []float64, error) {
	if err := requireTable(data, partyCol, votesCol); err != nil {
		return nil, nil, err
	}
	parties := labelColumn(data, partyCol)
	votes, err := floatColumn(data, votesCol)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool, len(parties))
	for i, party := range parties {
		if seen[party] {
			return nil, nil, invalidInputf("duplicate party %q", party)
		}
		seen[party] = true
		if votes[i] < 0 {
			return nil, nil, invalidInputf("party %q has negative votes", party)
		}
	}
	return parties, votes, nil
}

// dhondtSeats runs the highest-averages loop: each seat goes to the party
// with the largest votes/(seats+1) quotient. Strict comparison keeps ties
// with the earliest party in input order.
func dhondtSeats(votes []float64, nSeats int) ([]int, error) {
	if nSeats <= 0 {
		return nil, invalidInputf("seat count must be positive, got %d", nSeats)
	}
	var total float64
	for _, v := range votes {
		total += v
	}
	if total == 0 {
		return nil, invalidInputf("all vote counts are zero")
	}

	seats := make([]int, len(votes))
	for s := 0; s < nSeats; s++ {
		best, bestQ := -1, -1.0
		for i, v := range votes {
			q := v / float64(seats[i]+1)
			if q > bestQ {
				best, bestQ = i, q
			}
		}
		seats[best]++
	}
	return seats, nil
}

// allocationTable assembles the party/votes/seats details table, ordered
// by seats descending with input order preserved among equals.
func allocationTable(parties []string, votes []float64, seats []int) *schema.Table {
	order := make([]int, len(parties))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return seats[order[a]] > seats[order[b]]
	})

	details := schema.NewTable("party", "votes", "seats")
	for _, i := range order {
		_ = details.AppendValues(parties[i], votes[i], float64(seats[i]))
	}
	return details
}

// DHondt allocates nSeats seats by the D'Hondt highest-averages method.
// The seat column always sums to nSeats exactly. Equal quotients resolve
// to the earliest party in input order.
func DHondt(data *schema.Table, nSeats int, cfg *DHondtConfig) (*schema.Table, error) {
	c := cfg.withDefaults()
	parties, votes, err := partyVotes(data, c.Party, c.Votes)
	if err != nil {
		return nil, err
	}
	seats, err := dhondtSeats(votes, nSeats)
	if err != nil {
		return nil, err
	}
	return allocationTable(parties, votes, seats), nil
}

// Proportional allocates nSeats seats by largest remainder under the
// configured quota. Hare uses total/nSeats; Droop uses
// floor(total/(nSeats+1))+1, which never floor-allocates past nSeats.
// Remainder ties resolve to the earliest party in input order.
func Proportional(data *schema.Table, nSeats int, cfg *ProportionalConfig) (*schema.Table, error) {
	c := cfg.withDefaults()
	if !schema.ValidQuotaMethods[c.Method] {
		return nil, invalidInputf("unknown quota method %q", c.Method)
	}
	parties, votes, err := partyVotes(data, c.Party, c.Votes)
	if err != nil {
		return nil, err
	}
	if nSeats <= 0 {
		return nil, invalidInputf("seat count must be positive, got %d", nSeats)
	}
	var total float64
	for _, v := range votes {
		total += v
	}
	if total == 0 {
		return nil, invalidInputf("all vote counts are zero")
	}

	var quota float64
	switch c.Method {
	case schema.DroopQuota:
		quota = math.Floor(total/float64(nSeats+1)) + 1
	default:
		quota = total / float64(nSeats)
	}

	seats := make([]int, len(votes))
	remainders := make([]float64, len(votes))
	assigned := 0
	for i, v := range votes {
		exact := v / quota
		seats[i] = int(math.Floor(exact))
		remainders[i] = exact - float64(seats[i])
		assigned += seats[i]
	}

	order := make([]int, len(votes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for k := 0; assigned < nSeats; k++ {
		seats[order[k%len(order)]]++
		assigned++
	}

	return allocationTable(parties, votes, seats), nil
}

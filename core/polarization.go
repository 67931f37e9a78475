// Package core implements the polarization, divisiveness,
// competitiveness, and seat-allocation metrics, plus the orchestration
// that ties them to loading, caching, and output.
//
// Every metric is a pure function over a schema.Table: the caller's table
// is never mutated, so concurrent calls over shared tables are safe.
package core

import (
	"math"

	"github.com/huangsam/polarize/schema"
)

// EstebanRay computes Esteban-Ray polarization over group proportions
// (pi column) and group positions (y column):
//
//	ER = sum_i sum_j pi_i^(1+alpha) * pi_j * |y_i - y_j|
//
// summed over all ordered pairs. Alpha is conventionally in [0, 1.6] but
// is not enforced. With cfg.Normalize the sum is scaled by
// 1/(sum pi)^(2+alpha), which requires a nonzero proportion mass.
func EstebanRay(data *schema.Table, alpha float64, cfg *EstebanRayConfig) (float64, error) {
	c := cfg.withDefaults()
	if err := requireTable(data, c.Pi, c.Y); err != nil {
		return 0, err
	}
	pis, err := floatColumn(data, c.Pi)
	if err != nil {
		return 0, err
	}
	ys, err := floatColumn(data, c.Y)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := range pis {
		weighted := math.Pow(pis[i], 1+alpha)
		for j := range pis {
			sum += weighted * pis[j] * math.Abs(ys[i]-ys[j])
		}
	}

	if c.Normalize {
		var mass float64
		for _, pi := range pis {
			mass += pi
		}
		if mass == 0 {
			return 0, degeneratef("proportion mass is zero")
		}
		sum /= math.Pow(mass, 2+alpha)
	}
	return sum, nil
}

// ReynalQuerol computes Reynal-Querol polarization over group rates:
//
//	RQ = 4 * sum_i rate_i^2 * (1 - rate_i)
//
// For two groups with rates summing to 1, RQ reaches 1 exactly at a
// 0.5/0.5 split and 0 at 0/1.
func ReynalQuerol(data *schema.Table, cfg *ReynalQuerolConfig) (float64, error) {
	c := cfg.withDefaults()
	if err := requireTable(data, c.Rate); err != nil {
		return 0, err
	}
	rates, err := floatColumn(data, c.Rate)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, r := range rates {
		sum += r * r * (1 - r)
	}
	return 4 * sum, nil
}

// WangTsui computes Wang-Tsui polarization as the proportion-weighted
// mean absolute deviation relative to the weighted mean:
//
//	WT = sum_i pi_i * |y_i - m| / m,  m = sum_i pi_i * y_i
//
// A zero weighted mean leaves the index undefined.
func WangTsui(data *schema.Table, cfg *WangTsuiConfig) (float64, error) {
	c := cfg.withDefaults()
	if err := requireTable(data, c.Pi, c.Y); err != nil {
		return 0, err
	}
	pis, err := floatColumn(data, c.Pi)
	if err != nil {
		return 0, err
	}
	ys, err := floatColumn(data, c.Y)
	if err != nil {
		return 0, err
	}

	var mean float64
	for i := range pis {
		mean += pis[i] * ys[i]
	}
	if mean == 0 {
		return 0, degeneratef("proportion-weighted mean is zero")
	}

	var sum float64
	for i := range pis {
		sum += pis[i] * math.Abs(ys[i]-mean)
	}
	return sum / mean, nil
}

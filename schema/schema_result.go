package schema

// Result is the envelope produced by every metric computation. Scalar
// metrics carry a nil Details table; allocation metrics carry the seat
// table and report the total seats assigned as Value.
type Result struct {
	Metric  Metric  `json:"metric"`
	Value   float64 `json:"value"`
	Details *Table  `json:"details,omitempty"`
	Rows    int     `json:"rows"`
	Params  string  `json:"params,omitempty"`
}

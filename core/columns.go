package core

import (
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/schema"
)

// Default column names for each column role. Every metric config accepts
// overrides; an empty field falls back to the default for its role.
const (
	DefaultPiColumn        = "pi"
	DefaultYColumn         = "y"
	DefaultRateColumn      = "rate"
	DefaultUnitColumn      = "unit"
	DefaultCandidateColumn = "candidate"
	DefaultVotesColumn     = "votes"
	DefaultScoreColumn     = "score"
	DefaultPartyColumn     = "party"
	DefaultShareColumn     = "share"
)

// EstebanRayConfig names the columns for Esteban-Ray polarization.
// Normalize applies the Esteban-Ray constant 1/(sum pi)^(2+alpha).
type EstebanRayConfig struct {
	Pi        string
	Y         string
	Normalize bool
}

// ReynalQuerolConfig names the rate column for Reynal-Querol polarization.
type ReynalQuerolConfig struct {
	Rate string
}

// WangTsuiConfig names the columns for Wang-Tsui polarization.
type WangTsuiConfig struct {
	Pi string
	Y  string
}

// DivisivenessConfig names the columns for the divisiveness family.
// Score is optional in the data: when the table lacks the score column,
// scores are derived as votes over the unit total, once per call.
type DivisivenessConfig struct {
	Unit      string
	Candidate string
	Votes     string
	Score     string
}

// BlaisLagoConfig names the columns for Blais-Lago competitiveness.
type BlaisLagoConfig struct {
	Party string
	Votes string
}

// GrofmanSelbConfig names the share column for Grofman-Selb competitiveness.
type GrofmanSelbConfig struct {
	Share string
}

// LaaksoTaageperaConfig names the share column and the exponent for the
// effective number of parties. Alpha 0 selects the default of 2.
type LaaksoTaageperaConfig struct {
	Share string
	Alpha float64
}

// GiniConfig names the share column for the Gini index.
type GiniConfig struct {
	Share string
}

// DHondtConfig names the columns for D'Hondt allocation.
type DHondtConfig struct {
	Party string
	Votes string
}

// ProportionalConfig names the columns and quota method for
// largest-remainder allocation. An empty Method selects the Hare quota.
type ProportionalConfig struct {
	Party  string
	Votes  string
	Method schema.QuotaMethod
}

func orDefault(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

func (c *EstebanRayConfig) withDefaults() EstebanRayConfig {
	out := EstebanRayConfig{}
	if c != nil {
		out = *c
	}
	out.Pi = orDefault(out.Pi, DefaultPiColumn)
	out.Y = orDefault(out.Y, DefaultYColumn)
	return out
}

func (c *ReynalQuerolConfig) withDefaults() ReynalQuerolConfig {
	out := ReynalQuerolConfig{}
	if c != nil {
		out = *c
	}
	out.Rate = orDefault(out.Rate, DefaultRateColumn)
	return out
}

func (c *WangTsuiConfig) withDefaults() WangTsuiConfig {
	out := WangTsuiConfig{}
	if c != nil {
		out = *c
	}
	out.Pi = orDefault(out.Pi, DefaultPiColumn)
	out.Y = orDefault(out.Y, DefaultYColumn)
	return out
}

func (c *DivisivenessConfig) withDefaults() DivisivenessConfig {
	out := DivisivenessConfig{}
	if c != nil {
		out = *c
	}
	out.Unit = orDefault(out.Unit, DefaultUnitColumn)
	out.Candidate = orDefault(out.Candidate, DefaultCandidateColumn)
	out.Votes = orDefault(out.Votes, DefaultVotesColumn)
	out.Score = orDefault(out.Score, DefaultScoreColumn)
	return out
}

func (c *BlaisLagoConfig) withDefaults() BlaisLagoConfig {
	out := BlaisLagoConfig{}
	if c != nil {
		out = *c
	}
	out.Party = orDefault(out.Party, DefaultPartyColumn)
	out.Votes = orDefault(out.Votes, DefaultVotesColumn)
	return out
}

func (c *GrofmanSelbConfig) withDefaults() GrofmanSelbConfig {
	out := GrofmanSelbConfig{}
	if c != nil {
		out = *c
	}
	out.Share = orDefault(out.Share, DefaultShareColumn)
	return out
}

func (c *LaaksoTaageperaConfig) withDefaults() LaaksoTaageperaConfig {
	out := LaaksoTaageperaConfig{}
	if c != nil {
		out = *c
	}
	out.Share = orDefault(out.Share, DefaultShareColumn)
	if out.Alpha == 0 {
		out.Alpha = contract.DefaultENPAlpha
	}
	return out
}

func (c *GiniConfig) withDefaults() GiniConfig {
	out := GiniConfig{}
	if c != nil {
		out = *c
	}
	out.Share = orDefault(out.Share, DefaultShareColumn)
	return out
}

func (c *DHondtConfig) withDefaults() DHondtConfig {
	out := DHondtConfig{}
	if c != nil {
		out = *c
	}
	out.Party = orDefault(out.Party, DefaultPartyColumn)
	out.Votes = orDefault(out.Votes, DefaultVotesColumn)
	return out
}

func (c *ProportionalConfig) withDefaults() ProportionalConfig {
	out := ProportionalConfig{}
	if c != nil {
		out = *c
	}
	out.Party = orDefault(out.Party, DefaultPartyColumn)
	out.Votes = orDefault(out.Votes, DefaultVotesColumn)
	if out.Method == "" {
		out.Method = schema.HareQuota
	}
	return out
}

// requireTable rejects nil or empty tables and tables missing any of the
// named columns. Validation happens once, at metric entry.
func requireTable(data *schema.Table, cols ...string) error {
	if data.Len() == 0 {
		return invalidInputf("table is empty")
	}
	for _, c := range cols {
		if !data.HasColumn(c) {
			return invalidInputf("missing column %q", c)
		}
	}
	return nil
}

// floatColumn extracts a full numeric column. A non-numeric cell is a
// structural problem with the input.
func floatColumn(data *schema.Table, col string) ([]float64, error) {
	out := make([]float64, data.Len())
	for i := range out {
		v, ok := data.Float(i, col)
		if !ok {
			return nil, invalidInputf("column %q row %d is not numeric", col, i)
		}
		out[i] = v
	}
	return out, nil
}

// labelColumn extracts a full column formatted as strings.
func labelColumn(data *schema.Table, col string) []string {
	out := make([]string, data.Len())
	for i := range out {
		out[i] = data.Label(i, col)
	}
	return out
}

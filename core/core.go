package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/internal/loader"
	"github.com/huangsam/polarize/internal/outwriter"
	"github.com/huangsam/polarize/schema"
)

// cacheVersion invalidates cached results when the envelope encoding or a
// metric formula changes.
const cacheVersion = 1

// ExecutorFunc defines the function signature for executing metric commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, stores contract.StoreManager) error

// ExecuteMetric runs the configured metric end to end: load the dataset,
// consult the result cache, compute on a miss, record the run, and write
// the result in the configured output format. It serves as the main entry
// point for every metric command.
func ExecuteMetric(ctx context.Context, cfg *contract.Config, stores contract.StoreManager) error {
	start := time.Now()
	result, err := Run(ctx, cfg, stores)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintResult(result, cfg, duration)
}

// Run performs the computation for cfg without writing output, so callers
// like the MCP server can shape the result themselves.
func Run(ctx context.Context, cfg *contract.Config, stores contract.StoreManager) (*schema.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.InputPath == "" {
		return nil, invalidInputf("no input dataset provided")
	}

	table, raw, err := loader.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}

	params := cfg.MetricParams()
	key := contract.CacheKey(raw, string(cfg.Metric), params)

	if result, ok := lookupCached(cfg, stores, key); ok {
		return result, nil
	}

	result, err := ComputeResult(table, cfg)
	if err != nil {
		return nil, err
	}
	result.Params = params

	storeCached(cfg, stores, key, result)
	recordRun(cfg, stores, raw, result)
	return result, nil
}

// ComputeResult dispatches the configured metric over an already-loaded
// table. The table is treated as read-only.
func ComputeResult(table *schema.Table, cfg *contract.Config) (*schema.Result, error) {
	cols := cfg.Columns
	result := &schema.Result{Metric: cfg.Metric, Rows: table.Len()}
	var err error

	switch cfg.Metric {
	case schema.MetricEstebanRay:
		result.Value, err = EstebanRay(table, cfg.Alpha, &EstebanRayConfig{
			Pi: cols.Pi, Y: cols.Y, Normalize: cfg.Normalize,
		})
	case schema.MetricReynalQuerol:
		result.Value, err = ReynalQuerol(table, &ReynalQuerolConfig{Rate: cols.Rate})
	case schema.MetricWangTsui:
		result.Value, err = WangTsui(table, &WangTsuiConfig{Pi: cols.Pi, Y: cols.Y})
	case schema.MetricDivisiveness:
		result.Value, result.Details, err = ElectoralDivisiveness(table, divisivenessConfig(cols))
	case schema.MetricWithin:
		result.Value, result.Details, err = WithinEP(table, divisivenessConfig(cols))
	case schema.MetricBetween:
		result.Value, result.Details, err = BetweenEP(table, divisivenessConfig(cols))
	case schema.MetricBlaisLago:
		result.Value, result.Details, err = BlaisLago(table, cfg.Seats, &BlaisLagoConfig{
			Party: cols.Party, Votes: cols.Votes,
		})
	case schema.MetricGrofmanSelb:
		result.Value, err = GrofmanSelb(table, &GrofmanSelbConfig{Share: cols.Share})
	case schema.MetricENP:
		result.Value, err = LaaksoTaagepera(table, &LaaksoTaageperaConfig{
			Share: cols.Share, Alpha: cfg.Alpha,
		})
	case schema.MetricGini:
		result.Value, err = GiniIndex(table, &GiniConfig{Share: cols.Share})
	case schema.MetricDHondt:
		result.Details, err = DHondt(table, cfg.Seats, &DHondtConfig{
			Party: cols.Party, Votes: cols.Votes,
		})
		result.Value = float64(cfg.Seats)
	case schema.MetricProportional:
		result.Details, err = Proportional(table, cfg.Seats, &ProportionalConfig{
			Party: cols.Party, Votes: cols.Votes, Method: cfg.Method,
		})
		result.Value = float64(cfg.Seats)
	default:
		return nil, invalidInputf("unknown metric %q", cfg.Metric)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func divisivenessConfig(cols contract.ColumnOverrides) *DivisivenessConfig {
	return &DivisivenessConfig{
		Unit:      cols.Unit,
		Candidate: cols.Candidate,
		Votes:     cols.Votes,
		Score:     cols.Score,
	}
}

// lookupCached returns a previously computed result for key, if caching is
// active and the entry decodes at the current cache version.
func lookupCached(cfg *contract.Config, stores contract.StoreManager, key string) (*schema.Result, bool) {
	if cfg.NoCache || stores == nil {
		return nil, false
	}
	store := stores.GetResultStore()
	if store == nil {
		return nil, false
	}
	payload, version, _, err := store.Get(key)
	if err != nil || payload == nil || version != cacheVersion {
		return nil, false
	}
	var result schema.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		contract.LogWarn("decoding cached result", err)
		return nil, false
	}
	return &result, true
}

// storeCached persists a computed result under key. Cache failures only
// warn; the computation already succeeded.
func storeCached(cfg *contract.Config, stores contract.StoreManager, key string, result *schema.Result) {
	if cfg.NoCache || stores == nil {
		return
	}
	store := stores.GetResultStore()
	if store == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		contract.LogWarn("encoding result for cache", err)
		return
	}
	if err := store.Set(key, payload, cacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("writing result cache", err)
	}
}

// recordRun appends the computation to the run history, when configured.
func recordRun(cfg *contract.Config, stores contract.StoreManager, raw []byte, result *schema.Result) {
	if stores == nil {
		return
	}
	store := stores.GetRunStore()
	if store == nil {
		return
	}
	params := result.Params
	record := &schema.RunRecord{
		Metric:      string(result.Metric),
		InputPath:   cfg.InputPath,
		DatasetHash: contract.CacheKey(raw, "", ""),
		Value:       result.Value,
		RowCount:    int32(result.Rows),
		Params:      &params,
		CreatedAt:   time.Now(),
	}
	if _, err := store.RecordRun(record); err != nil {
		contract.LogWarn("recording run history", err)
	}
}

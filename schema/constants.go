package schema

type (
	// Metric identifies a polarization, divisiveness, competitiveness,
	// or allocation computation.
	Metric string

	// OutputMode identifies the output format for results.
	OutputMode string

	// DatabaseBackend identifies the database backend for stores.
	DatabaseBackend string

	// QuotaMethod identifies the quota rule for largest-remainder allocation.
	QuotaMethod string
)

// Metric values.
const (
	MetricEstebanRay   Metric = "esteban-ray"
	MetricReynalQuerol Metric = "reynal-querol"
	MetricWangTsui     Metric = "wang-tsui"
	MetricDivisiveness Metric = "divisiveness"
	MetricWithin       Metric = "within"
	MetricBetween      Metric = "between"
	MetricBlaisLago    Metric = "blais-lago"
	MetricGrofmanSelb  Metric = "grofman-selb"
	MetricENP          Metric = "enp"
	MetricGini         Metric = "gini"
	MetricDHondt       Metric = "dhondt"
	MetricProportional Metric = "proportional"
)

// OutputMode values.
const (
	TextOut    OutputMode = "text"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// DatabaseBackend values.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// QuotaMethod values.
const (
	HareQuota  QuotaMethod = "hare"
	DroopQuota QuotaMethod = "droop"
)

// ValidOutputModes is the set of supported output formats.
var ValidOutputModes = map[OutputMode]bool{
	TextOut:    true,
	CSVOut:     true,
	JSONOut:    true,
	ParquetOut: true,
}

// ValidDatabaseBackends is the set of supported store backends.
var ValidDatabaseBackends = map[DatabaseBackend]bool{
	SQLiteBackend:     true,
	MySQLBackend:      true,
	PostgreSQLBackend: true,
	NoneBackend:       true,
}

// ValidQuotaMethods is the set of supported largest-remainder quotas.
var ValidQuotaMethods = map[QuotaMethod]bool{
	HareQuota:  true,
	DroopQuota: true,
}

// AllMetrics lists every metric in display order.
var AllMetrics = []Metric{
	MetricEstebanRay,
	MetricReynalQuerol,
	MetricWangTsui,
	MetricDivisiveness,
	MetricWithin,
	MetricBetween,
	MetricBlaisLago,
	MetricGrofmanSelb,
	MetricENP,
	MetricGini,
	MetricDHondt,
	MetricProportional,
}

// ValidMetrics is the set of recognized metric identifiers.
var ValidMetrics = func() map[Metric]bool {
	m := make(map[Metric]bool, len(AllMetrics))
	for _, metric := range AllMetrics {
		m[metric] = true
	}
	return m
}()

// MetricDescriptions maps each metric to a one-line definition,
// shown by the metrics command and the MCP list tool.
var MetricDescriptions = map[Metric]string{
	MetricEstebanRay:   "Esteban-Ray polarization over group proportions and positions",
	MetricReynalQuerol: "Reynal-Querol polarization over group rates",
	MetricWangTsui:     "Wang-Tsui polarization: proportion-weighted mean deviation",
	MetricDivisiveness: "Electoral divisiveness: within plus between antagonism",
	MetricWithin:       "Within-unit antagonism summed over candidates",
	MetricBetween:      "Between-candidate antagonism summed over candidates",
	MetricBlaisLago:    "Blais-Lago competitiveness: top-two seat margin under D'Hondt",
	MetricGrofmanSelb:  "Grofman-Selb competitiveness of the challenger field",
	MetricENP:          "Laakso-Taagepera effective number of parties",
	MetricGini:         "Gini index of share concentration",
	MetricDHondt:       "D'Hondt highest-averages seat allocation",
	MetricProportional: "Largest-remainder seat allocation (Hare or Droop quota)",
}

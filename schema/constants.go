package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Phase represents a measured slice of an issue's lifecycle.
	Phase string

	// Series represents which duration series a statistic is computed over.
	Series string

	// FieldKind represents which issue field a status event changed.
	FieldKind string

	// DatabaseBackend represents the database backend for result storage.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All lifecycle phases measured.
const (
	DiscoveryPhase Phase = "discovery"
	BuildPhase     Phase = "build"
)

// All duration series summarized per cohort.
const (
	CalendarSeries Series = "calendar"
	ActiveSeries   Series = "active"
)

// All event field kinds recognized by the timeline builder.
const (
	StatusField FieldKind = "status"
	HealthField FieldKind = "health"
)

// All result store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllPhases returns the phases in reporting order.
var AllPhases = []Phase{DiscoveryPhase, BuildPhase}

// AllSeries returns the duration series in reporting order.
var AllSeries = []Series{CalendarSeries, ActiveSeries}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid result store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

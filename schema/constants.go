package schema

// Custom string types for type safety.
type (
	// Principle identifies one of the six fixed self-assessment principles.
	Principle string

	// TrendWindow represents the time window applied to the trend chart.
	TrendWindow string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for record storage.
	DatabaseBackend string
)

// All principles, declared in canonical order.
const (
	R3   Principle = "r3"   // Self-Awareness
	PHCB Principle = "phcb" // Boundary Awareness
	APD  Principle = "apd"  // Embracing Uncertainty
	LPS  Principle = "lps"  // Adaptive Flow
	CDR  Principle = "cdr"  // Universal Connections
	EIA  Principle = "eia"  // Insight Generation
)

// All trend windows supported.
const (
	Window7d  TrendWindow = "7d"
	Window30d TrendWindow = "30d"
	WindowAll TrendWindow = "all" // default
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	SVGOut     OutputMode = "svg"
	ParquetOut OutputMode = "parquet"
)

// All record store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	MemoryBackend     DatabaseBackend = "memory"
)

// Score bounds for a single principle.
const (
	MinScore     = 1
	MaxScore     = 10
	DefaultScore = 5
)

// DefaultIdentity is the identity used when none is configured.
const DefaultIdentity = "local_user_id"

// AllPrinciples is the canonical total order of principles. Iteration, tie-breaking
// and series ordering all follow it.
var AllPrinciples = []Principle{R3, PHCB, APD, LPS, CDR, EIA}

// ValidPrinciples lists all valid principles.
var ValidPrinciples = map[Principle]struct{}{
	R3:   {},
	PHCB: {},
	APD:  {},
	LPS:  {},
	CDR:  {},
	EIA:  {},
}

// ValidTrendWindows lists all valid trend windows.
var ValidTrendWindows = map[TrendWindow]struct{}{
	Window7d:  {},
	Window30d: {},
	WindowAll: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	SVGOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid record store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	MemoryBackend:     {},
}

// Package schema has configs, models and shared constants for all parts of pulse.
package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for series storage.
	DatabaseBackend string

	// Domain represents a family of project activity metrics.
	Domain string

	// Trend represents the direction of a metric across quarters.
	Trend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All metric domains supported.
const (
	AgilityDomain   Domain = "agility"   // issue, pull request and commit activity
	CommunityDomain Domain = "community" // question, answer and user activity
)

// All trend directions.
const (
	RisingTrend  Trend = "rising"
	SteadyTrend  Trend = "steady"
	FallingTrend Trend = "falling"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidBackends lists all valid storage backends.
var ValidBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllDomains returns the list of supported metric domains.
var AllDomains = []Domain{AgilityDomain, CommunityDomain}

// ValidDomains lists all valid metric domains.
var ValidDomains = map[Domain]struct{}{
	AgilityDomain:   {},
	CommunityDomain: {},
}

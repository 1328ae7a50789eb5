package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// validTableNameRe restricts table names to safe identifier characters since
// they are interpolated into SQL text.
var validTableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SeriesStoreImpl handles durable series storage using various database backends.
type SeriesStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.SeriesStore = &SeriesStoreImpl{} // Compile-time check

// NewSeriesStore initializes and returns a new SeriesStore based on the backend type.
func NewSeriesStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.SeriesStore, error) {
	if !validTableNameRe.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=pulse
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &SeriesStoreImpl{tableName: tableName, backend: backend, connStr: connStr}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &SeriesStoreImpl{db: db, tableName: tableName, backend: backend, connStr: connStr}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
// The payload column is JSON text so the same shape works on every backend.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				project VARCHAR(190) NOT NULL,
				domain VARCHAR(32) NOT NULL,
				payload MEDIUMTEXT NOT NULL,
				version INT NOT NULL,
				updated_at BIGINT NOT NULL,
				PRIMARY KEY (project, domain)
			);
		`, tableName)

	default: // SQLite and PostgreSQL accept the portable form
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				project TEXT NOT NULL,
				domain TEXT NOT NULL,
				payload TEXT NOT NULL,
				version INTEGER NOT NULL,
				updated_at BIGINT NOT NULL,
				PRIMARY KEY (project, domain)
			);
		`, tableName)
	}
}

// getPlaceholders returns the first n parameter placeholders for the backend.
func (ss *SeriesStoreImpl) getPlaceholders(n int) []string {
	placeholders := make([]string, n)
	for i := range placeholders {
		if ss.backend == schema.PostgreSQLBackend {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return placeholders
}

// Get implements the SeriesStore interface.
func (ss *SeriesStoreImpl) Get(project string, domain schema.Domain) (schema.SeriesRecord, error) {
	record := schema.SeriesRecord{Project: project, Domain: domain}
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return record, contract.ErrNoSeries
	}

	ph := ss.getPlaceholders(2)
	query := fmt.Sprintf(`SELECT payload, version, updated_at FROM %s WHERE project = %s AND domain = %s`,
		ss.tableName, ph[0], ph[1])

	var payload []byte
	var updatedAt int64
	row := ss.db.QueryRow(query, project, string(domain))
	if err := row.Scan(&payload, &record.Version, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, contract.ErrNoSeries
		}
		return record, err
	}
	record.Payload = payload
	record.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return record, nil
}

// Set implements the SeriesStore interface.
func (ss *SeriesStoreImpl) Set(record schema.SeriesRecord) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}
	_, err := ss.db.Exec(ss.getUpsertQuery(),
		record.Project, string(record.Domain), string(record.Payload), record.Version, record.UpdatedAt.Unix())
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ss *SeriesStoreImpl) getUpsertQuery() string {
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (project, domain, payload, version, updated_at) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE payload = new.payload, version = new.version, updated_at = new.updated_at`, ss.tableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (project, domain, payload, version, updated_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (project, domain) DO UPDATE SET payload = EXCLUDED.payload, version = EXCLUDED.version, updated_at = EXCLUDED.updated_at`, ss.tableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (project, domain, payload, version, updated_at) VALUES (?, ?, ?, ?, ?)`, ss.tableName)
	}
}

// Projects implements the SeriesStore interface.
func (ss *SeriesStoreImpl) Projects() ([]string, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}
	rows, err := ss.db.Query(fmt.Sprintf(`SELECT DISTINCT project FROM %s ORDER BY project`, ss.tableName))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// All implements the SeriesStore interface.
func (ss *SeriesStoreImpl) All() ([]schema.SeriesRecord, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT project, domain, payload, version, updated_at FROM %s ORDER BY project, domain`, ss.tableName)
	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []schema.SeriesRecord
	for rows.Next() {
		var record schema.SeriesRecord
		var domain string
		var payload []byte
		var updatedAt int64
		if err := rows.Scan(&record.Project, &domain, &payload, &record.Version, &updatedAt); err != nil {
			return nil, err
		}
		record.Domain = schema.Domain(domain)
		record.Payload = payload
		record.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetStatus implements the SeriesStore interface.
func (ss *SeriesStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   ss.backend,
		Connected: ss.db != nil,
	}
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	query := fmt.Sprintf(`SELECT COUNT(*), COUNT(DISTINCT project), COALESCE(MAX(updated_at), 0), COALESCE(MIN(updated_at), 0) FROM %s`, ss.tableName)
	var last, oldest int64
	if err := ss.db.QueryRow(query).Scan(&status.TotalSeries, &status.TotalProjects, &last, &oldest); err != nil {
		return status, err
	}
	if status.TotalSeries > 0 {
		status.LastUpdateTime = time.Unix(last, 0).UTC()
		status.OldestUpdate = time.Unix(oldest, 0).UTC()
	}

	sizeQuery := fmt.Sprintf(`SELECT COALESCE(SUM(LENGTH(payload)), 0) FROM %s`, ss.tableName)
	if err := ss.db.QueryRow(sizeQuery).Scan(&status.TableSizeBytes); err != nil {
		return status, err
	}
	return status, nil
}

// Close implements the SeriesStore interface.
func (ss *SeriesStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// dropTable removes the series table entirely. Used by ClearStore for
// server-backed stores.
func (ss *SeriesStoreImpl) dropTable() error {
	if ss.db == nil {
		return nil
	}
	_, err := ss.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, ss.tableName))
	return err
}

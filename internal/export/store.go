// Package export dumps a loaded transcript cache into a DuckDB database so
// its contents can be inspected with ad-hoc SQL.
package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/varsight/varsight/internal/cache"
)

// Store manages a DuckDB connection for cache exports.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cache_info (
			assembly VARCHAR,
			vep_version VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS data_sources (
			name VARCHAR,
			version VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS transcripts (
			transcript_id VARCHAR,
			transcript_version SMALLINT,
			gene_id VARCHAR,
			gene_name VARCHAR,
			chrom VARCHAR,
			start_pos BIGINT,
			end_pos BIGINT,
			strand TINYINT,
			biotype VARCHAR,
			coding_start BIGINT,
			coding_end BIGINT,
			is_canonical BOOLEAN,
			PRIMARY KEY (transcript_id, transcript_version)
		)`,
		`CREATE TABLE IF NOT EXISTS regulatory_regions (
			region_id VARCHAR,
			chrom VARCHAR,
			start_pos BIGINT,
			end_pos BIGINT,
			region_type VARCHAR,
			PRIMARY KEY (region_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExportCache writes the cache's metadata, transcripts, and regulatory
// regions into the database, replacing any previous export.
func (s *Store) ExportCache(c *cache.TranscriptCache) error {
	for _, table := range []string{"cache_info", "data_sources", "transcripts", "regulatory_regions"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := s.db.Exec(`INSERT INTO cache_info VALUES (?, ?)`,
		c.Assembly.String(), c.VepVersion); err != nil {
		return fmt.Errorf("insert cache info: %w", err)
	}
	for _, ds := range c.DataSources {
		if _, err := s.db.Exec(`INSERT INTO data_sources VALUES (?, ?)`, ds.Name, ds.Version); err != nil {
			return fmt.Errorf("insert data source %s: %w", ds.Name, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin export transaction: %w", err)
	}
	defer tx.Rollback()

	insertTx, err := tx.Prepare(`INSERT INTO transcripts VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transcript insert: %w", err)
	}
	defer insertTx.Close()

	insertReg, err := tx.Prepare(`INSERT INTO regulatory_regions VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare regulatory insert: %w", err)
	}
	defer insertReg.Close()

	for i := range c.Chromosomes() {
		chromIndex := uint16(i)
		for _, t := range c.TranscriptsByChrom(chromIndex) {
			if _, err := insertTx.Exec(t.ID, t.Version, t.GeneID, t.GeneName,
				t.Chrom.Name, t.Start, t.End, t.Strand, t.Biotype,
				t.CodingStart, t.CodingEnd, t.IsCanonical); err != nil {
				return fmt.Errorf("insert transcript %s: %w", t.ID, err)
			}
		}
		for _, r := range c.RegulatoryByChrom(chromIndex) {
			if _, err := insertReg.Exec(r.ID, r.Chrom.Name, r.Start, r.End, r.Type); err != nil {
				return fmt.Errorf("insert regulatory region %s: %w", r.ID, err)
			}
		}
	}

	return tx.Commit()
}

// TranscriptCount returns the number of exported transcripts.
func (s *Store) TranscriptCount() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM transcripts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return n, nil
}

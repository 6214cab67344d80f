// Package store persists parsed refGene transcripts in a DuckDB database
// so downstream tooling can query annotations without re-parsing the
// source table.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/refgene-go/internal/refgene"
)

// Store manages a DuckDB connection holding transcripts and their exons.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path. Use an empty
// string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
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

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		accession VARCHAR PRIMARY KEY,
		chrom VARCHAR,
		tx_start BIGINT,
		tx_end BIGINT,
		strand VARCHAR,
		name VARCHAR,
		score DOUBLE,
		cds_start BIGINT,
		cds_end BIGINT,
		cds_start_status VARCHAR,
		cds_end_status VARCHAR,
		exon_count INTEGER,
		coding_length BIGINT
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS exons (
		accession VARCHAR,
		rank INTEGER,
		exon_start BIGINT,
		exon_end BIGINT,
		frame INTEGER,
		PRIMARY KEY (accession, rank)
	)`)
	return err
}

// InsertTranscript writes a transcript and its exons.
func (s *Store) InsertTranscript(t *refgene.Transcript) error {
	codingLength, err := t.CodingLength()
	if err != nil {
		return fmt.Errorf("derive coding length for %s: %w", t.Accession, err)
	}

	_, err = s.db.Exec(`INSERT INTO transcripts VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Accession, t.Chrom, t.Start, t.End, string(t.Strand), t.Name, t.Score,
		t.CodingStart, t.CodingEnd, t.CodingStartStatus, t.CodingEndStatus,
		t.NumExons(), codingLength)
	if err != nil {
		return fmt.Errorf("insert transcript %s: %w", t.Accession, err)
	}

	for _, e := range t.Exons() {
		_, err = s.db.Exec(`INSERT INTO exons VALUES (?, ?, ?, ?, ?)`,
			t.Accession, e.Rank, e.Start, e.End, e.Frame)
		if err != nil {
			return fmt.Errorf("insert exon %d of %s: %w", e.Rank, t.Accession, err)
		}
	}
	return nil
}

// TranscriptCount returns the number of stored transcripts.
func (s *Store) TranscriptCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM transcripts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return count, nil
}

// FindByAccession rebuilds the stored transcript with the given accession,
// or returns (nil, nil) when it is not present.
func (s *Store) FindByAccession(accession string) (*refgene.Transcript, error) {
	var (
		chrom, strand, name, startStat, endStat string
		txStart, txEnd, cdsStart, cdsEnd        int64
		score                                   float64
		exonCount                               int
		codingLength                            int64
	)
	err := s.db.QueryRow(`SELECT chrom, tx_start, tx_end, strand, name, score,
		cds_start, cds_end, cds_start_status, cds_end_status, exon_count, coding_length
		FROM transcripts WHERE accession = ?`, accession).Scan(
		&chrom, &txStart, &txEnd, &strand, &name, &score,
		&cdsStart, &cdsEnd, &startStat, &endStat, &exonCount, &codingLength)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query transcript %s: %w", accession, err)
	}

	iv, err := refgene.NewInterval(chrom, txStart, txEnd, refgene.Strand(strand), name, score)
	if err != nil {
		return nil, fmt.Errorf("rebuild transcript %s: %w", accession, err)
	}
	t, err := refgene.NewTranscript(iv, accession, cdsStart, cdsEnd, startStat, endStat)
	if err != nil {
		return nil, fmt.Errorf("rebuild transcript %s: %w", accession, err)
	}

	rows, err := s.db.Query(`SELECT rank, exon_start, exon_end, frame
		FROM exons WHERE accession = ? ORDER BY exon_start`, accession)
	if err != nil {
		return nil, fmt.Errorf("query exons of %s: %w", accession, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rank, frame  int
			eStart, eEnd int64
		)
		if err := rows.Scan(&rank, &eStart, &eEnd, &frame); err != nil {
			return nil, fmt.Errorf("scan exon of %s: %w", accession, err)
		}
		exon, err := refgene.NewExon(chrom, eStart, eEnd, refgene.Strand(strand), rank, frame)
		if err != nil {
			return nil, fmt.Errorf("rebuild exon %d of %s: %w", rank, accession, err)
		}
		t.AddExon(exon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan exons of %s: %w", accession, err)
	}

	return t, nil
}

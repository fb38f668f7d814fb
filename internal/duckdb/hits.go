package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/althonos/minimotif/internal/detect"
)

// Hit is one stored motif occurrence. Start and End are the half-open
// genome span of the site.
type Hit struct {
	Regulator  string
	Genome     string
	RegionType string
	Region     string
	Start      int64
	End        int64
	Strand     string
	Score      float64
	Confidence string
	Site       string
}

// WriteTable batch-inserts every match in the table under the given scan
// scope using the Appender API. Previous rows for the same scope are
// removed first, so rerunning a scan stays idempotent.
func (s *Store) WriteTable(regulator, genome, regionType string, table *detect.Table) error {
	_, err := s.db.Exec(
		`DELETE FROM motif_hits WHERE regulator=? AND genome=? AND region_type=?`,
		regulator, genome, regionType)
	if err != nil {
		return fmt.Errorf("clear previous hits: %w", err)
	}
	if table.Len() == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "motif_hits")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	err = table.Each(func(region string, m detect.Match) error {
		return appender.AppendRow(
			regulator, genome, regionType, region,
			int64(m.Start), int64(m.End), m.Strand,
			m.Score, string(m.Confidence), m.Site,
		)
	})
	if err != nil {
		return fmt.Errorf("append hit: %w", err)
	}

	return appender.Flush()
}

// ClearHits removes all stored hits.
func (s *Store) ClearHits() error {
	_, err := s.db.Exec("DELETE FROM motif_hits")
	return err
}

const hitColumns = `regulator, genome, region_type, region, start, "end", strand, score, confidence, site`

// SearchByRegion returns stored hits for a region, ordered by genome
// position. An empty confidence matches every tier.
func (s *Store) SearchByRegion(region, confidence string) ([]Hit, error) {
	query := `SELECT ` + hitColumns + ` FROM motif_hits WHERE region=?`
	args := []any{region}
	if confidence != "" {
		query += ` AND confidence=?`
		args = append(args, confidence)
	}
	query += ` ORDER BY regulator, genome, region_type, start, "end", strand`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by region: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

// SearchByRegulator returns stored hits for a regulator, ordered by genome
// position. An empty confidence matches every tier.
func (s *Store) SearchByRegulator(regulator, confidence string) ([]Hit, error) {
	query := `SELECT ` + hitColumns + ` FROM motif_hits WHERE regulator=?`
	args := []any{regulator}
	if confidence != "" {
		query += ` AND confidence=?`
		args = append(args, confidence)
	}
	query += ` ORDER BY genome, region_type, region, start, "end", strand`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by regulator: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

// scanHits scans query rows into Hit slices.
func scanHits(rows *sql.Rows) ([]Hit, error) {
	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(
			&h.Regulator, &h.Genome, &h.RegionType, &h.Region,
			&h.Start, &h.End, &h.Strand, &h.Score, &h.Confidence, &h.Site,
		); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hits: %w", err)
	}
	return hits, nil
}

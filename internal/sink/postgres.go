package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"gridsynth/internal/model"
)

// PostgresSeeder bulk-loads generated records into an energy_data table
// for performance and integration testing of downstream consumers.
type PostgresSeeder struct {
	db        *sql.DB
	batchSize int
}

func NewPostgresSeeder(dsn string, batchSize int) (*PostgresSeeder, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return &PostgresSeeder{db: db, batchSize: batchSize}, nil
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS energy_data (
    data_id      text PRIMARY KEY,
    node_id      text NOT NULL,
    kwh          double precision NOT NULL,
    location     text NOT NULL,
    ts           bigint NOT NULL,
    hour         int NOT NULL,
    day_of_week  int NOT NULL,
    month        int NOT NULL,
    pattern_type text NOT NULL,
    anomaly      boolean NOT NULL
)`

// EnsureSchema creates the target table when missing.
func (s *PostgresSeeder) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("creating energy_data: %w", err)
	}
	return nil
}

// Seed inserts all points in multi-row batches. Re-seeding the same
// identifiers is a no-op.
func (s *PostgresSeeder) Seed(ctx context.Context, points []model.EnergyDataPoint) error {
	for start := 0; start < len(points); start += s.batchSize {
		end := start + s.batchSize
		if end > len(points) {
			end = len(points)
		}

		query, args := buildInsert(points[start:end])
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting batch at %d: %w", start, err)
		}
	}
	return nil
}

const insertColumns = 10

func buildInsert(points []model.EnergyDataPoint) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO energy_data (data_id, node_id, kwh, location, ts, hour, day_of_week, month, pattern_type, anomaly) VALUES ")

	args := make([]interface{}, 0, len(points)*insertColumns)
	for i, p := range points {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * insertColumns
		sb.WriteString("(")
		for j := 1; j <= insertColumns; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", base+j)
		}
		sb.WriteString(")")
		args = append(args, p.DataID, p.NodeID, p.KWh, p.Location, p.Timestamp,
			p.Hour, p.DayOfWeek, p.Month, string(p.PatternType), p.Anomaly)
	}
	sb.WriteString(" ON CONFLICT (data_id) DO NOTHING")
	return sb.String(), args
}

func (s *PostgresSeeder) Close() error {
	return s.db.Close()
}

package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ponytojas/go-roomalyzer/config"
	"github.com/ponytojas/go-roomalyzer/internal/models"
)

// TimescaleDB reads room readings from a Timescale hypertable with
// (time, temperature, humidity) columns. It never writes.
type TimescaleDB struct {
	conn   *pgx.Conn
	config *config.Config
}

// NewTimescaleDB creates a new TimescaleDB instance
func NewTimescaleDB(ctx context.Context, cfg *config.Config) (*TimescaleDB, error) {
	conn, err := pgx.Connect(ctx, cfg.GetDBConnString())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %v", models.ErrRetrieval, err)
	}

	return &TimescaleDB{
		conn:   conn,
		config: cfg,
	}, nil
}

// Close closes the database connection
func (db *TimescaleDB) Close() error {
	return db.conn.Close(context.Background())
}

// Readings implements ingest.ReadingSource. It returns the most recent
// timescale.limit rows in ascending time order, skipping NULL and zero values.
func (db *TimescaleDB) Readings(ctx context.Context) (models.ReadingSet, error) {
	query := readingsQuery(db.config.Timescale.TableName)

	rows, err := db.conn.Query(ctx, query, db.config.Timescale.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query readings: %v", models.ErrRetrieval, err)
	}

	readings, err := collectReadings(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d valid readings from %s", len(readings), db.config.Timescale.TableName)
	return readings, nil
}

// readingsQuery selects the newest rows first and then flips them back to
// ascending order, mirroring how the ThingSpeak feed limits results.
func readingsQuery(table string) string {
	return fmt.Sprintf(`
		SELECT time, temperature, humidity FROM (
			SELECT time, temperature, humidity
			FROM %s
			WHERE temperature IS NOT NULL AND humidity IS NOT NULL
			ORDER BY time DESC
			LIMIT $1
		) recent
		ORDER BY time ASC
	`, pgx.Identifier{table}.Sanitize())
}

type readingRow struct {
	Time        time.Time `db:"time"`
	Temperature float64   `db:"temperature"`
	Humidity    float64   `db:"humidity"`
}

func collectReadings(rows pgx.Rows) (models.ReadingSet, error) {
	raw, err := pgx.CollectRows(rows, pgx.RowToStructByName[readingRow])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan readings: %v", models.ErrParse, err)
	}

	out := make(models.ReadingSet, 0, len(raw))
	for _, r := range raw {
		reading := models.Reading{
			Timestamp:   r.Time.UTC(),
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
		}
		if !reading.Valid() {
			continue
		}
		out = append(out, reading)
	}
	out.SortByTime()
	return out, nil
}

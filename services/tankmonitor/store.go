package tankmonitor

import (
	"context"
	"database/sql"
	"time"

	"coolwatch-backend/lib/scrapers/icontrol"

	_ "modernc.org/sqlite"
)

// Store keeps a local history of scraped readings, one row per tank per
// run.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func (s Store) Push(ctx context.Context, at time.Time, readings []icontrol.TankReading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range readings {
		var temperature sql.NullFloat64
		if r.TemperatureC != nil {
			temperature = sql.NullFloat64{Float64: *r.TemperatureC, Valid: true}
		}

		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO reading
				(tank_id, tank_code, temperature_c, last_update, status_text, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.TankID,
			r.TankCode,
			temperature,
			r.LastUpdate,
			r.StatusText,
			at.Unix(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

type HistoryEntry struct {
	Reading   icontrol.TankReading
	ScrapedAt time.Time
}

func (s Store) History(ctx context.Context, tankId int) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT tank_id, tank_code, temperature_c, last_update, status_text, scraped_at
		FROM reading
		WHERE tank_id = ?
		ORDER BY scraped_at ASC`,
		tankId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var temperature sql.NullFloat64
		var scrapedAt int64

		err := rows.Scan(
			&entry.Reading.TankID,
			&entry.Reading.TankCode,
			&temperature,
			&entry.Reading.LastUpdate,
			&entry.Reading.StatusText,
			&scrapedAt,
		)
		if err != nil {
			return nil, err
		}

		if temperature.Valid {
			v := temperature.Float64
			entry.Reading.TemperatureC = &v
		}
		entry.ScrapedAt = time.Unix(scrapedAt, 0)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

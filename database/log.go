package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type LogEntryRow struct {
	Timestamp time.Time
	Level     int
	Module    string
	Message   string
	Attrs     string
}

func (r LogEntryRow) LevelString() string {
	return slog.Level(r.Level).String()
}

func (d *Database) SaveLogEntry(ctx context.Context, r LogEntryRow) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO log (timestamp, level, module, message, attrs)
		VALUES (?, ?, ?, ?, ?)`,
		r.Timestamp.UTC().Format(time.RFC3339Nano),
		r.Level,
		r.Module,
		r.Message,
		r.Attrs)
	if err != nil {
		return fmt.Errorf("saving log entry: %w", err)
	}
	return nil
}

// GetLogEntries returns a page of entries at or above minLvl, newest first.
// Pages start at 1.
func (d *Database) GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]LogEntryRow, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	rows, err := d.read.QueryContext(ctx, `
		SELECT timestamp, level, module, message, attrs
		FROM log
		WHERE level >= ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		int(minLvl), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("fetching log entries: %w", err)
	}
	defer rows.Close()

	var ts string
	var entries []LogEntryRow
	for rows.Next() {
		var r LogEntryRow
		if err := rows.Scan(&ts, &r.Level, &r.Module, &r.Message, &r.Attrs); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		r.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		entries = append(entries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading log rows: %w", err)
	}

	return entries, nil
}

func (d *Database) CountLogEntries(ctx context.Context, minLvl slog.Level) (int, error) {
	var n int
	err := d.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM log WHERE level >= ?`, int(minLvl)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting log entries: %w", err)
	}
	return n, nil
}

// PurgeLog keeps the newest maxLogEntries entries.
func (d *Database) PurgeLog(ctx context.Context, maxLogEntries int) (int64, error) {
	d.logger.Debug("purging log", slog.Int("keep", maxLogEntries))
	res, err := d.write.ExecContext(ctx, `
		DELETE FROM log WHERE id <= (SELECT id FROM log ORDER BY id DESC LIMIT 1 OFFSET ?)`, maxLogEntries)
	if err != nil {
		return 0, fmt.Errorf("purging log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		d.logger.Warn("can't get rows affected by purge", slog.String("table", "log"), slog.Any("error", err))
		return 0, nil
	}
	return n, nil
}

package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/solara-go/config"
	"github.com/angas/solara-go/database"
)

type Maintainer interface {
	Backup(ctx context.Context) (string, error)
	PurgeBackups(ctx context.Context, retentionDays int) (int, error)
	PurgeLog(ctx context.Context, maxLogEntries int) (int64, error)
}

var _ Maintainer = (*database.Database)(nil)

// NewMaintenanceTask backs up the database, drops expired backups and
// trims the log table. A failing step does not stop the following ones.
func NewMaintenanceTask(logger *slog.Logger, db Maintainer, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if _, err := db.Backup(ctx); err != nil {
			logger.Error("database backup error", slog.Any("error", err))
		}

		if removed, err := db.PurgeBackups(ctx, cnfg.Database.GetBackupRetentionDays()); err != nil {
			logger.Error("backup maintenance error", slog.Any("error", err))
		} else if removed > 0 {
			logger.Info("old backups removed", slog.Int("count", removed))
		}

		if purged, err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
			logger.Error("log maintenance error", slog.Any("error", err))
		} else {
			logger.Debug("log trimmed", slog.Int64("purged", purged))
		}

		logger.Info("maintenance task done")
	}
}

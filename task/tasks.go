package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/angas/solara-go/config"
	"github.com/angas/solara-go/database"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	MaintenanceTask func()
}

func NewTasks(db *database.Database, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() error {
	if _, err := t.cron.AddFunc(t.cnfg.Maintenance.GetRunAt(), t.MaintenanceTask); err != nil {
		return fmt.Errorf("schedule maintenance task: %w", err)
	}
	t.cron.Start()
	return nil
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}

// Entries lists the scheduled jobs.
func (t *Tasks) Entries() []cron.Entry {
	return t.cron.Entries()
}

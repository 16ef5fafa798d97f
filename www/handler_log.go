package www

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/angas/solara-go/database"
	"github.com/angas/solara-go/logging"
)

const defaultLogPageSize = 25

// LogReader is the read side of the database log sink.
type LogReader interface {
	GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]database.LogEntryRow, error)
	CountLogEntries(ctx context.Context, minLvl slog.Level) (int, error)
}

type logView struct {
	Level    string
	Levels   []string
	Total    int
	Page     int
	NextPage int
	PageSize int
	Entries  []database.LogEntryRow
}

var logLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// NewLogHandler renders the log page, or with ?page=N a page of rows for
// the infinite scroll of the log table.
func NewLogHandler(logger *slog.Logger, db LogReader, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		levelName := r.URL.Query().Get("level")
		if levelName == "" {
			levelName = "DEBUG"
		}
		minLvl := logging.LevelFromString(&levelName)

		page := intOrDefault(r.URL, "page", 0)
		pageSize := intOrDefault(r.URL, "pageSize", defaultLogPageSize)
		if pageSize <= 0 {
			pageSize = defaultLogPageSize
		}

		view := logView{
			Level:    minLvl.String(),
			Levels:   logLevels,
			Page:     max(page, 1),
			PageSize: pageSize,
		}

		entries, err := db.GetLogEntries(r.Context(), minLvl, view.Page, pageSize)
		if err != nil {
			logger.Error("handling log request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		view.Entries = entries
		if len(entries) == pageSize {
			view.NextPage = view.Page + 1
		}

		if page > 0 {
			render(w, logger, tm, "log_entries.html", http.StatusOK, view)
			return
		}

		if view.Total, err = db.CountLogEntries(r.Context(), minLvl); err != nil {
			logger.Error("counting log entries", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		render(w, logger, tm, "log.html", http.StatusOK, view)
	}
}

package www

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/angas/solara-go/workspace"
)

// DatabaseInfo is what the system page shows about the log database.
type DatabaseInfo interface {
	Path() string
	BackupDir() string
	Version(ctx context.Context) (int, error)
}

type SysInfo struct {
	Version       string
	GoVersion     string
	Started       time.Time
	Goroutines    int
	HeapAlloc     int64
	DbPath        string
	BackupDir     string
	SchemaVersion int
	Records       int
	WsClients     int
}

func NewSysInfoHandler(logger *slog.Logger, tm *TemplateManager, db DatabaseInfo, ws *workspace.Workspace, hub *Hub, version string) http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		info := SysInfo{
			Version:    version,
			GoVersion:  runtime.Version(),
			Started:    started,
			Goroutines: runtime.NumGoroutine(),
			HeapAlloc:  int64(mem.HeapAlloc),
			DbPath:     db.Path(),
			BackupDir:  db.BackupDir(),
			Records:    ws.Dataset().Len(),
			WsClients:  hub.Count(),
		}

		var err error
		if info.SchemaVersion, err = db.Version(r.Context()); err != nil {
			logger.Warn("reading schema version", slog.Any("error", err))
			info.SchemaVersion = -1
		}

		render(w, logger, tm, "sys_info.html", http.StatusOK, info)
	}
}

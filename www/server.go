package www

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/solara-go/config"
	"github.com/angas/solara-go/metrics"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/workspace"
	"github.com/gorilla/mux"
)

type Server struct {
	logger  *slog.Logger
	config  config.AppConfigApi
	ws      *workspace.Workspace
	hub     *Hub
	tm      *TemplateManager
	router  *mux.Router
	version string
}

// Store is the part of the database the web pages read from.
type Store interface {
	LogReader
	DatabaseInfo
}

//go:embed static
var embeddedStaticDir embed.FS

// NewServer wires every route, rng feeds the sample dataset generator.
func NewServer(
	cnfg *config.AppConfig,
	db Store,
	ws *workspace.Workspace,
	predictor *predict.Predictor,
	mc *metrics.Collector,
	rng *rand.Rand,
	version string) (*Server, error) {

	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		return nil, fmt.Errorf("template manager initialization: %w", err)
	}

	s := &Server{
		logger:  logger,
		config:  cnfg.Api,
		ws:      ws,
		hub:     NewHub(logger),
		tm:      tm,
		router:  mux.NewRouter(),
		version: version,
	}
	s.hub.OnCount = func(n int) {
		mc.WebsocketClients.Set(float64(n))
	}

	flashes := NewFlashes(logger, cnfg.Api.SessionKey)
	handlerLogger := func(name string) *slog.Logger {
		return logger.With(slog.String("handler", name))
	}

	r := s.router
	r.Use(observeMW(logger, mc))

	r.Handle("/dataset", NewDatasetHandler(handlerLogger("dataset"), cnfg, ws, tm, flashes, mc))
	r.Handle("/dataset/sample", NewSampleHandler(handlerLogger("sample"), cnfg.Prediction, ws, flashes, mc, rng))
	r.Handle("/dataset/chart", NewDatasetChartHandler(handlerLogger("dataset_chart"), ws))

	r.Handle("/prediction", NewPredictionHandler(
		handlerLogger("prediction"),
		ws,
		predictor,
		cnfg.Prediction.AllowPastDates,
		tm,
		flashes,
		mc))

	r.Handle("/results", NewResultsHandler(handlerLogger("results"), ws, tm, flashes))
	r.Handle("/results/chart", NewResultsChartHandler(handlerLogger("results_chart"), ws))
	r.Handle("/results/export.xlsx", NewExportXLSXHandler(handlerLogger("export"), ws))
	r.Handle("/results/chart.png", NewExportPNGHandler(handlerLogger("export"), ws))

	r.Handle("/region", NewRegionHandler(handlerLogger("region"), tm))
	r.Handle("/log", NewLogHandler(handlerLogger("log"), db, tm))
	r.Handle("/sysinfo", NewSysInfoHandler(handlerLogger("sys_info"), tm, db, ws, s.hub, version))
	r.Handle("/logout", NewLogoutHandler(handlerLogger("logout")))
	r.Handle("/metrics", mc.Handler())
	r.HandleFunc("/ws", s.serveWs)

	r.PathPrefix("/").Handler(staticFilesHandler(cnfg.Api.WwwDir))

	return s, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	name := r.Header.Get("User-Agent")
	client, err := NewClient(s.hub, w, r, name)
	if err != nil {
		s.logger.Error("new websocket client failed", slog.Any("error", err))
		return
	}

	// The page gets the current state right away instead of waiting
	// for the next change
	if status, err := s.renderStatus(); err == nil {
		client.send <- status
	} else {
		s.logger.Error("rendering status failed", slog.Any("error", err))
	}

	select {
	case s.hub.Register <- client:
	case <-s.hub.done:
		client.conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) renderStatus() ([]byte, error) {
	buf, err := s.tm.Execute("status.html", newStatusView(s.ws.Snapshot(), s.version))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run serves until ctx is cancelled, pushing the status fragment to every
// connected page whenever the workspace changes.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting server...", slog.String("address", s.config.GetAddress()))
	srv := &http.Server{
		Addr:              s.config.GetAddress(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	defer s.tm.Close()

	go s.hub.Run(ctx)

	srvErrors := make(chan error, 1)
	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
				return err
			}
			return nil

		case <-s.ws.Changes():
			status, err := s.renderStatus()
			if err != nil {
				s.logger.Error("template execution failed", slog.Any("error", err))
				continue
			}

			select {
			case s.hub.Broadcast <- status:
			case <-ctx.Done():
			}
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}

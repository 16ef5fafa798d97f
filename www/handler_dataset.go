package www

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/angas/solara-go/config"
	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/metrics"
	"github.com/angas/solara-go/workspace"
	"github.com/angas/solara-go/www/chartjs"
)

func NewDatasetHandler(
	logger *slog.Logger,
	cnfg *config.AppConfig,
	ws *workspace.Workspace,
	tm *TemplateManager,
	flashes *Flashes,
	mc *metrics.Collector) http.HandlerFunc {

	maxUpload := cnfg.Api.GetMaxUploadBytes()
	sampleDays := cnfg.Prediction.GetSampleDays()

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			view := newDatasetView(ws.Snapshot(), maxUpload, sampleDays)
			view.Flashes = flashes.Pop(w, r)
			render(w, logger, tm, "dataset.html", http.StatusOK, view)

		case http.MethodPost:
			start := time.Now()
			ds, err := readUpload(w, r, maxUpload)
			if err != nil {
				ue := userError(err, maxUpload)
				mc.ObserveUpload(ue.Result, time.Since(start), 0)
				logger.Warn("dataset upload rejected", slog.Int("status", ue.Status), slog.Any("error", err))

				view := newDatasetView(ws.Snapshot(), maxUpload, sampleDays)
				view.Error = ue.Message
				render(w, logger, tm, "dataset.html", ue.Status, view)
				return
			}

			mc.ObserveUpload(metrics.ResultOK, time.Since(start), ds.Len())
			ws.SetDataset(ds)
			logger.Info("dataset loaded",
				slog.String("file", ds.Name),
				slog.Int64("size", ds.Size),
				slog.Int("records", ds.Len()))

			flashes.Add(w, r, FlashSuccess, fmt.Sprintf("Archivo %s cargado: %d registros", ds.Name, ds.Len()))
			http.Redirect(w, r, "/dataset", http.StatusSeeOther)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func readUpload(w http.ResponseWriter, r *http.Request, maxUpload int64) (*dataset.Dataset, error) {
	if r.ContentLength > maxUpload {
		return nil, ErrTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoFile, err)
	}
	defer file.Close()

	ds, err := dataset.Parse(file, header.Filename)
	if err != nil {
		return nil, err
	}
	ds.Size = header.Size
	return ds, nil
}

// NewSampleHandler loads a generated dataset, for trying the app without a file.
func NewSampleHandler(
	logger *slog.Logger,
	cnfg config.AppConfigPrediction,
	ws *workspace.Workspace,
	flashes *Flashes,
	mc *metrics.Collector,
	rng *rand.Rand) http.HandlerFunc {

	var mu sync.Mutex
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		mu.Lock()
		ds := dataset.Sample(rng, cnfg.GetSampleStart(), cnfg.GetSampleDays())
		mu.Unlock()

		ws.SetDataset(ds)
		mc.LoadedRecords.Set(float64(ds.Len()))
		logger.Info("sample dataset generated", slog.Int("records", ds.Len()))

		flashes.Add(w, r, FlashSuccess, fmt.Sprintf("Datos de muestra generados: %d registros", ds.Len()))
		http.Redirect(w, r, "/dataset", http.StatusSeeOther)
	}
}

// NewDatasetChartHandler serves the max/min per variable as a bar chart.
func NewDatasetChartHandler(logger *slog.Logger, ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		sum := ws.Summary()
		labels := make([]string, len(dataset.Variables))
		for i, v := range dataset.Variables {
			labels[i] = fmt.Sprintf("%s (%s)", v.Label(), v.Unit())
		}

		chart := chartjs.NewBarChart("Valores históricos", labels,
			chartjs.Series{Label: "Máximo", Color: chartjs.ColorRed},
			chartjs.Series{Label: "Promedio", Color: chartjs.ColorOrange},
			chartjs.Series{Label: "Mínimo", Color: chartjs.ColorGreen})

		if sum.Records > 0 {
			for i, v := range dataset.Variables {
				st := sum.Of(v)
				chart.Set(0, i, st.Max, 1)
				chart.Set(1, i, st.Mean, 1)
				chart.Set(2, i, st.Min, 1)
			}
		}

		writeJSON(w, logger, chart)
	}
}

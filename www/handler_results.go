package www

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/report"
	"github.com/angas/solara-go/workspace"
	"github.com/angas/solara-go/www/chartjs"
)

func NewResultsHandler(logger *slog.Logger, ws *workspace.Workspace, tm *TemplateManager, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		view := newResultsView(ws.Prediction(), flashes.Pop(w, r))
		render(w, logger, tm, "results.html", http.StatusOK, view)
	}
}

// NewResultsChartHandler serves the hourly profile, UV and the LSTM trend on
// the left axis, ozone and precipitation on the right one.
func NewResultsChartHandler(logger *slog.Logger, ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		p := ws.Prediction()
		if p == nil {
			ue := userError(ErrNoResults, 0)
			http.Error(w, ue.Message, ue.Status)
			return
		}

		writeJSON(w, logger, HourlyChart(p))
	}
}

func HourlyChart(p *predict.Prediction) chartjs.Chart {
	chart := chartjs.NewHourlyChart(fmt.Sprintf("Pronóstico horario %s", p.Date),
		chartjs.Series{Label: "UV", Color: chartjs.ColorOrange},
		chartjs.Series{Label: "Tendencia LSTM", Color: chartjs.ColorPurple, Dashed: true},
		chartjs.Series{Label: "O₃ (µg/m³)", Color: chartjs.ColorBlue, Axis: chartjs.RightAxis},
		chartjs.Series{Label: "Precipitación (mm)", Color: chartjs.ColorCyan, Axis: chartjs.RightAxis})

	for _, h := range p.Hours {
		chart.Set(0, h.Hour, h.UV, 1)
		chart.Set(1, h.Hour, h.LSTMTrend, 1)
		chart.Set(2, h.Hour, h.Ozone, 1)
		chart.Set(3, h.Hour, h.Precipitation, 2)
	}

	chart.Options.Scales[chartjs.LeftAxis] = chart.Options.Scales[chartjs.LeftAxis].WithTitle("Índice UV")
	chart.Options.Scales[chartjs.RightAxis] = chart.Options.Scales[chartjs.RightAxis].WithTitle("O₃ / mm")
	return chart
}

// NewExportHandler serves the latest prediction as a download.
func NewExportHandler(logger *slog.Logger, ws *workspace.Workspace, contentType, ext string, export func(*bytes.Buffer, *predict.Prediction) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		p := ws.Prediction()
		if p == nil {
			ue := userError(ErrNoResults, 0)
			http.Error(w, ue.Message, ue.Status)
			return
		}

		var buf bytes.Buffer
		if err := export(&buf, p); err != nil {
			logger.Error("exporting prediction", slog.String("format", ext), slog.Any("error", err))
			ue := userError(err, 0)
			http.Error(w, ue.Message, ue.Status)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="prediccion-%s.%s"`, p.Date, ext))
		if _, err := buf.WriteTo(w); err != nil {
			logger.Debug("writing export", slog.Any("error", err))
		}
	}
}

func NewExportXLSXHandler(logger *slog.Logger, ws *workspace.Workspace) http.HandlerFunc {
	return NewExportHandler(logger, ws,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx",
		func(buf *bytes.Buffer, p *predict.Prediction) error { return report.WriteXLSX(buf, p) })
}

func NewExportPNGHandler(logger *slog.Logger, ws *workspace.Workspace) http.HandlerFunc {
	return NewExportHandler(logger, ws, "image/png", "png",
		func(buf *bytes.Buffer, p *predict.Prediction) error { return report.WritePNG(buf, p) })
}

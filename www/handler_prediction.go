package www

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/metrics"
	"github.com/angas/solara-go/predict"
	"github.com/angas/solara-go/workspace"
)

func NewPredictionHandler(
	logger *slog.Logger,
	ws *workspace.Workspace,
	predictor *predict.Predictor,
	allowPastDates bool,
	tm *TemplateManager,
	flashes *Flashes,
	mc *metrics.Collector) http.HandlerFunc {

	form := func(date string) predictionView {
		snap := ws.Snapshot()
		today := hours.Today()
		v := predictionView{
			HasData: snap.HasData(),
			Records: snap.Dataset.Len(),
			Date:    date,
			Today:   today,
		}
		if !allowPastDates {
			v.MinDate = today
		}
		if t, err := hours.ParseDate(date); err == nil {
			v.LongDate = hours.LongDate(t)
		}
		return v
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			date := r.URL.Query().Get("date")
			if date == "" {
				date = hours.Today()
			}
			view := form(date)
			view.Flashes = flashes.Pop(w, r)
			render(w, logger, tm, "prediction.html", http.StatusOK, view)

		case http.MethodPost:
			date := strings.TrimSpace(r.FormValue("date"))

			snap := ws.Snapshot()
			p, err := predictor.Predict(snap.Dataset, date)
			if err == nil {
				err = ws.SetPrediction(snap.DatasetVersion, p)
			}
			if err != nil {
				ue := userError(err, 0)
				mc.ObservePrediction(ue.Result, 0)
				logger.Warn("prediction rejected", slog.String("date", date), slog.Int("status", ue.Status), slog.Any("error", err))

				view := form(date)
				view.Error = ue.Message
				render(w, logger, tm, "prediction.html", ue.Status, view)
				return
			}

			mc.ObservePrediction(metrics.ResultOK, p.UVMax)
			logger.Info("prediction generated",
				slog.String("id", p.ID),
				slog.String("date", p.Date),
				slog.Float64("uvMax", p.UVMax),
				slog.String("risk", p.Risk.Level))

			flashes.Add(w, r, FlashSuccess, "Predicción generada para el "+hours.LongDate(p.Day))
			http.Redirect(w, r, "/results", http.StatusSeeOther)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

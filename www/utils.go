package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding json response", slog.Any("error", err))
		http.Error(w, "unable to encode data points", http.StatusInternalServerError)
	}
}

// render executes a template into a buffer first so a failing template
// still yields a clean 500.
func render(w http.ResponseWriter, logger *slog.Logger, tm *TemplateManager, name string, status int, data any) {
	buf, err := tm.Execute(name, data)
	if err != nil {
		logger.Error("rendering template", slog.String("template", name), slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Debug("writing response", slog.Any("error", err))
	}
}

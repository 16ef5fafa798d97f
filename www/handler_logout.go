package www

import (
	"log/slog"
	"net/http"
)

// NewLogoutHandler only sends the browser back to the start page, there
// are no accounts to sign out of.
func NewLogoutHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		logger.Info("logout requested", slog.String("remoteAddr", r.RemoteAddr))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

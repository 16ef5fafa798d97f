package www

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const sessionName = "solara"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

type Flash struct {
	Kind    string
	Message string
}

// Flashes carries one-shot status messages across the redirect that
// follows a successful form post.
type Flashes struct {
	store  sessions.Store
	logger *slog.Logger
}

func NewFlashes(logger *slog.Logger, key *string) *Flashes {
	var secret []byte
	if key != nil && *key != "" {
		secret = []byte(*key)
	} else {
		// Flashes do not need to survive a restart
		secret = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Flashes{store: store, logger: logger}
}

func (f *Flashes) Add(w http.ResponseWriter, r *http.Request, kind, message string) {
	session, err := f.store.Get(r, sessionName)
	if err != nil {
		// A cookie signed with an old key, start over with a new session
		f.logger.Debug("discarding session", slog.Any("error", err))
	}
	session.AddFlash(message, kind)
	if err := session.Save(r, w); err != nil {
		f.logger.Warn("saving flash message failed", slog.Any("error", err))
	}
}

// Pop returns and clears the pending messages, successes first.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	session, err := f.store.Get(r, sessionName)
	if err != nil {
		return nil
	}

	var flashes []Flash
	for _, kind := range []string{FlashSuccess, FlashError} {
		for _, v := range session.Flashes(kind) {
			if msg, ok := v.(string); ok {
				flashes = append(flashes, Flash{Kind: kind, Message: msg})
			}
		}
	}

	if len(flashes) > 0 {
		if err := session.Save(r, w); err != nil {
			f.logger.Warn("clearing flash messages failed", slog.Any("error", err))
		}
	}
	return flashes
}

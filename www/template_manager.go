package www

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/angas/solara-go/dataset"
	"github.com/angas/solara-go/hours"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
)

//go:embed templates
var templatesDirEmbed embed.FS

type TemplateManager struct {
	templates *template.Template
	mutex     sync.RWMutex
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
}

var funcMap = template.FuncMap{
	"OneDecimal": func(n float64) string {
		return fmt.Sprintf("%.1f", n)
	},
	"TwoDecimals": func(n float64) string {
		return fmt.Sprintf("%.2f", n)
	},
	"Integer": func(n float64) string {
		return fmt.Sprintf("%.0f", n)
	},
	"Percent": func(n float64) string {
		return fmt.Sprintf("%.0f%%", n*100)
	},
	"Cell": func(c dataset.Cell) string {
		if !c.IsValid() || math.IsNaN(c.Value()) {
			return "-"
		}
		return humanize.FtoaWithDigits(c.Value(), 2)
	},
	"HourLabel": hours.Label,
	"LongDate":  hours.LongDate,
	"Time": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return hours.FormatTimeInGuiTimezone(t)
	},
	"Date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format(hours.DateLayout)
	},
	"Bytes": func(n int64) string {
		if n < 0 {
			n = 0
		}
		return humanize.Bytes(uint64(n))
	},
	"Comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"Ago": humanize.Time,
	"Lower":    strings.ToLower,
	"Add":      func(a, b int) int { return a + b },
	"Subtract": func(a, b int) int { return a - b },
}

func NewTemplateManager(logger *slog.Logger, extDir *string) (*TemplateManager, error) {
	tm := &TemplateManager{
		logger: logger,
	}

	if extDir != nil && *extDir != "" {
		if err := tm.loadExternalTemplates(*extDir); err != nil {
			return nil, err
		}
	} else if err := tm.loadInternalTemplates(); err != nil {
		return nil, err
	}

	return tm, nil
}

func (tm *TemplateManager) loadInternalTemplates() error {
	tm.logger.Debug("loading embedded templates...")
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesDirEmbed, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	tm.templates = tmpl
	return nil
}

// loadExternalTemplates parses templates from disk and reparses them
// whenever a file in the directory is written.
func (tm *TemplateManager) loadExternalTemplates(extDir string) error {
	templatesDir := filepath.Join(extDir, "templates")
	reload := func() error {
		tm.logger.Debug("loading external templates...")
		tmpl, err := template.New("").Funcs(funcMap).ParseGlob(filepath.Join(templatesDir, "*.html"))
		if err != nil {
			return fmt.Errorf("failed to parse templates: %w", err)
		}

		tm.mutex.Lock()
		tm.templates = tmpl
		tm.mutex.Unlock()
		return nil
	}

	if err := reload(); err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create template watcher: %w", err)
	}
	if err := watcher.Add(templatesDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch templates: %w", err)
	}
	tm.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := reload(); err != nil {
						tm.logger.Error("error reloading templates", slog.Any("error", err))
					} else {
						tm.logger.Debug("templates reloaded", slog.String("file", event.Name))
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				tm.logger.Debug("error watching templates", slog.Any("error", err))
			}
		}
	}()

	return nil
}

// Close stops watching external templates.
func (tm *TemplateManager) Close() error {
	if tm.watcher == nil {
		return nil
	}
	return tm.watcher.Close()
}

func (tm *TemplateManager) Execute(name string, data any) (bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := tm.ExecuteToWriter(name, data, &buf); err != nil {
		return bytes.Buffer{}, err
	}
	return buf, nil
}

func (tm *TemplateManager) ExecuteToWriter(name string, data any, w io.Writer) error {
	tm.mutex.RLock()
	err := tm.templates.ExecuteTemplate(w, name, data)
	tm.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return nil
}

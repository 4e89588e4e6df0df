package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// HTMLHandler serves the static dashboard from the web directory. The
// processed data bundle (data.js) is served from the output directory so
// the dashboard always reflects the latest pipeline run.
type HTMLHandler struct {
	webDir       string
	processedDir string
	logger       *slog.Logger
}

// NewHTMLHandler creates a static dashboard handler.
func NewHTMLHandler(webDir, processedDir string, logger *slog.Logger) *HTMLHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLHandler{
		webDir:       webDir,
		processedDir: processedDir,
		logger:       logger.With(slog.String("component", "html_handler")),
	}
}

// ServeHTTP serves dashboard assets with an index.html fallback.
func (h *HTMLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")
	if name == "" || name == "." {
		name = "index.html"
	}

	// data.js lives next to the other pipeline outputs, not in web/.
	if name == "data.js" {
		path := filepath.Join(h.processedDir, "data.js")
		if _, err := os.Stat(path); err == nil {
			http.ServeFile(w, r, path)
			return
		}
		// No run yet; serve an empty bundle so the page still loads.
		w.Header().Set("Content-Type", "application/javascript")
		w.Write([]byte("const DASHBOARD_DATA = null;\n"))
		return
	}

	path := filepath.Join(h.webDir, name)
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		// Unknown paths fall back to the dashboard shell.
		path = filepath.Join(h.webDir, "index.html")
	}

	http.ServeFile(w, r, path)
}

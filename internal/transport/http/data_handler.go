package http

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/chipphillips/federal-employment-analysis/internal/errors"
	"github.com/chipphillips/federal-employment-analysis/internal/exporter"
)

// DataHandler serves the processed summary tables over HTTP.
type DataHandler struct {
	processedDir string
	logger       *slog.Logger
}

// NewDataHandler creates a data handler reading from processedDir.
func NewDataHandler(processedDir string, logger *slog.Logger) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandler{
		processedDir: processedDir,
		logger:       logger.With(slog.String("component", "data_handler")),
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summaries", h.GetSummaries)
	r.Get("/summary/{name}", h.GetSummary)
	r.Get("/overall", h.GetOverall)
	r.Get("/download/{name}", h.Download)

	return r
}

// summaryInfo describes one summary table in the listing response.
type summaryInfo struct {
	Name      string     `json:"name"`
	FileName  string     `json:"file_name"`
	Available bool       `json:"available"`
	SizeBytes int64      `json:"size_bytes,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// GetSummaries handles GET /api/data/summaries.
func (h *DataHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	out := make([]summaryInfo, 0, len(exporter.SummaryFiles))
	for _, fileName := range exporter.SummaryFiles {
		info := summaryInfo{
			Name:     strings.TrimSuffix(fileName, filepath.Ext(fileName)),
			FileName: fileName,
		}
		if stat, err := os.Stat(filepath.Join(h.processedDir, fileName)); err == nil {
			info.Available = true
			info.SizeBytes = stat.Size()
			modTime := stat.ModTime()
			info.UpdatedAt = &modTime
		}
		out = append(out, info)
	}

	render.JSON(w, r, map[string]interface{}{"summaries": out})
}

// GetSummary handles GET /api/data/summary/{name}. The summary CSV is
// returned as JSON rows keyed by header name.
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	fileName, ok := h.resolveSummary(chi.URLParam(r, "name"))
	if !ok {
		apierrors.WriteError(w, apierrors.ErrSummaryNotFound)
		return
	}

	path := filepath.Join(h.processedDir, fileName)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			apierrors.WriteError(w, apierrors.NewWithDetails(http.StatusNotFound,
				"SUMMARY_NOT_READY", "Summary has not been generated yet. Run the pipeline first.", fileName))
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to open summary",
			slog.String("file", fileName),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FileSystemError("summary read", err))
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to parse summary",
			slog.String("file", fileName),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FileSystemError("summary parse", err))
		return
	}

	if len(records) == 0 {
		render.JSON(w, r, map[string]interface{}{"columns": []string{}, "rows": []map[string]string{}})
		return
	}

	// The writer emits a UTF-8 BOM; strip it from the first header cell.
	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
	}

	render.JSON(w, r, map[string]interface{}{"columns": headers, "rows": rows})
}

// GetOverall handles GET /api/data/overall by serving the generated
// overall statistics file verbatim.
func (h *DataHandler) GetOverall(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.processedDir, exporter.FileOverallStats)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			apierrors.WriteError(w, apierrors.NewWithDetails(http.StatusNotFound,
				"SUMMARY_NOT_READY", "Overall statistics have not been generated yet. Run the pipeline first.", exporter.FileOverallStats))
			return
		}
		apierrors.WriteError(w, apierrors.FileSystemError("overall statistics read", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// Download handles GET /api/data/download/{name}. Only generated output
// files can be downloaded; the name never touches the filesystem directly.
func (h *DataHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	fileName, ok := downloadable(name)
	if !ok {
		apierrors.WriteError(w, apierrors.ErrValidation("name", "Unknown download target"))
		return
	}

	path := filepath.Join(h.processedDir, fileName)
	if _, err := os.Stat(path); err != nil {
		apierrors.WriteError(w, apierrors.NewWithDetails(http.StatusNotFound,
			"FILE_NOT_FOUND", "File has not been generated yet", fileName))
		return
	}

	h.logger.InfoContext(r.Context(), "serving download", slog.String("file", fileName))

	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	http.ServeFile(w, r, path)
}

// resolveSummary maps a summary name, with or without the .csv suffix, to
// its allowlisted file name.
func (h *DataHandler) resolveSummary(name string) (string, bool) {
	for _, fileName := range exporter.SummaryFiles {
		if name == fileName || name == strings.TrimSuffix(fileName, ".csv") {
			return fileName, true
		}
	}
	return "", false
}

// downloadable maps a requested name to an allowlisted output file.
func downloadable(name string) (string, bool) {
	targets := append([]string{}, exporter.SummaryFiles...)
	targets = append(targets, exporter.FileOverallStats, exporter.FileWorkbook)
	for _, fileName := range targets {
		if name == fileName {
			return fileName, true
		}
	}
	return "", false
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/chipphillips/federal-employment-analysis/internal/errors"
	"github.com/chipphillips/federal-employment-analysis/internal/operations"
)

// OperationsHandler exposes pipeline run control over HTTP.
type OperationsHandler struct {
	manager  *operations.Manager
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOperationsHandler creates an operations handler.
func NewOperationsHandler(manager *operations.Manager, logger *slog.Logger) *OperationsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OperationsHandler{
		manager:  manager,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "operations_handler")),
	}
}

// Routes returns the operations routes.
func (h *OperationsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.StartOperation)
	r.Get("/", h.ListOperations)
	r.Get("/{id}", h.GetOperation)

	return r
}

// startRequest binds and validates the POST body.
type startRequest struct {
	operations.OperationRequest
}

func (req *startRequest) Bind(r *http.Request) error {
	return nil
}

// StartOperation handles POST /api/operations.
func (h *OperationsHandler) StartOperation(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := render.Bind(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validate.Struct(req.OperationRequest); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			apierrors.WriteError(w, apierrors.ErrValidation(errs[0].Field(), "failed validation: "+errs[0].Tag()))
			return
		}
		apierrors.WriteError(w, apierrors.ErrValidationFailed)
		return
	}

	op, err := h.manager.Start(req.OperationRequest)
	if err != nil {
		if apiErr, ok := err.(*apierrors.APIError); ok {
			apierrors.WriteError(w, apiErr)
			return
		}
		apierrors.WriteError(w, apierrors.ErrInternalServer)
		return
	}

	h.logger.InfoContext(r.Context(), "operation started",
		slog.String("operation_id", op.ID),
		slog.String("raw_file", req.RawFile))

	view, _ := h.manager.Snapshot(op.ID)
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, view)
}

// GetOperation handles GET /api/operations/{id}.
func (h *OperationsHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, ok := h.manager.Snapshot(id)
	if !ok {
		apierrors.WriteError(w, apierrors.ErrOperationNotFound)
		return
	}

	render.JSON(w, r, view)
}

// ListOperations handles GET /api/operations.
func (h *OperationsHandler) ListOperations(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"operations": h.manager.Snapshots(),
	})
}

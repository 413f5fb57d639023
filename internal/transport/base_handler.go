package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
	Alerts HeaderUtil
}

// NewBaseHandler creates a base handler with logger and the application
// name used in alert headers.
func NewBaseHandler(lg *slog.Logger, appName string) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	if appName == "" {
		appName = internal.DefaultApplicationName
	}
	return &BaseHandler{Logger: lg, Alerts: HeaderUtil{AppName: appName}}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// HandleServiceError is the single place errors become HTTP statuses.
// AppErrors keep their status and get failure alert headers naming entity;
// anything else is a 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error, entity string) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		h.Logger.Error("unhandled service error", "entity", entity, "error", err)
		appErr = internal.NewInternalError("Internal server error", err)
	}

	if appErr.Entity != "" {
		entity = appErr.Entity
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("service error", "entity", entity, "code", appErr.Code, "error", appErr)
	} else {
		h.Logger.Warn("request rejected", "entity", entity, "code", appErr.Code, "message", appErr.GetDetailedMessage())
	}

	h.Alerts.FailureAlert(w.Header(), entity, string(appErr.Code))
	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// DecodeJSON decodes the request body into dst. Unknown fields are ignored.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}, entity string) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return internal.NewBadRequestAlertError(
			fmt.Sprintf("invalid request body: %v", err), entity, internal.ErrCodeInvalidBody).WithCause(err)
	}
	return nil
}

// IDParam parses the {id} path parameter.
func (h *BaseHandler) IDParam(r *http.Request, entity string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, internal.NewBadRequestAlertError(
			fmt.Sprintf("invalid id %q", raw), entity, internal.ErrCodeInvalidID)
	}
	return id, nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"quicknote/config/database"
	"quicknote/internal/command"
	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
)

const maxArgsBytes = 1 << 20

type CommandHandler struct {
	Registry *command.Registry
	Pool     *database.Pool
}

func NewCommandHandler(reg *command.Registry, pool *database.Pool) *CommandHandler {
	return &CommandHandler{Registry: reg, Pool: pool}
}

// Invoke runs the command named in the path with the JSON request body as arguments.
func (h *CommandHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.PathValue("command")
	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Registry.Invoke(r.Context(), name, args)
	if err != nil {
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Sugar.Errorf("Handler: command %s failed: %v", name, err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, result)
}

func (h *CommandHandler) ListCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.Registry.Names())
}

type healthResponse struct {
	Status             string `json:"status"`
	DatabaseConfigured bool   `json:"database_configured"`
}

func (h *CommandHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", DatabaseConfigured: h.Pool.Configured()}
	if !resp.DatabaseConfigured {
		resp.Status = "degraded"
	}
	writeJSON(w, resp)
}

// StatusFor maps a command error onto an HTTP status.
func StatusFor(err error) int {
	var argErr *command.ArgumentError
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		return http.StatusNotFound
	case errors.As(err, &argErr):
		return http.StatusBadRequest
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConfigMissing:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Handler: failed to encode response: %v", err)
	}
}

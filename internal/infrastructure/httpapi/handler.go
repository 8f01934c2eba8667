package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"uigen-bridge/internal/application/port/input"
	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type promptResponse struct {
	Files map[string]string `json:"files"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type Handler struct {
	executor input.PromptExecutor
	logger   output.LoggerPort
}

func NewHandler(executor input.PromptExecutor, logger output.LoggerPort) *Handler {
	return &Handler{executor: executor, logger: logger}
}

func (h *Handler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	var body promptRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}
	if strings.TrimSpace(body.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt must be a non-empty string", Kind: "validation"})
		return
	}

	req := entity.GenerationRequest{ID: uuid.NewString(), Prompt: body.Prompt}

	result, err := h.executor.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("Generation request failed", "request_id", req.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: errorKind(err)})
		return
	}

	writeJSON(w, http.StatusOK, promptResponse{Files: result.FileMap()})
}

// errorKind maps the error taxonomy to the optional "kind" field of the
// error response.
func errorKind(err error) string {
	var (
		authErr    *entity.AuthenticationError
		genErr     *entity.GenerationFailedError
		timeoutErr *entity.GenerationTimeoutError
		extractErr *entity.ExtractionError
		driverErr  *entity.DriverError
	)
	switch {
	case errors.As(err, &authErr):
		return entity.KindAuthentication
	case errors.As(err, &genErr):
		return entity.KindGeneration
	case errors.As(err, &timeoutErr):
		return entity.KindTimeout
	case errors.As(err, &extractErr):
		return entity.KindExtraction
	case errors.As(err, &driverErr):
		return entity.KindDriver
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

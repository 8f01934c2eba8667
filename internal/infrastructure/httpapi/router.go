package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

func NewRouter(h *Handler, serviceName string) http.Handler {
	requestLogger := httplog.NewLogger(serviceName, httplog.Options{
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)

	r.Post("/api/prompt", h.HandlePrompt)

	return r
}

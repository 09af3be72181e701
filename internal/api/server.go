// Package api exposes the HTTP surface: recipe CRUD and search, settings
// management and the generation endpoint.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platewise/gusteau/internal/config"
	apperrors "github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/services/generation"
	"github.com/platewise/gusteau/internal/settings"
	"github.com/platewise/gusteau/internal/store"
)

// RecipeGenerator is the slice of the generation service the handlers
// need. Tests substitute a stub.
type RecipeGenerator interface {
	Generate(ctx context.Context, userInput string, cfg settings.ProviderConfig) (generation.Result, error)
	TestConnection(ctx context.Context, cfg settings.ProviderConfig) generation.ConnectionTestResult
}

type Server struct {
	cfg       *config.Config
	recipes   *store.RecipeStore
	resolver  *settings.Resolver
	generator RecipeGenerator
}

func NewServer(cfg *config.Config, recipes *store.RecipeStore, resolver *settings.Resolver, generator RecipeGenerator) *Server {
	return &Server{
		cfg:       cfg,
		recipes:   recipes,
		resolver:  resolver,
		generator: generator,
	}
}

// Routes registers all API handlers on the given router. The caller
// mounts it under /api.
func (s *Server) Routes(r chi.Router) {
	r.Get("/recipes", s.HandleListRecipes)
	r.Post("/recipes", s.HandleCreateRecipe)
	r.Get("/recipes/{id}", s.HandleGetRecipe)
	r.Put("/recipes/{id}", s.HandleUpdateRecipe)
	r.Delete("/recipes/{id}", s.HandleDeleteRecipe)
	r.Get("/tags", s.HandleListTags)
	r.Get("/stats", s.HandleStats)

	r.Post("/generate", s.HandleGenerate)

	r.Get("/settings", s.HandleGetSettings)
	r.Put("/settings/{key}", s.HandlePutSetting)
	r.Post("/settings/provider", s.HandleSelectProvider)
	r.Delete("/settings", s.HandleResetSettings)
	r.Post("/settings/test", s.HandleTestConnection)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error *apperrors.AppError `json:"error"`
}

// writeError maps an error onto its HTTP response. AppErrors carry their
// own status code; anything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.NewInternalError("internal server error", "INTERNAL", err)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	writeJSON(w, appErr.StatusCode, errorBody{Error: appErr})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("Invalid request body", "BODY_INVALID", "Send a valid JSON body.")
	}
	return nil
}

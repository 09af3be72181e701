package api

import (
	"net/http"

	"github.com/platewise/gusteau/internal/store"
	"github.com/platewise/gusteau/internal/validation"
)

type GenerateRequest struct {
	Input string `json:"input"`
}

// GenerateResponse returns the stored recipe. Degraded marks a fallback
// recipe built from a provider response that was not valid structured
// JSON; the raw text then sits verbatim in the recipe's instructions.
type GenerateResponse struct {
	Recipe   *store.Recipe `json:"recipe"`
	Degraded bool          `json:"degraded"`
}

// HandleGenerate runs the full pipeline: resolve the active provider
// config, call the provider, normalize the response and persist the
// resulting recipe. Configuration problems and provider failures are
// errors; an unparseable provider body is not, it yields a fallback
// recipe.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.ValidateGenerationInput(req.Input); err != nil {
		writeError(w, r, err)
		return
	}

	cfg, err := s.resolver.LoadActiveConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.generator.Generate(r.Context(), req.Input, cfg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.recipes.Add(r.Context(), result.Recipe)
	if err != nil {
		writeError(w, r, err)
		return
	}
	stored, err := s.recipes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, GenerateResponse{
		Recipe:   stored,
		Degraded: result.Degraded,
	})
}

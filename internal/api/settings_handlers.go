package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/services/generation"
	"github.com/platewise/gusteau/internal/settings"
	"github.com/platewise/gusteau/internal/validation"
)

// SettingsResponse is the resolved active configuration plus whether it
// is complete enough to generate with.
type SettingsResponse struct {
	Config     settings.ProviderConfig `json:"config"`
	Configured bool                    `json:"configured"`
}

func (s *Server) writeSettings(w http.ResponseWriter, r *http.Request, status int) {
	cfg, err := s.resolver.LoadActiveConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, SettingsResponse{Config: cfg, Configured: settings.IsConfigured(cfg)})
}

func (s *Server) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.writeSettings(w, r, http.StatusOK)
}

type PutSettingRequest struct {
	Value string `json:"value"`
}

// HandlePutSetting stores one settings field. The apiKey and model fields
// are written under the currently selected provider.
func (s *Server) HandlePutSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := validation.ValidateSettingKey(key); err != nil {
		writeError(w, r, err)
		return
	}

	var req PutSettingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.resolver.SaveField(r.Context(), key, req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeSettings(w, r, http.StatusOK)
}

type SelectProviderRequest struct {
	Provider string `json:"provider"`
}

// HandleSelectProvider switches the active provider. The provider must be
// in the registry; its stored credentials, or the registry default model,
// become the active ones.
func (s *Server) HandleSelectProvider(w http.ResponseWriter, r *http.Request) {
	var req SelectProviderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if !generation.KnownProvider(req.Provider) {
		writeError(w, r, apperrors.NewValidationError(
			fmt.Sprintf("Unknown provider %q", req.Provider),
			"PROVIDER_UNKNOWN",
			"Supported providers are gemini and openrouter.",
		))
		return
	}

	cfg, err := s.resolver.SelectProvider(r.Context(), req.Provider)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Config: cfg, Configured: settings.IsConfigured(cfg)})
}

// HandleResetSettings clears every stored setting, credentials of all
// providers included.
func (s *Server) HandleResetSettings(w http.ResponseWriter, r *http.Request) {
	if err := s.resolver.ResetAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTestConnection probes the active provider with a real, cheap
// generation call. The response is 200 whether or not the probe worked;
// the outcome is in the body.
func (s *Server) HandleTestConnection(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.resolver.LoadActiveConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.generator.TestConnection(r.Context(), cfg))
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platewise/gusteau/internal/store"
	"github.com/platewise/gusteau/internal/validation"
)

// HandleListRecipes lists stored recipes, newest first. The optional q
// parameter filters by title, ingredient name or tag; the optional tag
// parameter filters by exact tag.
func (s *Server) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	var (
		recipes []store.Recipe
		err     error
	)

	switch {
	case r.URL.Query().Get("tag") != "":
		recipes, err = s.recipes.ByTag(r.Context(), r.URL.Query().Get("tag"))
	case r.URL.Query().Has("q"):
		recipes, err = s.recipes.Search(r.Context(), r.URL.Query().Get("q"))
	default:
		recipes, err = s.recipes.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

func (s *Server) HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var recipe store.Recipe
	if err := decodeBody(r, &recipe); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validation.ValidateRecipePayload(&recipe); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.recipes.Add(r.Context(), &recipe)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.recipes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// UpdateRecipeRequest carries a partial recipe update. Absent fields are
// left untouched.
type UpdateRecipeRequest struct {
	Title         *string               `json:"title"`
	Description   *string               `json:"description"`
	Servings      *int                  `json:"servings"`
	CookingTime   *string               `json:"cookingTime"`
	Difficulty    *string               `json:"difficulty"`
	Ingredients   *store.IngredientList `json:"ingredients"`
	Instructions  *store.StringSlice    `json:"instructions"`
	Tags          *store.StringSlice    `json:"tags"`
	NutritionTips *string               `json:"nutritionTips"`
	Variations    *string               `json:"variations"`
	Commentary    *string               `json:"commentary"`
}

func (s *Server) HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var req UpdateRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	patch := store.RecipePatch{
		Title:         req.Title,
		Description:   req.Description,
		Servings:      req.Servings,
		CookingTime:   req.CookingTime,
		Difficulty:    req.Difficulty,
		Ingredients:   req.Ingredients,
		Instructions:  req.Instructions,
		Tags:          req.Tags,
		NutritionTips: req.NutritionTips,
		Variations:    req.Variations,
		Commentary:    req.Commentary,
	}

	if err := s.recipes.Update(r.Context(), id, patch); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.recipes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDeleteRecipe removes a recipe. Deleting an unknown id succeeds;
// the operation is idempotent.
func (s *Server) HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := s.recipes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.recipes.Tags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.recipes.GetStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

package generation

import (
	"encoding/json"
	"strings"

	"github.com/platewise/gusteau/internal/store"
)

// Result is the tagged outcome of a generation call. Degraded is true
// when the provider's body could not be decoded into a complete recipe
// and the fallback record was produced instead. Raw always carries the
// provider's text payload.
type Result struct {
	Recipe   *store.Recipe
	Degraded bool
	Raw      string
}

// parsedRecipe mirrors the JSON object the prompt asks the model for.
type parsedRecipe struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Servings      int                `json:"servings"`
	CookingTime   string             `json:"cookingTime"`
	Difficulty    string             `json:"difficulty"`
	Ingredients   []store.Ingredient `json:"ingredients"`
	Instructions  []string           `json:"instructions"`
	Tags          []string           `json:"tags"`
	NutritionTips string             `json:"nutritionTips"`
	Variations    string             `json:"variations"`
	Commentary    string             `json:"commentary"`
}

// ParseResponse normalizes a raw provider payload into a Recipe. A body
// that fails strict JSON decoding, or decodes without the required title,
// ingredients and instructions, yields the fallback recipe rather than an
// error: a received-but-malformed response is a softer failure than a
// transport failure.
func ParseResponse(raw string) Result {
	cleaned := stripCodeFences(raw)

	var parsed parsedRecipe
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return Result{Recipe: FallbackRecipe(raw), Degraded: true, Raw: raw}
	}

	if parsed.Title == "" || len(parsed.Ingredients) == 0 || len(parsed.Instructions) == 0 {
		return Result{Recipe: FallbackRecipe(raw), Degraded: true, Raw: raw}
	}

	return Result{Recipe: normalize(parsed), Raw: raw}
}

// normalize applies the documented defaults to every optional field.
func normalize(parsed parsedRecipe) *store.Recipe {
	recipe := &store.Recipe{
		Title:         parsed.Title,
		Description:   parsed.Description,
		Servings:      parsed.Servings,
		CookingTime:   parsed.CookingTime,
		Difficulty:    parsed.Difficulty,
		Instructions:  store.StringSlice(parsed.Instructions),
		Tags:          store.StringSlice(parsed.Tags),
		NutritionTips: parsed.NutritionTips,
		Variations:    parsed.Variations,
		Commentary:    parsed.Commentary,
	}

	if recipe.Servings <= 0 {
		recipe.Servings = 2
	}
	if recipe.CookingTime == "" {
		recipe.CookingTime = "unspecified"
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = "medium"
	}
	if recipe.Tags == nil {
		recipe.Tags = store.StringSlice{}
	}

	recipe.Ingredients = make(store.IngredientList, 0, len(parsed.Ingredients))
	for _, ing := range parsed.Ingredients {
		if ing.Name == "" {
			ing.Name = "unknown ingredient"
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}

	return recipe
}

// stripCodeFences removes markdown code fence markers that models wrap
// around JSON despite being told not to.
func stripCodeFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json\n", "")
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```\n", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

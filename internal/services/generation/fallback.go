package generation

import (
	"github.com/platewise/gusteau/internal/store"
)

// FallbackTitle is the fixed title of every fallback recipe.
const FallbackTitle = "AI-generated recipe"

// rawResponseLeadIn is the first instruction step of a fallback recipe;
// the raw provider text follows it verbatim as the second step.
const rawResponseLeadIn = "The response could not be parsed as structured data; the raw text follows:"

// FallbackRecipe builds a degraded but persistable recipe from a provider
// response that could not be normalized. The raw text is embedded in the
// instructions so the generated content is never lost.
func FallbackRecipe(raw string) *store.Recipe {
	return &store.Recipe{
		Title:       FallbackTitle,
		Description: "Recipe generated by the AI assistant",
		Servings:    2,
		CookingTime: "about 30 minutes",
		Difficulty:  "medium",
		Ingredients: store.IngredientList{
			{Name: "Check the raw response below for the full ingredient list"},
		},
		Instructions: store.StringSlice{
			rawResponseLeadIn,
			raw,
		},
		Tags: store.StringSlice{"ai-generated"},
	}
}

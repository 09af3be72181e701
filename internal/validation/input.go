// Package validation checks user-supplied input before it reaches the
// generation pipeline or the store.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/store"
)

// MaxGenerationInputLength bounds the free-text dish request. Anything
// longer is almost certainly a paste accident and would blow the prompt
// budget.
const MaxGenerationInputLength = 2000

// ValidateGenerationInput checks the free-text dish request.
func ValidateGenerationInput(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return errors.NewValidationError("Please describe the dish you want a recipe for", "INPUT_REQUIRED", "Send a non-empty input, e.g. \"tomato and egg stir fry\".")
	}
	if utf8.RuneCountInString(trimmed) > MaxGenerationInputLength {
		return errors.NewValidationError(
			fmt.Sprintf("Request too long, keep it under %d characters", MaxGenerationInputLength),
			"INPUT_TOO_LONG",
			"Shorten the request to a dish description.",
		)
	}
	return nil
}

// ValidateRecipePayload checks a manually submitted recipe before it is
// stored. The generation pipeline never produces records that fail these
// checks, so this only guards direct API writes.
func ValidateRecipePayload(r *store.Recipe) error {
	if r == nil {
		return errors.NewValidationError("Recipe payload is required", "RECIPE_REQUIRED", "Send a JSON recipe body.")
	}

	var missing []string
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if len(r.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(r.Instructions) == 0 {
		missing = append(missing, "instructions")
	}
	if len(missing) > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("Recipe is missing required fields: %s", strings.Join(missing, ", ")),
			"RECIPE_INCOMPLETE",
			"Provide a title plus at least one ingredient and one instruction.",
		)
	}

	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return errors.NewValidationError(
				fmt.Sprintf("Ingredient %d has no name", i+1),
				"INGREDIENT_NAME_REQUIRED",
				"Give every ingredient a name.",
			)
		}
	}
	if r.Servings < 0 {
		return errors.NewValidationError("Servings cannot be negative", "SERVINGS_INVALID", "Use a positive servings count.")
	}
	return nil
}

// ValidateSettingKey restricts settings writes to the known field names.
// Provider-namespaced credential keys are composed server side, never
// accepted from the client directly.
func ValidateSettingKey(key string) error {
	switch key {
	case "apiKey", "model", "temperature", "maxTokens":
		return nil
	default:
		return errors.NewValidationError(
			fmt.Sprintf("Unknown setting %q", key),
			"SETTING_UNKNOWN",
			"Valid settings are apiKey, model, temperature and maxTokens.",
		)
	}
}

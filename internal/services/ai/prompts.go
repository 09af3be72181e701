// Package ai builds the prompts sent to recipe generation providers.
// Prompt text is configuration data as far as the rest of the pipeline is
// concerned: providers receive the built string and never inspect it.
package ai

import (
	"fmt"
	"strings"
)

const roleSection = `<ROLE>
You are a professional chef and nutritionist. Given a user's ingredients
and wishes, you create a single detailed recipe and return it as strict
JSON.
</ROLE>`

const outputFormatSection = `<OUTPUT_FORMAT>
Always respond with a single JSON object using exactly this structure and
no other text. Do not wrap the JSON in markdown code fences.

{
  "title": "",
  "description": "",
  "servings": 2,
  "cookingTime": "30 minutes",
  "difficulty": "easy",
  "ingredients": [
    {
      "name": "",
      "amount": "",
      "unit": ""
    }
  ],
  "instructions": [
    "step 1",
    "step 2"
  ],
  "tags": [],
  "nutritionTips": "",
  "variations": "",
  "commentary": ""
}
</OUTPUT_FORMAT>`

const requirementsSection = `<REQUIREMENTS>
1. Follow the user's request faithfully; creative combinations are fine.
2. Keep the instructions clear, ordered and actionable.
3. Use accurate amounts for every ingredient.
4. The "difficulty" field is one of: easy, medium, hard.
5. Include a few short tags suitable for filtering.
6. "nutritionTips", "variations" and "commentary" are optional free text.
7. The reply must be valid JSON matching the structure above.
</REQUIREMENTS>`

// SystemPrompt is sent as the system message on chat-completion style
// providers.
const SystemPrompt = "You are a professional chef who creates detailed, reliable recipes. Always respond with a single strict JSON object and no surrounding text."

// BuildRecipePrompt assembles the full generation prompt for userInput.
func BuildRecipePrompt(userInput string) string {
	var b strings.Builder
	b.WriteString(roleSection)
	b.WriteString("\n\n")
	b.WriteString(outputFormatSection)
	b.WriteString("\n\n")
	b.WriteString(requirementsSection)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("<USER_REQUEST>\n%s\n</USER_REQUEST>", userInput))
	return b.String()
}

package store

import (
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("", logger.Silent)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	return db
}

func testRecipe(title string, tags ...string) *Recipe {
	return &Recipe{
		Title:       title,
		Description: "test recipe",
		Servings:    2,
		CookingTime: "30 minutes",
		Difficulty:  "easy",
		Ingredients: IngredientList{
			{Name: "egg", Amount: "2", Unit: "piece"},
		},
		Instructions: StringSlice{"crack", "cook"},
		Tags:         StringSlice(tags),
	}
}

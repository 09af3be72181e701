// Command seed fills the local database with fake recipes for demos and
// manual testing. Safe to run repeatedly; every run adds a fresh batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	_ "github.com/joho/godotenv/autoload"
	gormlogger "gorm.io/gorm/logger"

	"github.com/platewise/gusteau/internal/config"
	"github.com/platewise/gusteau/internal/store"
)

var difficulties = []string{"easy", "medium", "hard"}

var tagPool = []string{
	"quick", "vegetarian", "comfort food", "spicy", "dessert",
	"breakfast", "dinner", "one pot", "weeknight", "ai-generated",
}

func main() {
	count := flag.Int("count", 20, "number of recipes to create")
	seed := flag.Int64("seed", 0, "faker seed, 0 for random")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := store.Open(cfg.DatabasePath, gormlogger.Silent)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	faker := gofakeit.New(*seed)
	recipes := store.NewRecipeStore(db)
	ctx := context.Background()

	for i := 0; i < *count; i++ {
		recipe := fakeRecipe(faker)
		if _, err := recipes.Add(ctx, recipe); err != nil {
			log.Fatalf("Failed to insert recipe %q: %v", recipe.Title, err)
		}
	}

	fmt.Printf("Seeded %d recipes into %s\n", *count, cfg.DatabasePath)
}

func fakeRecipe(faker *gofakeit.Faker) *store.Recipe {
	dish := faker.Dinner()

	ingredients := make(store.IngredientList, 0, 6)
	for i := 0; i < faker.Number(3, 6); i++ {
		ingredients = append(ingredients, store.Ingredient{
			Name:   strings.ToLower(faker.Vegetable()),
			Amount: fmt.Sprintf("%d", faker.Number(1, 500)),
			Unit:   faker.RandomString([]string{"g", "ml", "tbsp", "tsp", "pcs", "cup"}),
		})
	}
	ingredients = append(ingredients, store.Ingredient{
		Name:   strings.ToLower(faker.Fruit()),
		Amount: "1",
		Unit:   "pcs",
	})

	instructions := make(store.StringSlice, 0, 5)
	for i := 0; i < faker.Number(3, 5); i++ {
		instructions = append(instructions, faker.Sentence(faker.Number(8, 14)))
	}

	tags := store.StringSlice{}
	for _, tag := range tagPool {
		if faker.Bool() && len(tags) < 3 {
			tags = append(tags, tag)
		}
	}

	return &store.Recipe{
		Title:        dish,
		Description:  faker.Sentence(12),
		Servings:     faker.Number(1, 6),
		CookingTime:  fmt.Sprintf("%d minutes", faker.Number(10, 90)),
		Difficulty:   faker.RandomString(difficulties),
		Ingredients:  ingredients,
		Instructions: instructions,
		Tags:         tags,
	}
}

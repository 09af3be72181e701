package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/platewise/gusteau/internal/errors"
)

// RecipeStore provides CRUD and query access to persisted recipes.
type RecipeStore struct {
	db *gorm.DB
}

func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// Add persists a new recipe. The store assigns the identifier and both
// timestamps; anything the caller set on those fields is overwritten.
func (s *RecipeStore) Add(ctx context.Context, recipe *Recipe) (string, error) {
	now := time.Now()
	recipe.ID = uuid.New().String()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return "", apperrors.NewStorageError("failed to save recipe", "RECIPE_SAVE_FAILED", err)
	}
	return recipe.ID, nil
}

// Get returns the recipe with the given id.
func (s *RecipeStore) Get(ctx context.Context, id string) (*Recipe, error) {
	var recipe Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "Check the recipe id and try again.")
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to load recipe", "RECIPE_LOAD_FAILED", err)
	}
	return &recipe, nil
}

// List returns all recipes, newest first. The result is never nil so
// list endpoints marshal empty collections as [] rather than null.
func (s *RecipeStore) List(ctx context.Context) ([]Recipe, error) {
	recipes := []Recipe{}
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list recipes", "RECIPE_LIST_FAILED", err)
	}
	return recipes, nil
}

// RecipePatch describes a partial recipe update. Nil fields are left
// untouched.
type RecipePatch struct {
	Title         *string
	Description   *string
	Servings      *int
	CookingTime   *string
	Difficulty    *string
	Ingredients   *IngredientList
	Instructions  *StringSlice
	Tags          *StringSlice
	NutritionTips *string
	Variations    *string
	Commentary    *string
}

// Update applies a partial update and refreshes the updatedAt timestamp.
func (s *RecipeStore) Update(ctx context.Context, id string, patch RecipePatch) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Servings != nil {
		updates["servings"] = *patch.Servings
	}
	if patch.CookingTime != nil {
		updates["cooking_time"] = *patch.CookingTime
	}
	if patch.Difficulty != nil {
		updates["difficulty"] = *patch.Difficulty
	}
	if patch.Ingredients != nil {
		updates["ingredients"] = *patch.Ingredients
	}
	if patch.Instructions != nil {
		updates["instructions"] = *patch.Instructions
	}
	if patch.Tags != nil {
		updates["tags"] = *patch.Tags
	}
	if patch.NutritionTips != nil {
		updates["nutrition_tips"] = *patch.NutritionTips
	}
	if patch.Variations != nil {
		updates["variations"] = *patch.Variations
	}
	if patch.Commentary != nil {
		updates["commentary"] = *patch.Commentary
	}

	result := s.db.WithContext(ctx).Model(&Recipe{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return apperrors.NewStorageError("failed to update recipe", "RECIPE_UPDATE_FAILED", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "Check the recipe id and try again.")
	}
	return nil
}

// Delete removes the recipe with the given id. Deleting an id that does
// not exist is a no-op: delete is idempotent.
func (s *RecipeStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Delete(&Recipe{}, "id = ?", id).Error
	if err != nil {
		return apperrors.NewStorageError("failed to delete recipe", "RECIPE_DELETE_FAILED", err)
	}
	return nil
}

// Search returns recipes whose title, ingredient names or tags contain the
// query, case-insensitively. Ingredients and tags live in JSON columns, so
// matching happens here rather than in SQL to avoid hits on amounts or
// units.
func (s *RecipeStore) Search(ctx context.Context, query string) ([]Recipe, error) {
	recipes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return recipes, nil
	}

	matched := []Recipe{}
	for _, r := range recipes {
		if recipeMatches(r, q) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func recipeMatches(r Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), q) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// ByTag returns all recipes carrying the exact tag.
func (s *RecipeStore) ByTag(ctx context.Context, tag string) ([]Recipe, error) {
	recipes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := []Recipe{}
	for _, r := range recipes {
		for _, t := range r.Tags {
			if t == tag {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched, nil
}

// TagCount pairs a tag with the number of recipes using it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats summarizes the recipe collection.
type Stats struct {
	TotalRecipes int        `json:"totalRecipes"`
	TotalTags    int        `json:"totalTags"`
	PopularTags  []TagCount `json:"popularTags"`
}

// Tags returns the global tag vocabulary in first-seen order across the
// collection, newest recipe first.
func (s *RecipeStore) Tags(ctx context.Context) ([]string, error) {
	recipes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, r := range recipes {
		for _, t := range r.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags, nil
}

// GetStats computes collection totals and the ten most used tags.
func (s *RecipeStore) GetStats(ctx context.Context) (*Stats, error) {
	recipes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range recipes {
		for _, t := range r.Tags {
			counts[t]++
		}
	}

	popular := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		popular = append(popular, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Tag < popular[j].Tag
	})
	if len(popular) > 10 {
		popular = popular[:10]
	}

	return &Stats{
		TotalRecipes: len(recipes),
		TotalTags:    len(counts),
		PopularTags:  popular,
	}, nil
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/platewise/gusteau/internal/errors"
)

func TestRecipeStore_AddGetRoundTrip(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	in := testRecipe("番茄炒蛋", "家常菜")
	in.Ingredients = IngredientList{
		{Name: "番茄", Amount: "2", Unit: "顆"},
		{Name: "雞蛋", Amount: "3", Unit: "顆"},
	}

	id, err := rs.Add(ctx, in)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "" {
		t.Fatal("Add must assign an id")
	}

	got, err := rs.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.Title != "番茄炒蛋" {
		t.Errorf("title mismatch: %q", got.Title)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[1].Name != "雞蛋" {
		t.Errorf("ingredients did not round-trip: %+v", got.Ingredients)
	}
	if len(got.Instructions) != 2 {
		t.Errorf("instructions did not round-trip: %+v", got.Instructions)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps must be assigned on insertion")
	}
}

func TestRecipeStore_Get_NotFound(t *testing.T) {
	rs := NewRecipeStore(testDB(t))

	_, err := rs.Get(context.Background(), "no-such-id")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeNotFound {
		t.Errorf("expected a not found error, got %v", err)
	}
}

func TestRecipeStore_EmptyCollectionsAreNotNil(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	// Empty results must marshal as [] in API responses, never null.
	list, err := rs.List(ctx)
	if err != nil || list == nil {
		t.Errorf("List on an empty database = %v, %v; want empty non-nil slice", list, err)
	}
	found, err := rs.Search(ctx, "nothing matches")
	if err != nil || found == nil {
		t.Errorf("Search without matches = %v, %v; want empty non-nil slice", found, err)
	}
	byTag, err := rs.ByTag(ctx, "no-such-tag")
	if err != nil || byTag == nil {
		t.Errorf("ByTag without matches = %v, %v; want empty non-nil slice", byTag, err)
	}
	tags, err := rs.Tags(ctx)
	if err != nil || tags == nil {
		t.Errorf("Tags on an empty database = %v, %v; want empty non-nil slice", tags, err)
	}
	stats, err := rs.GetStats(ctx)
	if err != nil || stats == nil || stats.PopularTags == nil {
		t.Errorf("GetStats on an empty database = %+v, %v; want non-nil popular tags", stats, err)
	}
}

func TestRecipeStore_List_NewestFirst(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := rs.Add(ctx, testRecipe(title)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		// created_at must strictly increase for a deterministic order.
		time.Sleep(5 * time.Millisecond)
	}

	recipes, err := rs.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipes) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(recipes))
	}
	if recipes[0].Title != "third" || recipes[2].Title != "first" {
		t.Errorf("expected newest first, got %q..%q", recipes[0].Title, recipes[2].Title)
	}
}

func TestRecipeStore_Update_RefreshesUpdatedAt(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	id, err := rs.Add(ctx, testRecipe("before"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	created, _ := rs.Get(ctx, id)

	time.Sleep(5 * time.Millisecond)

	newTitle := "after"
	newServings := 4
	if err := rs.Update(ctx, id, RecipePatch{Title: &newTitle, Servings: &newServings}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := rs.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "after" || got.Servings != 4 {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Description != "test recipe" {
		t.Error("untouched fields must survive a partial update")
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updatedAt must be refreshed on every mutation")
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must never change")
	}
}

func TestRecipeStore_Update_NotFound(t *testing.T) {
	rs := NewRecipeStore(testDB(t))

	title := "anything"
	err := rs.Update(context.Background(), "no-such-id", RecipePatch{Title: &title})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeNotFound {
		t.Errorf("expected a not found error, got %v", err)
	}
}

func TestRecipeStore_Delete_Idempotent(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	id, err := rs.Add(ctx, testRecipe("doomed"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := rs.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	recipes, err := rs.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(recipes))
	}

	// Second delete of the same id is a documented no-op.
	if err := rs.Delete(ctx, id); err != nil {
		t.Errorf("second delete must not error, got %v", err)
	}
}

func TestRecipeStore_Search(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	pancakes := testRecipe("Fluffy Pancakes", "breakfast")
	pancakes.Ingredients = IngredientList{{Name: "Flour", Amount: "120", Unit: "g"}}
	curry := testRecipe("Chicken Curry", "dinner", "spicy")
	curry.Ingredients = IngredientList{{Name: "chicken thigh", Amount: "300", Unit: "g"}}

	for _, r := range []*Recipe{pancakes, curry} {
		if _, err := rs.Add(ctx, r); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	cases := []struct {
		query string
		want  string
	}{
		{"pancake", "Fluffy Pancakes"},   // title, case-insensitive
		{"FLOUR", "Fluffy Pancakes"},     // ingredient name
		{"spicy", "Chicken Curry"},       // tag
		{"chicken th", "Chicken Curry"},  // ingredient substring
	}
	for _, tc := range cases {
		got, err := rs.Search(ctx, tc.query)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", tc.query, err)
		}
		if len(got) != 1 || got[0].Title != tc.want {
			t.Errorf("Search(%q): expected [%s], got %+v", tc.query, tc.want, titles(got))
		}
	}

	all, err := rs.Search(ctx, "  ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("blank query should return everything, got %d", len(all))
	}

	none, err := rs.Search(ctx, "tiramisu")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %+v", titles(none))
	}
}

func titles(recipes []Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestRecipeStore_ByTag(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	for _, r := range []*Recipe{
		testRecipe("a", "vegan", "quick"),
		testRecipe("b", "quick"),
		testRecipe("c", "dessert"),
	} {
		if _, err := rs.Add(ctx, r); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	quick, err := rs.ByTag(ctx, "quick")
	if err != nil {
		t.Fatalf("ByTag failed: %v", err)
	}
	if len(quick) != 2 {
		t.Errorf("expected 2 quick recipes, got %d", len(quick))
	}

	// Exact match only, no substrings.
	qu, err := rs.ByTag(ctx, "qui")
	if err != nil {
		t.Fatalf("ByTag failed: %v", err)
	}
	if len(qu) != 0 {
		t.Errorf("tag filter must match exactly, got %d", len(qu))
	}
}

func TestRecipeStore_Stats(t *testing.T) {
	rs := NewRecipeStore(testDB(t))
	ctx := context.Background()

	for _, r := range []*Recipe{
		testRecipe("a", "quick", "vegan"),
		testRecipe("b", "quick"),
		testRecipe("c", "quick", "dessert"),
	} {
		if _, err := rs.Add(ctx, r); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	stats, err := rs.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalRecipes != 3 {
		t.Errorf("expected 3 recipes, got %d", stats.TotalRecipes)
	}
	if stats.TotalTags != 3 {
		t.Errorf("expected 3 distinct tags, got %d", stats.TotalTags)
	}
	if len(stats.PopularTags) == 0 || stats.PopularTags[0].Tag != "quick" || stats.PopularTags[0].Count != 3 {
		t.Errorf("expected quick(3) as most popular tag, got %+v", stats.PopularTags)
	}
}

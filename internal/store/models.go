// Package store persists recipes and settings in an embedded SQLite
// database. It is the only owner of record identity; every other package
// works on transient in-memory views.
package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Recipe is a normalized, persisted recipe record. JSON field names match
// the API payloads.
type Recipe struct {
	ID            string         `gorm:"type:char(36);primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null;index" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Servings      int            `gorm:"default:2" json:"servings"`
	CookingTime   string         `gorm:"type:varchar(100)" json:"cookingTime"`
	Difficulty    string         `gorm:"type:varchar(20);index" json:"difficulty"`
	Ingredients   IngredientList `gorm:"type:json" json:"ingredients"`
	Instructions  StringSlice    `gorm:"type:json" json:"instructions"`
	Tags          StringSlice    `gorm:"type:json" json:"tags"`
	NutritionTips string         `gorm:"type:text" json:"nutritionTips"`
	Variations    string         `gorm:"type:text" json:"variations"`
	Commentary    string         `gorm:"type:text" json:"commentary"`
	CreatedAt     time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// UnmarshalJSON accepts both the full object shape and a bare string.
// AI responses frequently mix the two in one list; a bare string becomes
// the ingredient name with empty amount and unit.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*i = Ingredient{Name: name}
		return nil
	}

	type ingredient Ingredient
	var full ingredient
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*i = Ingredient(full)
	return nil
}

// IngredientList stores ingredients as a JSON column.
type IngredientList []Ingredient

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// StringSlice stores a list of strings as a JSON column.
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Setting is a persisted key/value pair. Keys are either plain
// ("provider") or namespaced per provider ("gemini_apiKey").
type Setting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

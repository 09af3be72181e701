package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/platewise/gusteau/internal/errors"
)

// SettingsStore provides key/value access to persisted settings.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value for key. The second return value reports whether
// the key was present.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	var setting Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewStorageError("failed to load setting", "SETTING_LOAD_FAILED", err)
	}
	return setting.Value, true, nil
}

// Put stores or replaces the value for key and refreshes its timestamp.
func (s *SettingsStore) Put(ctx context.Context, key, value string) error {
	setting := Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&setting).Error
	if err != nil {
		return apperrors.NewStorageError("failed to save setting", "SETTING_SAVE_FAILED", err)
	}
	return nil
}

// GetAll returns every persisted setting as a flat key/value map.
func (s *SettingsStore) GetAll(ctx context.Context) (map[string]string, error) {
	var settings []Setting
	if err := s.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to list settings", "SETTING_LIST_FAILED", err)
	}

	all := make(map[string]string, len(settings))
	for _, setting := range settings {
		all[setting.Key] = setting.Value
	}
	return all, nil
}

// Delete removes a single setting. Missing keys are a no-op.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Setting{}, "key = ?", key).Error; err != nil {
		return apperrors.NewStorageError("failed to delete setting", "SETTING_DELETE_FAILED", err)
	}
	return nil
}

// Clear removes every persisted setting, including all provider-namespaced
// credential entries.
func (s *SettingsStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&Setting{}).Error
	if err != nil {
		return apperrors.NewStorageError("failed to clear settings", "SETTING_CLEAR_FAILED", err)
	}
	return nil
}

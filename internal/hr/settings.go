package hr

import (
	"encoding/json"

	"hrops/internal/model"
	"hrops/internal/store"
)

// SettingsStore manages the settings singleton. The collection holds
// exactly one record with a fixed id.
type SettingsStore struct {
	store store.Store
	clock Clock
}

// NewSettingsStore creates a settings repository.
func NewSettingsStore(s store.Store, clock Clock) *SettingsStore {
	return &SettingsStore{store: s, clock: clock}
}

// Get returns the settings, materializing defaults on first access.
func (r *SettingsStore) Get() (model.SystemSettings, error) {
	existing, err := store.LoadAll[model.SystemSettings](r.store, store.Settings)
	if err != nil {
		return model.SystemSettings{}, err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	// First access: write defaults under the exclusive section so two
	// concurrent callers cannot both seed the singleton.
	var settings model.SystemSettings
	err = r.store.Update(store.Settings, func(records []json.RawMessage) ([]json.RawMessage, error) {
		current, err := store.Decode[model.SystemSettings](records)
		if err != nil {
			return nil, err
		}
		if len(current) > 0 {
			settings = current[0]
			return records, nil
		}
		settings = model.DefaultSettings(r.clock.Now())
		return store.Encode([]model.SystemSettings{settings})
	})
	if err != nil {
		return model.SystemSettings{}, err
	}
	return settings, nil
}

// UpdateSettings is a partial update; nil fields are left untouched.
type UpdateSettings struct {
	LogEditTimeLimitHours *int
	DefaultLeaveTypes     *[]string
	DefaultTaskCategories *[]string
	NotificationSettings  *map[string]any
}

// Update applies the non-nil fields of upd, seeding defaults first if
// the singleton does not exist yet.
func (r *SettingsStore) Update(upd UpdateSettings) (model.SystemSettings, error) {
	var updated model.SystemSettings
	err := r.store.Update(store.Settings, func(records []json.RawMessage) ([]json.RawMessage, error) {
		current, err := store.Decode[model.SystemSettings](records)
		if err != nil {
			return nil, err
		}

		settings := model.DefaultSettings(r.clock.Now())
		if len(current) > 0 {
			settings = current[0]
		}

		if upd.LogEditTimeLimitHours != nil {
			settings.LogEditTimeLimitHours = *upd.LogEditTimeLimitHours
		}
		if upd.DefaultLeaveTypes != nil {
			settings.DefaultLeaveTypes = *upd.DefaultLeaveTypes
		}
		if upd.DefaultTaskCategories != nil {
			settings.DefaultTaskCategories = *upd.DefaultTaskCategories
		}
		if upd.NotificationSettings != nil {
			settings.NotificationSettings = *upd.NotificationSettings
		}
		settings.UpdatedAt = r.clock.Now()

		updated = settings
		return store.Encode([]model.SystemSettings{settings})
	})
	if err != nil {
		return model.SystemSettings{}, err
	}
	return updated, nil
}

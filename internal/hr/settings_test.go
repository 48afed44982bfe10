package hr

import (
	"testing"

	"hrops/internal/model"
	"hrops/internal/store"
)

func TestSettingsGetMaterializesDefaults(t *testing.T) {
	e := newEnv(t)

	settings, err := e.settings.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if settings.ID != model.SettingsID {
		t.Errorf("ID = %q, want %q", settings.ID, model.SettingsID)
	}
	if settings.LogEditTimeLimitHours != 24 {
		t.Errorf("LogEditTimeLimitHours = %d, want 24", settings.LogEditTimeLimitHours)
	}
	if len(settings.DefaultLeaveTypes) == 0 || len(settings.DefaultTaskCategories) == 0 {
		t.Error("default lists are empty")
	}

	// The singleton was persisted, not just returned.
	records, err := store.LoadAll[model.SystemSettings](e.store, store.Settings)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("settings collection has %d rows, want 1", len(records))
	}
}

func TestSettingsGetIsIdempotent(t *testing.T) {
	e := newEnv(t)

	first, err := e.settings.Get()
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, err := e.settings.Get()
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first.ID != second.ID || !first.CreatedAt.Equal(second.CreatedAt) {
		t.Error("second Get re-seeded the singleton")
	}

	records, _ := store.LoadAll[model.SystemSettings](e.store, store.Settings)
	if len(records) != 1 {
		t.Errorf("settings collection has %d rows, want 1", len(records))
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	e := newEnv(t)

	limit := 48
	types := []string{"Sabbatical"}
	updated, err := e.settings.Update(UpdateSettings{
		LogEditTimeLimitHours: &limit,
		DefaultLeaveTypes:     &types,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.LogEditTimeLimitHours != 48 {
		t.Errorf("LogEditTimeLimitHours = %d, want 48", updated.LogEditTimeLimitHours)
	}
	if len(updated.DefaultLeaveTypes) != 1 || updated.DefaultLeaveTypes[0] != "Sabbatical" {
		t.Errorf("DefaultLeaveTypes = %v", updated.DefaultLeaveTypes)
	}
	// Untouched fields keep their defaults.
	if len(updated.DefaultTaskCategories) == 0 {
		t.Error("DefaultTaskCategories lost on unrelated update")
	}

	stored, err := e.settings.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.LogEditTimeLimitHours != 48 {
		t.Errorf("stored limit = %d, want 48", stored.LogEditTimeLimitHours)
	}
}

package hr

import (
	"encoding/json"
	"sort"

	"hrops/internal/model"
	"hrops/internal/store"
)

// AuditLog records mutating actions in an append-only collection.
type AuditLog struct {
	store  store.Store
	clock  Clock
	ids    IDGenerator
	logger Logger
}

// NewAuditLog creates an audit recorder.
func NewAuditLog(s store.Store, clock Clock, ids IDGenerator, logger Logger) *AuditLog {
	return &AuditLog{store: s, clock: clock, ids: ids, logger: logger}
}

// Record appends an audit entry. It is best effort: a failure to write
// must not roll back the business mutation it documents, so errors are
// logged and swallowed.
func (a *AuditLog) Record(actorID string, action model.ActionType, resourceType, resourceID string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	entry := model.AuditTrail{
		ID:           a.ids.New(),
		UserID:       actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		Timestamp:    a.clock.Now(),
	}

	err := a.store.Update(store.AuditTrails, func(records []json.RawMessage) ([]json.RawMessage, error) {
		entries, err := store.Decode[model.AuditTrail](records)
		if err != nil {
			return nil, err
		}
		return store.Encode(append(entries, entry))
	})
	if err != nil {
		a.logger.Error("audit entry not recorded", "action", string(action), "resource_type", resourceType, "resource_id", resourceID, "error", err)
	}
}

// AuditFilter narrows a listing. Zero values match everything; Limit
// caps the result after sorting (0 means 100).
type AuditFilter struct {
	UserID       string
	Action       model.ActionType
	ResourceType string
	Limit        int
}

// List returns entries newest first, filtered and capped.
func (a *AuditLog) List(f AuditFilter) ([]model.AuditTrail, error) {
	entries, err := store.LoadAll[model.AuditTrail](a.store, store.AuditTrails)
	if err != nil {
		return nil, err
	}

	var filtered []model.AuditTrail
	for _, entry := range entries {
		if f.UserID != "" && entry.UserID != f.UserID {
			continue
		}
		if f.Action != "" && entry.Action != f.Action {
			continue
		}
		if f.ResourceType != "" && entry.ResourceType != f.ResourceType {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[j].Timestamp.Before(filtered[i].Timestamp)
	})

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

package hr

import (
	"encoding/json"
	"fmt"
	"sort"

	"hrops/internal/model"
	"hrops/internal/store"
)

// WorkLogs is the repository for work log entries.
type WorkLogs struct {
	store store.Store
	clock Clock
	ids   IDGenerator
}

// NewWorkLogs creates a work log repository.
func NewWorkLogs(s store.Store, clock Clock, ids IDGenerator) *WorkLogs {
	return &WorkLogs{store: s, clock: clock, ids: ids}
}

// CreateWorkLog holds the validated input for a new work log entry.
type CreateWorkLog struct {
	Date            model.Date
	TaskDescription string
	TimeSpent       float64
	Status          model.TaskStatus
	Project         string
	Category        string
	Notes           string
}

// Create appends a new work log owned by employeeID.
func (r *WorkLogs) Create(employeeID string, in CreateWorkLog) (model.WorkLog, error) {
	if in.TimeSpent < 0 {
		return model.WorkLog{}, fmt.Errorf("time spent must not be negative: %w", ErrValidation)
	}
	if !in.Status.Valid() {
		return model.WorkLog{}, fmt.Errorf("unknown task status %q: %w", in.Status, ErrValidation)
	}

	now := r.clock.Now()
	log := model.WorkLog{
		ID:              r.ids.New(),
		EmployeeID:      employeeID,
		Date:            in.Date,
		TaskDescription: in.TaskDescription,
		TimeSpent:       in.TimeSpent,
		Status:          in.Status,
		Project:         in.Project,
		Category:        in.Category,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := r.store.Update(store.WorkLogs, func(records []json.RawMessage) ([]json.RawMessage, error) {
		logs, err := store.Decode[model.WorkLog](records)
		if err != nil {
			return nil, err
		}
		return store.Encode(append(logs, log))
	})
	if err != nil {
		return model.WorkLog{}, err
	}
	return log, nil
}

// Get returns the work log with the given id.
func (r *WorkLogs) Get(id string) (model.WorkLog, error) {
	logs, err := store.LoadAll[model.WorkLog](r.store, store.WorkLogs)
	if err != nil {
		return model.WorkLog{}, err
	}
	for _, log := range logs {
		if log.ID == id {
			return log, nil
		}
	}
	return model.WorkLog{}, fmt.Errorf("work log %s: %w", id, ErrNotFound)
}

// ListByEmployee returns the employee's logs, optionally restricted to a
// date range. Both bounds are inclusive and compare on the calendar
// date. Results are sorted newest date first.
func (r *WorkLogs) ListByEmployee(employeeID string, from, to *model.Date) ([]model.WorkLog, error) {
	logs, err := store.LoadAll[model.WorkLog](r.store, store.WorkLogs)
	if err != nil {
		return nil, err
	}

	var filtered []model.WorkLog
	for _, log := range logs {
		if log.EmployeeID != employeeID {
			continue
		}
		if from != nil && log.Date.Before(*from) {
			continue
		}
		if to != nil && log.Date.After(*to) {
			continue
		}
		filtered = append(filtered, log)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[j].Date.Before(filtered[i].Date)
	})
	return filtered, nil
}

// ListAll returns every work log, unsorted.
func (r *WorkLogs) ListAll() ([]model.WorkLog, error) {
	return store.LoadAll[model.WorkLog](r.store, store.WorkLogs)
}

// UpdateWorkLog is a partial update; nil fields are left untouched.
type UpdateWorkLog struct {
	TaskDescription *string
	TimeSpent       *float64
	Status          *model.TaskStatus
	Project         *string
	Category        *string
	Notes           *string
}

// Update applies the non-nil fields of upd and stamps updated_at.
func (r *WorkLogs) Update(id string, upd UpdateWorkLog) (model.WorkLog, error) {
	if upd.TimeSpent != nil && *upd.TimeSpent < 0 {
		return model.WorkLog{}, fmt.Errorf("time spent must not be negative: %w", ErrValidation)
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return model.WorkLog{}, fmt.Errorf("unknown task status %q: %w", *upd.Status, ErrValidation)
	}

	return r.mutate(id, func(log *model.WorkLog) error {
		if upd.TaskDescription != nil {
			log.TaskDescription = *upd.TaskDescription
		}
		if upd.TimeSpent != nil {
			log.TimeSpent = *upd.TimeSpent
		}
		if upd.Status != nil {
			log.Status = *upd.Status
		}
		if upd.Project != nil {
			log.Project = *upd.Project
		}
		if upd.Category != nil {
			log.Category = *upd.Category
		}
		if upd.Notes != nil {
			log.Notes = *upd.Notes
		}
		return nil
	})
}

// SetManagerFeedback records the single manager-feedback string on a log.
func (r *WorkLogs) SetManagerFeedback(id, feedback string) (model.WorkLog, error) {
	return r.mutate(id, func(log *model.WorkLog) error {
		log.ManagerFeedback = feedback
		return nil
	})
}

// mutate locates the log by id inside the exclusive section, applies fn,
// stamps updated_at, and rewrites the collection.
func (r *WorkLogs) mutate(id string, fn func(log *model.WorkLog) error) (model.WorkLog, error) {
	var updated model.WorkLog
	err := r.store.Update(store.WorkLogs, func(records []json.RawMessage) ([]json.RawMessage, error) {
		logs, err := store.Decode[model.WorkLog](records)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i, log := range logs {
			if log.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("work log %s: %w", id, ErrNotFound)
		}

		log := logs[idx]
		if err := fn(&log); err != nil {
			return nil, err
		}
		log.UpdatedAt = r.clock.Now()

		logs[idx] = log
		updated = log
		return store.Encode(logs)
	})
	if err != nil {
		return model.WorkLog{}, err
	}
	return updated, nil
}

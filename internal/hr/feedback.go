package hr

import (
	"encoding/json"
	"fmt"
	"sort"

	"hrops/internal/model"
	"hrops/internal/store"
)

// FeedbackEntries is the repository for manager feedback on work logs.
type FeedbackEntries struct {
	store    store.Store
	workLogs *WorkLogs
	clock    Clock
	ids      IDGenerator
}

// NewFeedbackEntries creates a feedback repository.
func NewFeedbackEntries(s store.Store, workLogs *WorkLogs, clock Clock, ids IDGenerator) *FeedbackEntries {
	return &FeedbackEntries{store: s, workLogs: workLogs, clock: clock, ids: ids}
}

// CreateFeedback holds the validated input for a new feedback entry.
type CreateFeedback struct {
	WorkLogID    string
	FeedbackText string
	Rating       *int
}

// Create appends feedback authored by managerID. The work log is read
// first to denormalize its owner onto the entry; there is no atomicity
// across the two collections, and a crash between the read and the
// write leaves no partial row because the write comes last.
func (r *FeedbackEntries) Create(managerID string, in CreateFeedback) (model.Feedback, error) {
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return model.Feedback{}, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	log, err := r.workLogs.Get(in.WorkLogID)
	if err != nil {
		return model.Feedback{}, err
	}

	now := r.clock.Now()
	fb := model.Feedback{
		ID:           r.ids.New(),
		WorkLogID:    in.WorkLogID,
		EmployeeID:   log.EmployeeID,
		ManagerID:    managerID,
		FeedbackText: in.FeedbackText,
		Rating:       in.Rating,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = r.store.Update(store.Feedback, func(records []json.RawMessage) ([]json.RawMessage, error) {
		entries, err := store.Decode[model.Feedback](records)
		if err != nil {
			return nil, err
		}
		return store.Encode(append(entries, fb))
	})
	if err != nil {
		return model.Feedback{}, err
	}
	return fb, nil
}

// ListByEmployee returns feedback received by an employee, newest first.
func (r *FeedbackEntries) ListByEmployee(employeeID string) ([]model.Feedback, error) {
	return r.list(func(fb model.Feedback) bool { return fb.EmployeeID == employeeID })
}

// ListByWorkLog returns feedback on one work log, newest first.
func (r *FeedbackEntries) ListByWorkLog(workLogID string) ([]model.Feedback, error) {
	return r.list(func(fb model.Feedback) bool { return fb.WorkLogID == workLogID })
}

// ListByManager returns feedback authored by a manager, newest first.
func (r *FeedbackEntries) ListByManager(managerID string) ([]model.Feedback, error) {
	return r.list(func(fb model.Feedback) bool { return fb.ManagerID == managerID })
}

func (r *FeedbackEntries) list(keep func(model.Feedback) bool) ([]model.Feedback, error) {
	entries, err := store.LoadAll[model.Feedback](r.store, store.Feedback)
	if err != nil {
		return nil, err
	}
	var filtered []model.Feedback
	for _, fb := range entries {
		if keep(fb) {
			filtered = append(filtered, fb)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[j].CreatedAt.Before(filtered[i].CreatedAt)
	})
	return filtered, nil
}

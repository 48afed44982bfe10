package hr

import (
	"encoding/json"
	"fmt"
	"sort"

	"hrops/internal/model"
	"hrops/internal/store"
)

// CancelComment is recorded when an employee withdraws their own request.
const CancelComment = "Cancelled by employee"

// LeaveRequests is the repository for leave requests. It reads the
// employee collection once at create time to snapshot the manager.
type LeaveRequests struct {
	store     store.Store
	employees *Employees
	clock     Clock
	ids       IDGenerator
}

// NewLeaveRequests creates a leave request repository.
func NewLeaveRequests(s store.Store, employees *Employees, clock Clock, ids IDGenerator) *LeaveRequests {
	return &LeaveRequests{store: s, employees: employees, clock: clock, ids: ids}
}

// CreateLeaveRequest holds the validated input for a new leave request.
type CreateLeaveRequest struct {
	StartDate model.Date
	EndDate   model.Date
	LeaveType string
	Reason    string
}

// Create appends a pending leave request. The employee's current manager
// is copied onto the request and never re-resolved afterwards, so a
// later reassignment does not transfer approval authority.
func (r *LeaveRequests) Create(employeeID string, in CreateLeaveRequest) (model.LeaveRequest, error) {
	if in.StartDate.After(in.EndDate) {
		return model.LeaveRequest{}, fmt.Errorf("start date must not be after end date: %w", ErrValidation)
	}

	// The manager lookup happens outside the leave lock; a concurrent
	// reassignment between this read and the write below is tolerated.
	managerID := ""
	if emp, err := r.employees.Get(employeeID); err == nil {
		managerID = emp.ManagerID
	}

	now := r.clock.Now()
	req := model.LeaveRequest{
		ID:         r.ids.New(),
		EmployeeID: employeeID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		LeaveType:  in.LeaveType,
		Reason:     in.Reason,
		Status:     model.LeavePending,
		ManagerID:  managerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.store.Update(store.LeaveRequests, func(records []json.RawMessage) ([]json.RawMessage, error) {
		requests, err := store.Decode[model.LeaveRequest](records)
		if err != nil {
			return nil, err
		}
		return store.Encode(append(requests, req))
	})
	if err != nil {
		return model.LeaveRequest{}, err
	}
	return req, nil
}

// Get returns the leave request with the given id.
func (r *LeaveRequests) Get(id string) (model.LeaveRequest, error) {
	requests, err := store.LoadAll[model.LeaveRequest](r.store, store.LeaveRequests)
	if err != nil {
		return model.LeaveRequest{}, err
	}
	for _, req := range requests {
		if req.ID == id {
			return req, nil
		}
	}
	return model.LeaveRequest{}, fmt.Errorf("leave request %s: %w", id, ErrNotFound)
}

// ListByEmployee returns the employee's requests, newest first.
func (r *LeaveRequests) ListByEmployee(employeeID string) ([]model.LeaveRequest, error) {
	return r.list(func(req model.LeaveRequest) bool {
		return req.EmployeeID == employeeID
	}, newestFirst)
}

// ListPendingByManager returns pending requests snapshotted to the
// manager, oldest first so the queue is worked in filing order.
func (r *LeaveRequests) ListPendingByManager(managerID string) ([]model.LeaveRequest, error) {
	return r.list(func(req model.LeaveRequest) bool {
		return req.ManagerID == managerID && req.Status == model.LeavePending
	}, oldestFirst)
}

// ListPending returns every pending request, oldest first.
func (r *LeaveRequests) ListPending() ([]model.LeaveRequest, error) {
	return r.list(func(req model.LeaveRequest) bool {
		return req.Status == model.LeavePending
	}, oldestFirst)
}

type leaveOrder int

const (
	newestFirst leaveOrder = iota
	oldestFirst
)

func (r *LeaveRequests) list(keep func(model.LeaveRequest) bool, order leaveOrder) ([]model.LeaveRequest, error) {
	requests, err := store.LoadAll[model.LeaveRequest](r.store, store.LeaveRequests)
	if err != nil {
		return nil, err
	}
	var filtered []model.LeaveRequest
	for _, req := range requests {
		if keep(req) {
			filtered = append(filtered, req)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if order == oldestFirst {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[j].CreatedAt.Before(filtered[i].CreatedAt)
	})
	return filtered, nil
}

// UpdateLeaveRequest is a partial update; nil fields are left untouched.
type UpdateLeaveRequest struct {
	StartDate *model.Date
	EndDate   *model.Date
	LeaveType *string
	Reason    *string
}

// Update applies the non-nil fields of upd to a still-pending request.
// The resulting date range must remain ordered.
func (r *LeaveRequests) Update(id string, upd UpdateLeaveRequest) (model.LeaveRequest, error) {
	return r.mutate(id, func(req *model.LeaveRequest) error {
		if req.Status != model.LeavePending {
			return fmt.Errorf("leave request %s is already %s: %w", id, req.Status, ErrInvalidState)
		}
		start := req.StartDate
		end := req.EndDate
		if upd.StartDate != nil {
			start = *upd.StartDate
		}
		if upd.EndDate != nil {
			end = *upd.EndDate
		}
		if start.After(end) {
			return fmt.Errorf("start date must not be after end date: %w", ErrValidation)
		}
		req.StartDate = start
		req.EndDate = end
		if upd.LeaveType != nil {
			req.LeaveType = *upd.LeaveType
		}
		if upd.Reason != nil {
			req.Reason = *upd.Reason
		}
		return nil
	})
}

// Decision is an approval or rejection of a pending request.
type Decision struct {
	Status   model.LeaveStatus // approved or rejected
	Comments string
}

// Decide moves a pending request to its terminal state, recording the
// approver and decision time. Deciding a non-pending request fails with
// ErrInvalidState.
func (r *LeaveRequests) Decide(id, approverID string, d Decision) (model.LeaveRequest, error) {
	if d.Status != model.LeaveApproved && d.Status != model.LeaveRejected {
		return model.LeaveRequest{}, fmt.Errorf("decision status must be approved or rejected, got %q: %w", d.Status, ErrValidation)
	}

	return r.mutate(id, func(req *model.LeaveRequest) error {
		if req.Status != model.LeavePending {
			return fmt.Errorf("leave request %s is already %s: %w", id, req.Status, ErrInvalidState)
		}
		now := r.clock.Now()
		req.Status = d.Status
		req.ManagerComments = d.Comments
		req.ApprovedBy = approverID
		req.ApprovedAt = &now
		return nil
	})
}

// Cancel withdraws the owner's own pending request. It lands in the
// rejected terminal state with a fixed comment.
func (r *LeaveRequests) Cancel(id, actorID string) (model.LeaveRequest, error) {
	return r.Decide(id, actorID, Decision{Status: model.LeaveRejected, Comments: CancelComment})
}

func (r *LeaveRequests) mutate(id string, fn func(req *model.LeaveRequest) error) (model.LeaveRequest, error) {
	var updated model.LeaveRequest
	err := r.store.Update(store.LeaveRequests, func(records []json.RawMessage) ([]json.RawMessage, error) {
		requests, err := store.Decode[model.LeaveRequest](records)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i, req := range requests {
			if req.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("leave request %s: %w", id, ErrNotFound)
		}

		req := requests[idx]
		if err := fn(&req); err != nil {
			return nil, err
		}
		req.UpdatedAt = r.clock.Now()

		requests[idx] = req
		updated = req
		return store.Encode(requests)
	})
	if err != nil {
		return model.LeaveRequest{}, err
	}
	return updated, nil
}

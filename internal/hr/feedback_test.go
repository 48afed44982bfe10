package hr

import (
	"errors"
	"testing"
	"time"

	"hrops/internal/model"
)

func TestFeedbackCreateDenormalizesOwner(t *testing.T) {
	e := newEnv(t)
	mgr := e.addEmployee(t, "mgr@example.com", model.RoleManager, "")
	emp := e.addEmployee(t, "emp@example.com", model.RoleEmployee, mgr.ID)
	log := e.addWorkLog(t, emp.ID)

	rating := 4
	fb, err := e.feedback.Create(mgr.ID, CreateFeedback{
		WorkLogID:    log.ID,
		FeedbackText: "solid work",
		Rating:       &rating,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if fb.EmployeeID != emp.ID {
		t.Errorf("EmployeeID = %q, want %q (copied from log owner)", fb.EmployeeID, emp.ID)
	}
	if fb.ManagerID != mgr.ID {
		t.Errorf("ManagerID = %q, want %q", fb.ManagerID, mgr.ID)
	}
	if fb.Rating == nil || *fb.Rating != 4 {
		t.Errorf("Rating = %v, want 4", fb.Rating)
	}
}

func TestFeedbackCreateRatingBounds(t *testing.T) {
	e := newEnv(t)
	mgr := e.addEmployee(t, "mgr@example.com", model.RoleManager, "")
	emp := e.addEmployee(t, "emp@example.com", model.RoleEmployee, mgr.ID)
	log := e.addWorkLog(t, emp.ID)

	for _, rating := range []int{0, 6, -1} {
		r := rating
		_, err := e.feedback.Create(mgr.ID, CreateFeedback{WorkLogID: log.ID, FeedbackText: "x", Rating: &r})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("rating %d: err = %v, want ErrValidation", rating, err)
		}
	}

	// No rating at all is allowed.
	if _, err := e.feedback.Create(mgr.ID, CreateFeedback{WorkLogID: log.ID, FeedbackText: "x"}); err != nil {
		t.Errorf("nil rating rejected: %v", err)
	}
}

func TestFeedbackCreateUnknownWorkLog(t *testing.T) {
	e := newEnv(t)

	_, err := e.feedback.Create("mgr", CreateFeedback{WorkLogID: "nope", FeedbackText: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFeedbackListings(t *testing.T) {
	e := newEnv(t)
	mgr := e.addEmployee(t, "mgr@example.com", model.RoleManager, "")
	emp := e.addEmployee(t, "emp@example.com", model.RoleEmployee, mgr.ID)
	other := e.addEmployee(t, "other@example.com", model.RoleEmployee, mgr.ID)
	log := e.addWorkLog(t, emp.ID)
	otherLog := e.addWorkLog(t, other.ID)

	first, _ := e.feedback.Create(mgr.ID, CreateFeedback{WorkLogID: log.ID, FeedbackText: "first"})
	e.clock.Advance(time.Hour)
	second, _ := e.feedback.Create(mgr.ID, CreateFeedback{WorkLogID: log.ID, FeedbackText: "second"})
	e.clock.Advance(time.Hour)
	if _, err := e.feedback.Create(mgr.ID, CreateFeedback{WorkLogID: otherLog.ID, FeedbackText: "third"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byEmployee, err := e.feedback.ListByEmployee(emp.ID)
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(byEmployee) != 2 || byEmployee[0].ID != second.ID || byEmployee[1].ID != first.ID {
		t.Errorf("ListByEmployee = %+v, want newest first", byEmployee)
	}

	byLog, err := e.feedback.ListByWorkLog(log.ID)
	if err != nil {
		t.Fatalf("ListByWorkLog: %v", err)
	}
	if len(byLog) != 2 {
		t.Errorf("ListByWorkLog = %d entries, want 2", len(byLog))
	}

	byManager, err := e.feedback.ListByManager(mgr.ID)
	if err != nil {
		t.Fatalf("ListByManager: %v", err)
	}
	if len(byManager) != 3 {
		t.Errorf("ListByManager = %d entries, want 3", len(byManager))
	}
}

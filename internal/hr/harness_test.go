package hr

import (
	"testing"

	"hrops/internal/model"
	"hrops/internal/store"
	"hrops/internal/testutil"
)

// env wires every repository over one in-memory store with a stub clock
// and sequential ids.
type env struct {
	store     *store.MemoryStore
	clock     *testutil.StubClock
	ids       *testutil.StubIDGenerator
	employees *Employees
	workLogs  *WorkLogs
	leaves    *LeaveRequests
	feedback  *FeedbackEntries
	settings  *SettingsStore
	audit     *AuditLog
	policy    *Policy
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := store.NewMemoryStore()
	clock := testutil.FixedClock()
	ids := testutil.NewStubIDGenerator()

	employees := NewEmployees(s, clock, ids)
	workLogs := NewWorkLogs(s, clock, ids)
	settings := NewSettingsStore(s, clock)

	return &env{
		store:     s,
		clock:     clock,
		ids:       ids,
		employees: employees,
		workLogs:  workLogs,
		leaves:    NewLeaveRequests(s, employees, clock, ids),
		feedback:  NewFeedbackEntries(s, workLogs, clock, ids),
		settings:  settings,
		audit:     NewAuditLog(s, clock, ids, NewNopLogger()),
		policy:    NewPolicy(employees, settings, clock),
	}
}

func (e *env) addEmployee(t *testing.T, email string, role model.Role, managerID string) model.Employee {
	t.Helper()
	emp, err := e.employees.Create(CreateEmployee{
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "Person",
		Role:      role,
		ManagerID: managerID,
		HireDate:  model.DateOf(e.clock.Now()),
	})
	if err != nil {
		t.Fatalf("creating employee %s: %v", email, err)
	}
	return emp
}

func (e *env) addWorkLog(t *testing.T, employeeID string) model.WorkLog {
	t.Helper()
	log, err := e.workLogs.Create(employeeID, CreateWorkLog{
		Date:            model.DateOf(e.clock.Now()),
		TaskDescription: "implemented feature",
		TimeSpent:       4,
		Status:          model.TaskInProgress,
	})
	if err != nil {
		t.Fatalf("creating work log: %v", err)
	}
	return log
}

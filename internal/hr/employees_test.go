package hr

import (
	"errors"
	"testing"
	"time"

	"hrops/internal/auth"
	"hrops/internal/model"
)

func TestEmployeesCreate(t *testing.T) {
	e := newEnv(t)

	emp, err := e.employees.Create(CreateEmployee{
		Email:      "ada@example.com",
		Password:   "secret123",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Role:       model.RoleEmployee,
		Department: "Engineering",
		HireDate:   model.NewDate(2025, time.March, 1),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if emp.ID == "" {
		t.Error("no id assigned")
	}
	if !emp.IsActive {
		t.Error("new employee is not active")
	}
	if emp.PasswordHash != auth.HashPassword("secret123") {
		t.Error("password not hashed")
	}
	if !emp.CreatedAt.Equal(e.clock.Now()) || !emp.UpdatedAt.Equal(e.clock.Now()) {
		t.Error("timestamps not stamped from clock")
	}

	stored, err := e.employees.Get(emp.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Email != "ada@example.com" {
		t.Errorf("stored email = %q", stored.Email)
	}
}

func TestEmployeesCreateRejectsUnknownRole(t *testing.T) {
	e := newEnv(t)

	_, err := e.employees.Create(CreateEmployee{
		Email:    "x@example.com",
		Password: "secret123",
		Role:     model.Role("director"),
		HireDate: model.DateOf(e.clock.Now()),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestEmployeesCreateDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.addEmployee(t, "ada@example.com", model.RoleEmployee, "")

	_, err := e.employees.Create(CreateEmployee{
		Email:    "ada@example.com",
		Password: "different1",
		Role:     model.RoleManager,
		HireDate: model.DateOf(e.clock.Now()),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	// The failed create must not have touched the collection.
	all, err := e.employees.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("collection has %d rows after rejected create, want 1", len(all))
	}
}

func TestEmployeesDuplicateEmailAgainstInactiveRow(t *testing.T) {
	e := newEnv(t)
	emp := e.addEmployee(t, "ada@example.com", model.RoleEmployee, "")

	if _, err := e.employees.Deactivate(emp.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	// A deactivated employee still reserves the email.
	_, err := e.employees.Create(CreateEmployee{
		Email:    "ada@example.com",
		Password: "password123",
		Role:     model.RoleEmployee,
		HireDate: model.DateOf(e.clock.Now()),
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestEmployeesGetNotFound(t *testing.T) {
	e := newEnv(t)

	if _, err := e.employees.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
	if _, err := e.employees.GetByEmail("nope@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByEmail err = %v, want ErrNotFound", err)
	}
}

func TestEmployeesPartialUpdate(t *testing.T) {
	e := newEnv(t)
	emp := e.addEmployee(t, "ada@example.com", model.RoleEmployee, "")

	e.clock.Advance(time.Hour)
	dept := "Research"
	updated, err := e.employees.Update(emp.ID, UpdateEmployee{Department: &dept})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Department != "Research" {
		t.Errorf("Department = %q, want %q", updated.Department, "Research")
	}
	// Untouched fields survive.
	if updated.Email != emp.Email || updated.FirstName != emp.FirstName || updated.Role != emp.Role {
		t.Error("untouched fields changed")
	}
	if !updated.CreatedAt.Equal(emp.CreatedAt) {
		t.Error("created_at changed on update")
	}
	if !updated.UpdatedAt.After(emp.UpdatedAt) {
		t.Error("updated_at not advanced")
	}
}

func TestEmployeesEmptyUpdateOnlyStampsUpdatedAt(t *testing.T) {
	e := newEnv(t)
	emp := e.addEmployee(t, "ada@example.com", model.RoleEmployee, "")

	e.clock.Advance(time.Minute)
	updated, err := e.employees.Update(emp.ID, UpdateEmployee{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Email != emp.Email || updated.FirstName != emp.FirstName ||
		updated.Role != emp.Role || updated.IsActive != emp.IsActive ||
		updated.HireDate != emp.HireDate {
		t.Errorf("empty update changed fields: %+v vs %+v", updated, emp)
	}
	if !updated.CreatedAt.Equal(emp.CreatedAt) {
		t.Error("created_at changed on empty update")
	}
	if !updated.UpdatedAt.After(emp.UpdatedAt) {
		t.Error("updated_at not advanced")
	}
}

func TestEmployeesUpdateRejectsUnknownRole(t *testing.T) {
	e := newEnv(t)
	emp := e.addEmployee(t, "ada@example.com", model.RoleEmployee, "")

	bad := model.Role("owner")
	if _, err := e.employees.Update(emp.ID, UpdateEmployee{Role: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestEmployeesUpdateNotFound(t *testing.T) {
	e := newEnv(t)

	name := "Grace"
	if _, err := e.employees.Update("nope", UpdateEmployee{FirstName: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEmployeesDeactivate(t *testing.T) {
	e := newEnv(t)
	emp := e.addEmployee(t, "ada@example.com", model.RoleEmployee, "")

	deactivated, err := e.employees.Deactivate(emp.ID)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Error("employee still active after Deactivate")
	}

	// The row is still present and readable.
	stored, err := e.employees.Get(emp.ID)
	if err != nil {
		t.Fatalf("Get after Deactivate: %v", err)
	}
	if stored.IsActive {
		t.Error("stored row still active")
	}
}

func TestEmployeesDirectReports(t *testing.T) {
	e := newEnv(t)
	mgr := e.addEmployee(t, "mgr@example.com", model.RoleManager, "")
	r1 := e.addEmployee(t, "r1@example.com", model.RoleEmployee, mgr.ID)
	r2 := e.addEmployee(t, "r2@example.com", model.RoleEmployee, mgr.ID)
	e.addEmployee(t, "other@example.com", model.RoleEmployee, "")

	if _, err := e.employees.Deactivate(r2.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	reports, err := e.employees.DirectReports(mgr.ID)
	if err != nil {
		t.Fatalf("DirectReports: %v", err)
	}
	// Inactive reports are excluded.
	if len(reports) != 1 || reports[0].ID != r1.ID {
		t.Errorf("reports = %+v, want just %s", reports, r1.ID)
	}
}

func TestEmployeesAuthenticate(t *testing.T) {
	e := newEnv(t)
	emp := e.addEmployee(t, "ada@example.com", model.RoleEmployee, "")

	got, err := e.employees.Authenticate("ada@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != emp.ID {
		t.Errorf("authenticated id = %s, want %s", got.ID, emp.ID)
	}

	// Wrong password and unknown email are indistinguishable.
	_, badPass := e.employees.Authenticate("ada@example.com", "wrongpass1")
	_, badEmail := e.employees.Authenticate("ghost@example.com", "password123")
	if !errors.Is(badPass, ErrNotFound) {
		t.Errorf("wrong password err = %v, want ErrNotFound", badPass)
	}
	if !errors.Is(badEmail, ErrNotFound) {
		t.Errorf("unknown email err = %v, want ErrNotFound", badEmail)
	}
}

func TestEmployeesCreateStoreFailure(t *testing.T) {
	e := newEnv(t)
	e.store.FailWrites = true

	_, err := e.employees.Create(CreateEmployee{
		Email:    "ada@example.com",
		Password: "secret123",
		Role:     model.RoleEmployee,
		HireDate: model.DateOf(e.clock.Now()),
	})
	if err == nil {
		t.Fatal("Create succeeded with failing store")
	}

	e.store.FailWrites = false
	all, _ := e.employees.List()
	if len(all) != 0 {
		t.Errorf("collection has %d rows after failed create, want 0", len(all))
	}
}

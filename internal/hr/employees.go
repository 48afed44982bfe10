// Package hr contains the typed repositories, the authorization policy,
// and the audit recorder built on top of the record store.
package hr

import (
	"encoding/json"
	"fmt"

	"hrops/internal/auth"
	"hrops/internal/model"
	"hrops/internal/store"
)

// Employees is the repository for employee records.
type Employees struct {
	store store.Store
	clock Clock
	ids   IDGenerator
}

// NewEmployees creates an employee repository.
func NewEmployees(s store.Store, clock Clock, ids IDGenerator) *Employees {
	return &Employees{store: s, clock: clock, ids: ids}
}

// CreateEmployee holds the validated input for a new employee record.
type CreateEmployee struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       model.Role
	ManagerID  string
	Department string
	Position   string
	HireDate   model.Date
}

// Create appends a new employee. Email uniqueness is enforced against
// every row, active or not, inside the exclusive section.
func (r *Employees) Create(in CreateEmployee) (model.Employee, error) {
	if !in.Role.Valid() {
		return model.Employee{}, fmt.Errorf("unknown role %q: %w", in.Role, ErrValidation)
	}

	now := r.clock.Now()
	emp := model.Employee{
		ID:           r.ids.New(),
		Email:        in.Email,
		PasswordHash: auth.HashPassword(in.Password),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		ManagerID:    in.ManagerID,
		Department:   in.Department,
		Position:     in.Position,
		HireDate:     in.HireDate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.store.Update(store.Employees, func(records []json.RawMessage) ([]json.RawMessage, error) {
		employees, err := store.Decode[model.Employee](records)
		if err != nil {
			return nil, err
		}
		for _, existing := range employees {
			if existing.Email == in.Email {
				return nil, fmt.Errorf("employee with email %q already exists: %w", in.Email, ErrConflict)
			}
		}
		return store.Encode(append(employees, emp))
	})
	if err != nil {
		return model.Employee{}, err
	}
	return emp, nil
}

// Get returns the employee with the given id.
func (r *Employees) Get(id string) (model.Employee, error) {
	employees, err := store.LoadAll[model.Employee](r.store, store.Employees)
	if err != nil {
		return model.Employee{}, err
	}
	for _, emp := range employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return model.Employee{}, fmt.Errorf("employee %s: %w", id, ErrNotFound)
}

// GetByEmail returns the employee with the given email.
func (r *Employees) GetByEmail(email string) (model.Employee, error) {
	employees, err := store.LoadAll[model.Employee](r.store, store.Employees)
	if err != nil {
		return model.Employee{}, err
	}
	for _, emp := range employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return model.Employee{}, fmt.Errorf("employee with email %s: %w", email, ErrNotFound)
}

// List returns every employee, inactive included.
func (r *Employees) List() ([]model.Employee, error) {
	return store.LoadAll[model.Employee](r.store, store.Employees)
}

// DirectReports returns active employees whose manager is managerID.
func (r *Employees) DirectReports(managerID string) ([]model.Employee, error) {
	employees, err := store.LoadAll[model.Employee](r.store, store.Employees)
	if err != nil {
		return nil, err
	}
	var reports []model.Employee
	for _, emp := range employees {
		if emp.ManagerID == managerID && emp.IsActive {
			reports = append(reports, emp)
		}
	}
	return reports, nil
}

// UpdateEmployee is a partial update; nil fields are left untouched.
type UpdateEmployee struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Role       *model.Role
	ManagerID  *string
	Department *string
	Position   *string
	IsActive   *bool
}

// Update applies the non-nil fields of upd and stamps updated_at.
func (r *Employees) Update(id string, upd UpdateEmployee) (model.Employee, error) {
	if upd.Role != nil && !upd.Role.Valid() {
		return model.Employee{}, fmt.Errorf("unknown role %q: %w", *upd.Role, ErrValidation)
	}

	var updated model.Employee
	err := r.store.Update(store.Employees, func(records []json.RawMessage) ([]json.RawMessage, error) {
		employees, err := store.Decode[model.Employee](records)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i, emp := range employees {
			if emp.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
		}

		emp := employees[idx]
		if upd.Email != nil {
			emp.Email = *upd.Email
		}
		if upd.FirstName != nil {
			emp.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			emp.LastName = *upd.LastName
		}
		if upd.Role != nil {
			emp.Role = *upd.Role
		}
		if upd.ManagerID != nil {
			emp.ManagerID = *upd.ManagerID
		}
		if upd.Department != nil {
			emp.Department = *upd.Department
		}
		if upd.Position != nil {
			emp.Position = *upd.Position
		}
		if upd.IsActive != nil {
			emp.IsActive = *upd.IsActive
		}
		emp.UpdatedAt = r.clock.Now()

		employees[idx] = emp
		updated = emp
		return store.Encode(employees)
	})
	if err != nil {
		return model.Employee{}, err
	}
	return updated, nil
}

// Deactivate soft-deletes the employee. The row stays on disk and its
// email remains reserved.
func (r *Employees) Deactivate(id string) (model.Employee, error) {
	inactive := false
	return r.Update(id, UpdateEmployee{IsActive: &inactive})
}

// Authenticate resolves an employee by email and verifies the password.
// Both unknown email and wrong password come back as ErrNotFound so the
// caller cannot distinguish them.
func (r *Employees) Authenticate(email, password string) (model.Employee, error) {
	emp, err := r.GetByEmail(email)
	if err != nil {
		return model.Employee{}, err
	}
	if !auth.VerifyPassword(password, emp.PasswordHash) {
		return model.Employee{}, fmt.Errorf("employee with email %s: %w", email, ErrNotFound)
	}
	return emp, nil
}

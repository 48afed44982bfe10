package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"hrops/internal/hr"
	"hrops/internal/model"
)

type createEmployeeRequest struct {
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	FirstName  string     `json:"first_name" validate:"required"`
	LastName   string     `json:"last_name" validate:"required"`
	Role       model.Role `json:"role" validate:"omitempty,oneof=employee manager admin"`
	ManagerID  string     `json:"manager_id"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	HireDate   model.Date `json:"hire_date"`
}

func (s *Server) createEmployee(c *fiber.Ctx) error {
	var req createEmployeeRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	if req.HireDate.IsZero() {
		return errorResponse(c, fiber.StatusBadRequest, "hire_date is required")
	}
	if req.Role == "" {
		req.Role = model.RoleEmployee
	}

	emp, err := s.deps.Employees.Create(hr.CreateEmployee{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		ManagerID:  req.ManagerID,
		Department: req.Department,
		Position:   req.Position,
		HireDate:   req.HireDate,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(actor(c).ID, model.ActionCreate, "employee", emp.ID,
		map[string]any{"email": emp.Email, "role": emp.Role})

	return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(emp))
}

func (s *Server) listEmployees(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", true)

	employees, err := s.deps.Employees.List()
	if err != nil {
		return s.repoError(c, err)
	}

	var out []model.Employee
	for _, emp := range employees {
		if activeOnly && !emp.IsActive {
			continue
		}
		out = append(out, emp)
	}
	return c.JSON(toEmployeeResponses(out))
}

func (s *Server) getEmployee(c *fiber.Ctx) error {
	id := c.Params("id")
	if !s.deps.Policy.CanAccessEmployeeData(actor(c), id) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to access this employee's data")
	}

	emp, err := s.deps.Employees.Get(id)
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(toEmployeeResponse(emp))
}

type updateEmployeeRequest struct {
	Email      *string     `json:"email" validate:"omitempty,email"`
	FirstName  *string     `json:"first_name"`
	LastName   *string     `json:"last_name"`
	Role       *model.Role `json:"role" validate:"omitempty,oneof=employee manager admin"`
	ManagerID  *string     `json:"manager_id"`
	Department *string     `json:"department"`
	Position   *string     `json:"position"`
	IsActive   *bool       `json:"is_active"`
}

func (s *Server) updateEmployee(c *fiber.Ctx) error {
	id := c.Params("id")
	act := actor(c)

	var req updateEmployeeRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	target, err := s.deps.Employees.Get(id)
	if err != nil {
		return s.repoError(c, err)
	}

	// Role changes are admin-only regardless of other permissions.
	if req.Role != nil && act.Role != model.RoleAdmin {
		return errorResponse(c, fiber.StatusForbidden, "only administrators can change roles")
	}

	allowed := act.ID == id ||
		act.Role == model.RoleAdmin ||
		(act.Role == model.RoleManager && target.ManagerID == act.ID)
	if !allowed {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to update this employee")
	}

	emp, err := s.deps.Employees.Update(id, hr.UpdateEmployee{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		ManagerID:  req.ManagerID,
		Department: req.Department,
		Position:   req.Position,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(act.ID, model.ActionUpdate, "employee", id, map[string]any{})

	return c.JSON(toEmployeeResponse(emp))
}

func (s *Server) deleteEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, err := s.deps.Employees.Deactivate(id); err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(actor(c).ID, model.ActionDelete, "employee", id,
		map[string]any{"action": "soft_delete"})

	return c.JSON(fiber.Map{"message": "employee deactivated successfully"})
}

func (s *Server) directReports(c *fiber.Ctx) error {
	managerID := c.Params("id")
	act := actor(c)

	if act.Role != model.RoleAdmin && act.ID != managerID {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to view these direct reports")
	}

	reports, err := s.deps.Employees.DirectReports(managerID)
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(toEmployeeResponses(reports))
}

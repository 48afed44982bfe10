package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrops/internal/hr"
	"hrops/internal/model"
)

// errorResponse writes the API's uniform error shape.
func errorResponse(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"error": detail})
}

// repoError translates a repository outcome into an HTTP response.
func (s *Server) repoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, hr.ErrNotFound):
		return errorResponse(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, hr.ErrConflict):
		return errorResponse(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, hr.ErrValidation), errors.Is(err, hr.ErrInvalidState):
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	s.deps.Logger.Error("internal error", "path", c.Path(), "error", err)
	return errorResponse(c, fiber.StatusInternalServerError, "internal server error")
}

// parseBody decodes and validates a request payload.
func (s *Server) parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := s.validate.Struct(out); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// employeeResponse is the public shape of an employee: everything but
// the credential.
type employeeResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       model.Role `json:"role"`
	ManagerID  string     `json:"manager_id,omitempty"`
	Department string     `json:"department,omitempty"`
	Position   string     `json:"position,omitempty"`
	HireDate   model.Date `json:"hire_date"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toEmployeeResponse(emp model.Employee) employeeResponse {
	return employeeResponse{
		ID:         emp.ID,
		Email:      emp.Email,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Role:       emp.Role,
		ManagerID:  emp.ManagerID,
		Department: emp.Department,
		Position:   emp.Position,
		HireDate:   emp.HireDate,
		IsActive:   emp.IsActive,
		CreatedAt:  emp.CreatedAt,
		UpdatedAt:  emp.UpdatedAt,
	}
}

func toEmployeeResponses(emps []model.Employee) []employeeResponse {
	out := make([]employeeResponse, len(emps))
	for i, emp := range emps {
		out[i] = toEmployeeResponse(emp)
	}
	return out
}

// workLogResponse carries the derived can_edit flag, recomputed for the
// requesting actor on every read.
type workLogResponse struct {
	model.WorkLog
	CanEdit bool `json:"can_edit"`
}

func (s *Server) toWorkLogResponse(c *fiber.Ctx, log model.WorkLog) workLogResponse {
	return workLogResponse{WorkLog: log, CanEdit: s.deps.Policy.CanEditWorkLog(actor(c), log)}
}

func (s *Server) toWorkLogResponses(c *fiber.Ctx, logs []model.WorkLog) []workLogResponse {
	out := make([]workLogResponse, len(logs))
	for i, log := range logs {
		out[i] = s.toWorkLogResponse(c, log)
	}
	return out
}

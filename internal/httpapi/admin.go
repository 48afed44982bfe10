package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"hrops/internal/hr"
	"hrops/internal/model"
)

func (s *Server) dashboard(c *fiber.Ctx) error {
	employees, err := s.deps.Employees.List()
	if err != nil {
		return s.repoError(c, err)
	}
	active := 0
	for _, emp := range employees {
		if emp.IsActive {
			active++
		}
	}

	pending, err := s.deps.Leaves.ListPending()
	if err != nil {
		return s.repoError(c, err)
	}

	logs, err := s.deps.WorkLogs.ListAll()
	if err != nil {
		return s.repoError(c, err)
	}
	weekAgo := s.deps.Clock.Now().AddDate(0, 0, -7)
	recent, completed := 0, 0
	for _, log := range logs {
		if !log.CreatedAt.Before(weekAgo) {
			recent++
		}
		if log.Status == model.TaskCompleted {
			completed++
		}
	}
	completionRate := 0.0
	if len(logs) > 0 {
		completionRate = float64(completed) / float64(len(logs)) * 100
	}

	return c.JSON(fiber.Map{
		"total_employees":       len(employees),
		"active_employees":      active,
		"pending_leave_requests": len(pending),
		"work_logs_last_7_days": recent,
		"total_work_logs":       len(logs),
		"task_completion_rate":  completionRate,
	})
}

func (s *Server) auditTrails(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit > 1000 {
		limit = 1000
	}

	entries, err := s.deps.Audit.List(hr.AuditFilter{
		UserID:       c.Query("user_id"),
		Action:       model.ActionType(c.Query("action")),
		ResourceType: c.Query("resource_type"),
		Limit:        limit,
	})
	if err != nil {
		return s.repoError(c, err)
	}
	if entries == nil {
		entries = []model.AuditTrail{}
	}
	return c.JSON(entries)
}

func (s *Server) getSettings(c *fiber.Ctx) error {
	settings, err := s.deps.Settings.Get()
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(settings)
}

type updateSettingsRequest struct {
	LogEditTimeLimitHours *int            `json:"log_edit_time_limit_hours" validate:"omitempty,gte=1"`
	DefaultLeaveTypes     *[]string       `json:"default_leave_types"`
	DefaultTaskCategories *[]string       `json:"default_task_categories"`
	NotificationSettings  *map[string]any `json:"notification_settings"`
}

func (s *Server) updateSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	settings, err := s.deps.Settings.Update(hr.UpdateSettings{
		LogEditTimeLimitHours: req.LogEditTimeLimitHours,
		DefaultLeaveTypes:     req.DefaultLeaveTypes,
		DefaultTaskCategories: req.DefaultTaskCategories,
		NotificationSettings:  req.NotificationSettings,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(actor(c).ID, model.ActionUpdate, "settings", settings.ID, map[string]any{})

	return c.JSON(settings)
}

type bulkCreateRequest struct {
	Employees []createEmployeeRequest `json:"employees" validate:"required,min=1,dive"`
}

// bulkCreateEmployees creates each row independently: failures are
// reported per row and do not stop the batch.
func (s *Server) bulkCreateEmployees(c *fiber.Ctx) error {
	var req bulkCreateRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	created := []employeeResponse{}
	errs := []fiber.Map{}
	for i, row := range req.Employees {
		if row.HireDate.IsZero() {
			errs = append(errs, fiber.Map{"index": i, "email": row.Email, "error": "hire_date is required"})
			continue
		}
		role := row.Role
		if role == "" {
			role = model.RoleEmployee
		}
		emp, err := s.deps.Employees.Create(hr.CreateEmployee{
			Email:      row.Email,
			Password:   row.Password,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Role:       role,
			ManagerID:  row.ManagerID,
			Department: row.Department,
			Position:   row.Position,
			HireDate:   row.HireDate,
		})
		if err != nil {
			errs = append(errs, fiber.Map{"index": i, "email": row.Email, "error": err.Error()})
			continue
		}
		created = append(created, toEmployeeResponse(emp))
	}

	s.deps.Audit.Record(actor(c).ID, model.ActionCreate, "employee", "bulk",
		map[string]any{"requested": len(req.Employees), "created": len(created), "failed": len(errs)})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("created %d of %d employees", len(created), len(req.Employees)),
		"created": created,
		"errors":  errs,
	})
}

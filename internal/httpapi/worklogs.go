package httpapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"hrops/internal/hr"
	"hrops/internal/model"
)

// dateQuery parses an optional "YYYY-MM-DD" query parameter.
func dateQuery(c *fiber.Ctx, key string) (*model.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &d, nil
}

type createWorkLogRequest struct {
	Date            model.Date       `json:"date"`
	TaskDescription string           `json:"task_description" validate:"required"`
	TimeSpent       float64          `json:"time_spent" validate:"gte=0"`
	Status          model.TaskStatus `json:"status" validate:"required,oneof=in_progress completed blocked"`
	Project         string           `json:"project"`
	Category        string           `json:"category"`
	Notes           string           `json:"notes"`
}

func (s *Server) createWorkLog(c *fiber.Ctx) error {
	var req createWorkLogRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	if req.Date.IsZero() {
		return errorResponse(c, fiber.StatusBadRequest, "date is required")
	}

	act := actor(c)
	log, err := s.deps.WorkLogs.Create(act.ID, hr.CreateWorkLog{
		Date:            req.Date,
		TaskDescription: req.TaskDescription,
		TimeSpent:       req.TimeSpent,
		Status:          req.Status,
		Project:         req.Project,
		Category:        req.Category,
		Notes:           req.Notes,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(act.ID, model.ActionCreate, "work_log", log.ID, map[string]any{
		"date":             log.Date.String(),
		"task_description": log.TaskDescription,
		"time_spent":       log.TimeSpent,
	})

	return c.Status(fiber.StatusCreated).JSON(s.toWorkLogResponse(c, log))
}

func (s *Server) listWorkLogs(c *fiber.Ctx) error {
	act := actor(c)

	targetID := c.Query("employee_id")
	if targetID == "" {
		targetID = act.ID
	}
	if !s.deps.Policy.CanAccessEmployeeData(act, targetID) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to access these work logs")
	}

	from, err := dateQuery(c, "start_date")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := dateQuery(c, "end_date")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	logs, err := s.deps.WorkLogs.ListByEmployee(targetID, from, to)
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(s.toWorkLogResponses(c, logs))
}

func (s *Server) getWorkLog(c *fiber.Ctx) error {
	log, err := s.deps.WorkLogs.Get(c.Params("id"))
	if err != nil {
		return s.repoError(c, err)
	}
	if !s.deps.Policy.CanAccessEmployeeData(actor(c), log.EmployeeID) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to access this work log")
	}
	return c.JSON(s.toWorkLogResponse(c, log))
}

type updateWorkLogRequest struct {
	TaskDescription *string           `json:"task_description"`
	TimeSpent       *float64          `json:"time_spent" validate:"omitempty,gte=0"`
	Status          *model.TaskStatus `json:"status" validate:"omitempty,oneof=in_progress completed blocked"`
	Project         *string           `json:"project"`
	Category        *string           `json:"category"`
	Notes           *string           `json:"notes"`
}

func (s *Server) updateWorkLog(c *fiber.Ctx) error {
	id := c.Params("id")
	act := actor(c)

	var req updateWorkLogRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	log, err := s.deps.WorkLogs.Get(id)
	if err != nil {
		return s.repoError(c, err)
	}
	if !s.deps.Policy.CanEditWorkLog(act, log) {
		return errorResponse(c, fiber.StatusForbidden, "cannot edit this work log (time limit exceeded or insufficient permissions)")
	}

	updated, err := s.deps.WorkLogs.Update(id, hr.UpdateWorkLog{
		TaskDescription: req.TaskDescription,
		TimeSpent:       req.TimeSpent,
		Status:          req.Status,
		Project:         req.Project,
		Category:        req.Category,
		Notes:           req.Notes,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(act.ID, model.ActionUpdate, "work_log", id, map[string]any{})

	return c.JSON(s.toWorkLogResponse(c, updated))
}

type logFeedbackRequest struct {
	FeedbackText string `json:"feedback_text" validate:"required"`
}

// addLogFeedback sets the single manager-feedback string directly on the
// work log; structured feedback entries are created via /api/feedback.
func (s *Server) addLogFeedback(c *fiber.Ctx) error {
	id := c.Params("id")
	act := actor(c)

	var req logFeedbackRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	log, err := s.deps.WorkLogs.Get(id)
	if err != nil {
		return s.repoError(c, err)
	}
	owner, err := s.deps.Employees.Get(log.EmployeeID)
	if err != nil {
		return s.repoError(c, err)
	}
	if !s.deps.Policy.CanGiveFeedback(act, owner) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to provide feedback on this work log")
	}

	if _, err := s.deps.WorkLogs.SetManagerFeedback(id, req.FeedbackText); err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(act.ID, model.ActionUpdate, "work_log", id,
		map[string]any{"action": "add_feedback", "feedback": req.FeedbackText})

	return c.JSON(fiber.Map{"message": "feedback added successfully"})
}

func (s *Server) workSummary(c *fiber.Ctx) error {
	act := actor(c)

	targetID := c.Query("employee_id")
	if targetID == "" {
		targetID = act.ID
	}
	if !s.deps.Policy.CanAccessEmployeeData(act, targetID) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to access this employee's data")
	}

	from, err := dateQuery(c, "start_date")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := dateQuery(c, "end_date")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	logs, err := s.deps.WorkLogs.ListByEmployee(targetID, from, to)
	if err != nil {
		return s.repoError(c, err)
	}

	var totalHours float64
	var completed, inProgress, blocked int
	for _, log := range logs {
		totalHours += log.TimeSpent
		switch log.Status {
		case model.TaskCompleted:
			completed++
		case model.TaskInProgress:
			inProgress++
		case model.TaskBlocked:
			blocked++
		}
	}

	return c.JSON(fiber.Map{
		"employee_id":       targetID,
		"total_hours":       totalHours,
		"total_logs":        len(logs),
		"completed_tasks":   completed,
		"in_progress_tasks": inProgress,
		"blocked_tasks":     blocked,
		"period_start":      from,
		"period_end":        to,
	})
}

package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"hrops/internal/hr"
	"hrops/internal/model"
)

type createFeedbackRequest struct {
	WorkLogID    string `json:"work_log_id" validate:"required"`
	FeedbackText string `json:"feedback_text" validate:"required"`
	Rating       *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func (s *Server) createFeedback(c *fiber.Ctx) error {
	act := actor(c)

	var req createFeedbackRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	log, err := s.deps.WorkLogs.Get(req.WorkLogID)
	if err != nil {
		return s.repoError(c, err)
	}
	owner, err := s.deps.Employees.Get(log.EmployeeID)
	if err != nil {
		return s.repoError(c, err)
	}
	if !s.deps.Policy.CanGiveFeedback(act, owner) {
		return errorResponse(c, fiber.StatusForbidden, "can only provide feedback for your direct reports")
	}

	fb, err := s.deps.Feedback.Create(act.ID, hr.CreateFeedback{
		WorkLogID:    req.WorkLogID,
		FeedbackText: req.FeedbackText,
		Rating:       req.Rating,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	details := map[string]any{"work_log_id": fb.WorkLogID, "employee_id": fb.EmployeeID}
	if fb.Rating != nil {
		details["rating"] = *fb.Rating
	}
	s.deps.Audit.Record(act.ID, model.ActionCreate, "feedback", fb.ID, details)

	return c.Status(fiber.StatusCreated).JSON(fb)
}

func (s *Server) employeeFeedback(c *fiber.Ctx) error {
	employeeID := c.Params("id")
	act := actor(c)

	if _, err := s.deps.Employees.Get(employeeID); err != nil {
		return s.repoError(c, err)
	}
	if !s.deps.Policy.CanAccessEmployeeData(act, employeeID) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to view this employee's feedback")
	}

	entries, err := s.deps.Feedback.ListByEmployee(employeeID)
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(feedbackList(entries))
}

func (s *Server) workLogFeedback(c *fiber.Ctx) error {
	act := actor(c)

	log, err := s.deps.WorkLogs.Get(c.Params("id"))
	if err != nil {
		return s.repoError(c, err)
	}
	if !s.deps.Policy.CanAccessEmployeeData(act, log.EmployeeID) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to view feedback for this work log")
	}

	entries, err := s.deps.Feedback.ListByWorkLog(log.ID)
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(feedbackList(entries))
}

func (s *Server) myFeedback(c *fiber.Ctx) error {
	entries, err := s.deps.Feedback.ListByEmployee(actor(c).ID)
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(feedbackList(entries))
}

func (s *Server) givenFeedback(c *fiber.Ctx) error {
	entries, err := s.deps.Feedback.ListByManager(actor(c).ID)
	if err != nil {
		return s.repoError(c, err)
	}
	return c.JSON(feedbackList(entries))
}

func feedbackList(entries []model.Feedback) []model.Feedback {
	if entries == nil {
		return []model.Feedback{}
	}
	return entries
}

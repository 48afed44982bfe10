package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"hrops/internal/hr"
	"hrops/internal/model"
)

type createLeaveRequestPayload struct {
	StartDate model.Date `json:"start_date"`
	EndDate   model.Date `json:"end_date"`
	LeaveType string     `json:"leave_type" validate:"required"`
	Reason    string     `json:"reason" validate:"required"`
}

func (s *Server) createLeaveRequest(c *fiber.Ctx) error {
	var req createLeaveRequestPayload
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return errorResponse(c, fiber.StatusBadRequest, "start_date and end_date are required")
	}

	act := actor(c)
	leave, err := s.deps.Leaves.Create(act.ID, hr.CreateLeaveRequest{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(act.ID, model.ActionCreate, "leave_request", leave.ID, map[string]any{
		"start_date": leave.StartDate.String(),
		"end_date":   leave.EndDate.String(),
		"leave_type": leave.LeaveType,
	})

	return c.Status(fiber.StatusCreated).JSON(leave)
}

func (s *Server) listLeaveRequests(c *fiber.Ctx) error {
	act := actor(c)

	requests, err := s.deps.Leaves.ListByEmployee(act.ID)
	if err != nil {
		return s.repoError(c, err)
	}

	if statusFilter := c.Query("status"); statusFilter != "" {
		var filtered []model.LeaveRequest
		for _, req := range requests {
			if string(req.Status) == statusFilter {
				filtered = append(filtered, req)
			}
		}
		requests = filtered
	}
	if requests == nil {
		requests = []model.LeaveRequest{}
	}
	return c.JSON(requests)
}

func (s *Server) pendingApprovals(c *fiber.Ctx) error {
	act := actor(c)

	var requests []model.LeaveRequest
	var err error
	switch act.Role {
	case model.RoleAdmin:
		requests, err = s.deps.Leaves.ListPending()
	case model.RoleManager:
		requests, err = s.deps.Leaves.ListPendingByManager(act.ID)
	default:
		return errorResponse(c, fiber.StatusForbidden, "only managers and admins can view pending approvals")
	}
	if err != nil {
		return s.repoError(c, err)
	}
	if requests == nil {
		requests = []model.LeaveRequest{}
	}
	return c.JSON(requests)
}

func (s *Server) getLeaveRequest(c *fiber.Ctx) error {
	leave, err := s.deps.Leaves.Get(c.Params("id"))
	if err != nil {
		return s.repoError(c, err)
	}

	act := actor(c)
	if leave.EmployeeID != act.ID && leave.ManagerID != act.ID && act.Role != model.RoleAdmin {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to access this leave request")
	}
	return c.JSON(leave)
}

type updateLeaveRequestPayload struct {
	StartDate *model.Date `json:"start_date"`
	EndDate   *model.Date `json:"end_date"`
	LeaveType *string     `json:"leave_type"`
	Reason    *string     `json:"reason"`
}

func (s *Server) updateLeaveRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	act := actor(c)

	var req updateLeaveRequestPayload
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	leave, err := s.deps.Leaves.Get(id)
	if err != nil {
		return s.repoError(c, err)
	}
	if leave.EmployeeID != act.ID {
		return errorResponse(c, fiber.StatusForbidden, "can only update your own leave requests")
	}

	updated, err := s.deps.Leaves.Update(id, hr.UpdateLeaveRequest{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(act.ID, model.ActionUpdate, "leave_request", id, map[string]any{})

	return c.JSON(updated)
}

type leaveDecisionPayload struct {
	Status          model.LeaveStatus `json:"status" validate:"required,oneof=approved rejected"`
	ManagerComments string            `json:"manager_comments"`
}

func (s *Server) decideLeaveRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	act := actor(c)

	var req leaveDecisionPayload
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	leave, err := s.deps.Leaves.Get(id)
	if err != nil {
		return s.repoError(c, err)
	}
	if !s.deps.Policy.CanApproveLeave(act, leave) {
		return errorResponse(c, fiber.StatusForbidden, "not authorized to approve this leave request")
	}

	updated, err := s.deps.Leaves.Decide(id, act.ID, hr.Decision{
		Status:   req.Status,
		Comments: req.ManagerComments,
	})
	if err != nil {
		return s.repoError(c, err)
	}

	action := model.ActionApprove
	if req.Status == model.LeaveRejected {
		action = model.ActionReject
	}
	s.deps.Audit.Record(act.ID, action, "leave_request", id, map[string]any{
		"status":   updated.Status,
		"comments": req.ManagerComments,
	})

	return c.JSON(updated)
}

func (s *Server) cancelLeaveRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	act := actor(c)

	leave, err := s.deps.Leaves.Get(id)
	if err != nil {
		return s.repoError(c, err)
	}
	if leave.EmployeeID != act.ID {
		return errorResponse(c, fiber.StatusForbidden, "can only cancel your own leave requests")
	}

	if _, err := s.deps.Leaves.Cancel(id, act.ID); err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(act.ID, model.ActionDelete, "leave_request", id,
		map[string]any{"action": "cancelled"})

	return c.JSON(fiber.Map{"message": "leave request cancelled successfully"})
}

package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"hrops/internal/model"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        employeeResponse `json:"user"`
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	emp, err := s.deps.Employees.Authenticate(req.Email, req.Password)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "incorrect email or password")
	}
	if !emp.IsActive {
		return errorResponse(c, fiber.StatusForbidden, "account is deactivated")
	}

	token, err := issueToken(s.jwtSecret, emp.ID, s.deps.TokenTTL, s.deps.Clock.Now())
	if err != nil {
		return s.repoError(c, err)
	}

	s.deps.Audit.Record(emp.ID, model.ActionLogin, "user", emp.ID, map[string]any{"email": emp.Email})

	return c.JSON(loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toEmployeeResponse(emp),
	})
}

func (s *Server) logout(c *fiber.Ctx) error {
	emp := actor(c)
	// Tokens are stateless; logout is recorded for the audit trail only.
	s.deps.Audit.Record(emp.ID, model.ActionLogout, "user", emp.ID, map[string]any{"email": emp.Email})
	return c.JSON(fiber.Map{"message": "successfully logged out"})
}

func (s *Server) me(c *fiber.Ctx) error {
	return c.JSON(toEmployeeResponse(actor(c)))
}

func (s *Server) verifyToken(c *fiber.Ctx) error {
	emp := actor(c)
	return c.JSON(fiber.Map{
		"valid":   true,
		"user_id": emp.ID,
		"email":   emp.Email,
		"role":    emp.Role,
	})
}

package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"hrops/internal/model"
)

const actorKey = "actor"

// requireAuth resolves the acting employee from the bearer token and
// stores it in the request locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return errorResponse(c, fiber.StatusUnauthorized, "missing bearer token")
	}

	subject, err := parseToken(s.jwtSecret, token)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "could not validate credentials")
	}

	actorEmp, err := s.deps.Employees.Get(subject)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "could not validate credentials")
	}

	c.Locals(actorKey, actorEmp)
	return c.Next()
}

// actor returns the authenticated employee stored by requireAuth.
func actor(c *fiber.Ctx) model.Employee {
	emp, _ := c.Locals(actorKey).(model.Employee)
	return emp
}

// requireAdmin gates a route to administrators.
func (s *Server) requireAdmin(c *fiber.Ctx) error {
	if actor(c).Role != model.RoleAdmin {
		return errorResponse(c, fiber.StatusForbidden, "insufficient permissions")
	}
	return c.Next()
}

// requireManagerOrAdmin gates a route to managers and administrators.
func (s *Server) requireManagerOrAdmin(c *fiber.Ctx) error {
	switch actor(c).Role {
	case model.RoleManager, model.RoleAdmin:
		return c.Next()
	}
	return errorResponse(c, fiber.StatusForbidden, "insufficient permissions")
}

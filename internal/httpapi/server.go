// Package httpapi is the request layer: routing, payload validation,
// token issuance, and translation of repository outcomes into HTTP
// responses. All invariants are enforced below it, in internal/hr.
package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hrops/internal/hr"
)

// Deps carries everything the server needs; all fields are required.
type Deps struct {
	Employees *hr.Employees
	WorkLogs  *hr.WorkLogs
	Leaves    *hr.LeaveRequests
	Feedback  *hr.FeedbackEntries
	Audit     *hr.AuditLog
	Settings  *hr.SettingsStore
	Policy    *hr.Policy
	Clock     hr.Clock
	Logger    hr.Logger

	JWTSecret string
	TokenTTL  time.Duration
}

// Server is the HTTP API for the HR service.
type Server struct {
	deps      Deps
	jwtSecret []byte
	validate  *validator.Validate
	app       *fiber.App
}

// NewServer builds the fiber app and registers all routes.
func NewServer(deps Deps) *Server {
	s := &Server{
		deps:      deps,
		jwtSecret: []byte(deps.JWTSecret),
		validate:  validator.New(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "hrops",
		DisableStartupMessage: true,
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", s.login)
	authGroup.Post("/logout", s.requireAuth, s.logout)
	authGroup.Get("/me", s.requireAuth, s.me)
	authGroup.Post("/verify-token", s.requireAuth, s.verifyToken)

	employees := api.Group("/employees", s.requireAuth)
	employees.Post("/", s.requireAdmin, s.createEmployee)
	employees.Get("/", s.requireAdmin, s.listEmployees)
	employees.Get("/:id/direct-reports", s.directReports)
	employees.Get("/:id", s.getEmployee)
	employees.Put("/:id", s.updateEmployee)
	employees.Delete("/:id", s.requireAdmin, s.deleteEmployee)

	workLogs := api.Group("/work-logs", s.requireAuth)
	workLogs.Post("/", s.createWorkLog)
	workLogs.Get("/reports/summary", s.workSummary)
	workLogs.Get("/", s.listWorkLogs)
	workLogs.Get("/:id", s.getWorkLog)
	workLogs.Put("/:id", s.updateWorkLog)
	workLogs.Post("/:id/feedback", s.addLogFeedback)

	leaves := api.Group("/leave-requests", s.requireAuth)
	leaves.Post("/", s.createLeaveRequest)
	leaves.Get("/pending-approvals", s.pendingApprovals)
	leaves.Get("/", s.listLeaveRequests)
	leaves.Get("/:id", s.getLeaveRequest)
	leaves.Put("/:id", s.updateLeaveRequest)
	leaves.Post("/:id/approve", s.decideLeaveRequest)
	leaves.Delete("/:id", s.cancelLeaveRequest)

	feedback := api.Group("/feedback", s.requireAuth)
	feedback.Post("/", s.requireManagerOrAdmin, s.createFeedback)
	feedback.Get("/my-feedback", s.myFeedback)
	feedback.Get("/given-feedback", s.requireManagerOrAdmin, s.givenFeedback)
	feedback.Get("/employee/:id", s.employeeFeedback)
	feedback.Get("/work-log/:id", s.workLogFeedback)

	admin := api.Group("/admin", s.requireAuth, s.requireAdmin)
	admin.Get("/dashboard", s.dashboard)
	admin.Get("/audit-trails", s.auditTrails)
	admin.Get("/settings", s.getSettings)
	admin.Put("/settings", s.updateSettings)
	admin.Post("/bulk-create-employees", s.bulkCreateEmployees)

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves the API on addr until the listener fails or Shutdown is
// called.
func (s *Server) Listen(addr string) error {
	s.deps.Logger.Info("http api listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

package hr

import (
	"time"

	"hrops/internal/model"
)

// Policy holds the role and reporting-line access rules. Every predicate
// is read-only and returns a plain boolean; lookup failures deny.
type Policy struct {
	employees *Employees
	settings  *SettingsStore
	clock     Clock
}

// NewPolicy creates the authorization policy.
func NewPolicy(employees *Employees, settings *SettingsStore, clock Clock) *Policy {
	return &Policy{employees: employees, settings: settings, clock: clock}
}

// CanAccessEmployeeData reports whether actor may read targetID's
// records: admins always, everyone their own, managers their direct
// reports (one employee lookup).
func (p *Policy) CanAccessEmployeeData(actor model.Employee, targetID string) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	if actor.ID == targetID {
		return true
	}
	if actor.Role == model.RoleManager {
		target, err := p.employees.Get(targetID)
		if err != nil {
			return false
		}
		return target.ManagerID == actor.ID
	}
	return false
}

// CanApproveLeave reports whether actor may decide the request. The
// check uses the manager snapshot taken at filing time, not a live
// lookup: reassigning an employee mid-flight does not transfer approval
// authority over already-filed requests.
func (p *Policy) CanApproveLeave(actor model.Employee, req model.LeaveRequest) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	return actor.Role == model.RoleManager && req.ManagerID == actor.ID
}

// CanEditWorkLog reports whether actor may edit the log: admins always,
// the owner within the configured time limit. The limit is read from
// settings on every call, so changing it applies to existing logs
// immediately.
func (p *Policy) CanEditWorkLog(actor model.Employee, log model.WorkLog) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	if log.EmployeeID != actor.ID {
		return false
	}

	settings, err := p.settings.Get()
	if err != nil {
		return false
	}
	limit := time.Duration(settings.LogEditTimeLimitHours) * time.Hour
	return p.clock.Now().Sub(log.CreatedAt) <= limit
}

// CanGiveFeedback reports whether actor may author feedback on a log
// owned by logOwner: admins always, managers for their direct reports.
func (p *Policy) CanGiveFeedback(actor model.Employee, logOwner model.Employee) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	return actor.Role == model.RoleManager && logOwner.ManagerID == actor.ID
}

package model

import "time"

// Role is an employee's access level.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// TaskStatus is the progress state of a work log entry.
type TaskStatus string

const (
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskInProgress, TaskCompleted, TaskBlocked:
		return true
	}
	return false
}

// LeaveStatus is the approval state of a leave request.
// Pending is the initial state; approved and rejected are terminal.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}

// ActionType classifies an audit trail entry.
type ActionType string

const (
	ActionCreate  ActionType = "create"
	ActionUpdate  ActionType = "update"
	ActionDelete  ActionType = "delete"
	ActionLogin   ActionType = "login"
	ActionLogout  ActionType = "logout"
	ActionApprove ActionType = "approve"
	ActionReject  ActionType = "reject"
)

// Employee is a member of the organization. Rows are never physically
// removed; deactivation clears IsActive and keeps the email reserved.
type Employee struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	ManagerID    string    `json:"manager_id,omitempty"`
	Department   string    `json:"department,omitempty"`
	Position     string    `json:"position,omitempty"`
	HireDate     Date      `json:"hire_date"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WorkLog is a single day's activity entry for one employee.
// Editability is derived from ownership and the settings time limit at
// read time and is never persisted.
type WorkLog struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Date            Date       `json:"date"`
	TaskDescription string     `json:"task_description"`
	TimeSpent       float64    `json:"time_spent"`
	Status          TaskStatus `json:"status"`
	Project         string     `json:"project,omitempty"`
	Category        string     `json:"category,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ManagerFeedback string     `json:"manager_feedback,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LeaveRequest is a dated leave application. ManagerID is snapshotted
// from the employee's manager at creation time and is not re-resolved if
// the employee is later reassigned.
type LeaveRequest struct {
	ID              string      `json:"id"`
	EmployeeID      string      `json:"employee_id"`
	StartDate       Date        `json:"start_date"`
	EndDate         Date        `json:"end_date"`
	LeaveType       string      `json:"leave_type"`
	Reason          string      `json:"reason"`
	Status          LeaveStatus `json:"status"`
	ManagerID       string      `json:"manager_id,omitempty"`
	ManagerComments string      `json:"manager_comments,omitempty"`
	ApprovedBy      string      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time  `json:"approved_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Feedback is a manager's comment on a work log. EmployeeID is copied
// from the log's owner at creation time.
type Feedback struct {
	ID           string    `json:"id"`
	WorkLogID    string    `json:"work_log_id"`
	EmployeeID   string    `json:"employee_id"`
	ManagerID    string    `json:"manager_id"`
	FeedbackText string    `json:"feedback_text"`
	Rating       *int      `json:"rating,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuditTrail is an append-only record of a mutating action. Entries are
// never updated or deleted.
type AuditTrail struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Action       ActionType     `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Details      map[string]any `json:"details"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// SettingsID is the fixed identifier of the settings singleton.
const SettingsID = "system_settings"

// SystemSettings is the singleton configuration record.
type SystemSettings struct {
	ID                    string         `json:"id"`
	LogEditTimeLimitHours int            `json:"log_edit_time_limit_hours"`
	DefaultLeaveTypes     []string       `json:"default_leave_types"`
	DefaultTaskCategories []string       `json:"default_task_categories"`
	NotificationSettings  map[string]any `json:"notification_settings"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// DefaultSettings returns the settings record materialized on first access.
func DefaultSettings(now time.Time) SystemSettings {
	return SystemSettings{
		ID:                    SettingsID,
		LogEditTimeLimitHours: 24,
		DefaultLeaveTypes:     []string{"Sick Leave", "Vacation", "Personal", "Maternity/Paternity"},
		DefaultTaskCategories: []string{"Development", "Testing", "Documentation", "Meetings", "Research"},
		NotificationSettings:  map[string]any{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

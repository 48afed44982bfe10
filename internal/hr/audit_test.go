package hr

import (
	"testing"
	"time"

	"hrops/internal/model"
)

func TestAuditRecordAndList(t *testing.T) {
	e := newEnv(t)

	e.audit.Record("user-1", model.ActionCreate, "employee", "emp-1", map[string]any{"email": "a@example.com"})
	e.clock.Advance(time.Minute)
	e.audit.Record("user-2", model.ActionLogin, "employee", "user-2", nil)
	e.clock.Advance(time.Minute)
	e.audit.Record("user-1", model.ActionUpdate, "work_log", "log-1", nil)

	all, err := e.audit.List(AuditFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries, want 3", len(all))
	}
	// Newest first.
	if all[0].Action != model.ActionUpdate || all[2].Action != model.ActionCreate {
		t.Errorf("order = %s, %s, %s", all[0].Action, all[1].Action, all[2].Action)
	}
	// nil details are stored as an empty map.
	if all[0].Details == nil {
		t.Error("Details is nil, want empty map")
	}
}

func TestAuditListFilters(t *testing.T) {
	e := newEnv(t)

	e.audit.Record("user-1", model.ActionCreate, "employee", "emp-1", nil)
	e.audit.Record("user-2", model.ActionCreate, "work_log", "log-1", nil)
	e.audit.Record("user-1", model.ActionDelete, "employee", "emp-2", nil)

	tests := []struct {
		name   string
		filter AuditFilter
		want   int
	}{
		{name: "by user", filter: AuditFilter{UserID: "user-1"}, want: 2},
		{name: "by action", filter: AuditFilter{Action: model.ActionCreate}, want: 2},
		{name: "by resource type", filter: AuditFilter{ResourceType: "work_log"}, want: 1},
		{name: "combined", filter: AuditFilter{UserID: "user-1", Action: model.ActionDelete}, want: 1},
		{name: "no match", filter: AuditFilter{UserID: "ghost"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.audit.List(tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAuditListLimit(t *testing.T) {
	e := newEnv(t)

	for i := 0; i < 5; i++ {
		e.audit.Record("user-1", model.ActionUpdate, "employee", "emp", nil)
		e.clock.Advance(time.Second)
	}

	got, err := e.audit.List(AuditFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
}

func TestAuditRecordIsBestEffort(t *testing.T) {
	e := newEnv(t)
	e.store.FailWrites = true

	// A failing store must not panic or surface an error.
	e.audit.Record("user-1", model.ActionCreate, "employee", "emp-1", nil)

	e.store.FailWrites = false
	got, err := e.audit.List(AuditFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries after failed write, want 0", len(got))
	}
}

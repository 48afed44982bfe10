// Package store implements the durable record store: one JSON artifact
// per named collection, atomically rewritten as a whole and guarded by a
// per-collection exclusive section for read-modify-write transactions.
//
// Corrupt artifacts are quarantined (renamed aside with a timestamp
// suffix) and the collection continues as empty. This trades durability
// of a single damaged collection for availability of the service; the
// quarantined file is kept on disk for manual recovery.
package store

import (
	"encoding/json"
	"fmt"
)

// Collection names one durable record collection.
type Collection string

const (
	Employees     Collection = "employees"
	WorkLogs      Collection = "work_logs"
	LeaveRequests Collection = "leave_requests"
	Feedback      Collection = "feedback"
	AuditTrails   Collection = "audit_trails"
	Settings      Collection = "settings"
)

// Collections returns every known collection.
func Collections() []Collection {
	return []Collection{Employees, WorkLogs, LeaveRequests, Feedback, AuditTrails, Settings}
}

// Store is the persistence engine behind the repositories.
type Store interface {
	// Read returns an unlocked best-effort snapshot of the collection.
	// An unreadable or malformed artifact is quarantined and read as
	// empty; Read never fails.
	Read(c Collection) []json.RawMessage

	// Write atomically replaces the collection's artifact with the
	// given records. On failure the previous committed state is intact.
	Write(c Collection, records []json.RawMessage) error

	// Update runs fn inside the collection's exclusive section with the
	// current records and writes fn's result back atomically. If fn
	// returns an error nothing is written and the error is returned.
	// Holders of different collections never block each other.
	Update(c Collection, fn func(records []json.RawMessage) ([]json.RawMessage, error)) error
}

// Decode unmarshals raw records into typed entities.
func Decode[T any](records []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}

// Encode marshals typed entities into raw records.
func Encode[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}
		out = append(out, json.RawMessage(data))
	}
	return out, nil
}

// LoadAll reads and decodes a full collection snapshot.
func LoadAll[T any](s Store, c Collection) ([]T, error) {
	return Decode[T](s.Read(c))
}

package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid", input: "2025-03-10", want: NewDate(2025, time.March, 10)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "wrong layout", input: "10/03/2025", wantErr: true},
		{name: "invalid day", input: "2025-02-30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.March, 10)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-03-10"` {
		t.Errorf("marshal = %s, want %q", data, `"2025-03-10"`)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDateUnmarshalRejectsNonString(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`20250310`), &d); err == nil {
		t.Error("unmarshal of non-string date succeeded, want error")
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)

	if DateOf(morning) != DateOf(evening) {
		t.Errorf("DateOf(%v) != DateOf(%v)", morning, evening)
	}
}

func TestDateOrdering(t *testing.T) {
	earlier := NewDate(2025, time.March, 9)
	later := NewDate(2025, time.March, 10)

	if !earlier.Before(later) {
		t.Error("earlier.Before(later) = false")
	}
	if !later.After(earlier) {
		t.Error("later.After(earlier) = false")
	}
	if later.Before(later) {
		t.Error("a date is before itself")
	}
	if later.After(later) {
		t.Error("a date is after itself")
	}
}

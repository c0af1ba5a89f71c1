package models

import (
	"testing"

	"github.com/google/uuid"
)

// TestValidProjectStatus verifies that only the three known lifecycle
// states are accepted.
func TestValidProjectStatus(t *testing.T) {
	tests := []struct {
		name   string
		status ProjectStatus
		want   bool
	}{
		{name: "planned", status: ProjectStatusPlanned, want: true},
		{name: "in progress", status: ProjectStatusInProgress, want: true},
		{name: "completed", status: ProjectStatusCompleted, want: true},
		{name: "empty", status: ProjectStatus(""), want: false},
		{name: "unknown", status: ProjectStatus("cancelled"), want: false},
		{name: "uppercase PLANNED", status: ProjectStatus("PLANNED"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidProjectStatus(tt.status); got != tt.want {
				t.Errorf("ValidProjectStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// TestProjectStatusLabel verifies the display labels for each status.
func TestProjectStatusLabel(t *testing.T) {
	tests := []struct {
		status ProjectStatus
		want   string
	}{
		{ProjectStatusPlanned, "Planned"},
		{ProjectStatusInProgress, "In Progress"},
		{ProjectStatusCompleted, "Completed"},
		{ProjectStatus("weird"), "weird"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			p := &Project{Status: tt.status}
			if got := p.StatusLabel(); got != tt.want {
				t.Errorf("StatusLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestClientRef verifies the tagged client reference: consumers must be
// able to distinguish "no client", "id only", and "fully resolved".
func TestClientRef(t *testing.T) {
	id := uuid.New()

	t.Run("unset", func(t *testing.T) {
		var ref ClientRef
		if ref.IsSet() {
			t.Error("zero ClientRef should not be set")
		}
		if ref.Resolved() {
			t.Error("zero ClientRef should not be resolved")
		}
		if ref.Name() != "" {
			t.Errorf("Name() = %q, want empty", ref.Name())
		}
	})

	t.Run("id only", func(t *testing.T) {
		ref := ClientRef{ID: &id}
		if !ref.IsSet() {
			t.Error("ref with ID should be set")
		}
		if ref.Resolved() {
			t.Error("ref without joined row should not be resolved")
		}
		if ref.Name() != "" {
			t.Errorf("Name() on unresolved ref = %q, want empty", ref.Name())
		}
	})

	t.Run("resolved", func(t *testing.T) {
		ref := ClientRef{ID: &id, Client: &Client{ID: id, Name: "Acme Civil"}}
		if !ref.IsSet() || !ref.Resolved() {
			t.Error("joined ref should be set and resolved")
		}
		if ref.Name() != "Acme Civil" {
			t.Errorf("Name() = %q, want %q", ref.Name(), "Acme Civil")
		}
	})
}

// TestMaxFeaturedProjects pins the homepage featured cap.
func TestMaxFeaturedProjects(t *testing.T) {
	if MaxFeaturedProjects != 3 {
		t.Errorf("MaxFeaturedProjects = %d, want 3", MaxFeaturedProjects)
	}
}

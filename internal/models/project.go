// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the closed set of lifecycle states for a project.
type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "planned"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// MaxFeaturedProjects caps how many projects may be featured on the
// homepage at once. Enforced transactionally in the project store.
const MaxFeaturedProjects = 3

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is a construction project shown on the public site and managed
// through the admin console.
type Project struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"` // Markdown source
	CategoryID    *uuid.UUID    `json:"category_id"`
	Client        ClientRef     `json:"client"`
	Location      string        `json:"location"`
	Status        ProjectStatus `json:"status"`
	IsFeatured    bool          `json:"is_featured"`
	ShowOnWebsite bool          `json:"show_on_website"`
	StartedAt     *time.Time    `json:"started_at,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Virtual field populated by joined list queries.
	CategoryName string `json:"category_name,omitempty"`
}

// StatusLabel returns a human-readable status for templates.
func (p *Project) StatusLabel() string {
	switch p.Status {
	case ProjectStatusPlanned:
		return "Planned"
	case ProjectStatusInProgress:
		return "In Progress"
	case ProjectStatusCompleted:
		return "Completed"
	}
	return string(p.Status)
}

// ClientRef is a tagged reference to a project's client. Depending on the
// query path it may carry only the ID or a fully joined Client row.
// Consumers must check Resolved() before reading Client fields instead of
// assuming the join happened.
type ClientRef struct {
	ID     *uuid.UUID `json:"id"`
	Client *Client    `json:"client,omitempty"`
}

// IsSet reports whether the project has a client at all.
func (r ClientRef) IsSet() bool {
	return r.ID != nil
}

// Resolved reports whether the full client row was joined into the ref.
func (r ClientRef) Resolved() bool {
	return r.Client != nil
}

// Name returns the client name when resolved, or an empty string. Callers
// that need the name for an unresolved ref must fetch the client first.
func (r ClientRef) Name() string {
	if r.Client != nil {
		return r.Client.Name
	}
	return ""
}

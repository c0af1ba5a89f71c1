// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting is an open position listed on the careers page. DepartmentID
// references a category of type "job".
type JobPosting struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employment_type"` // e.g. "full_time", "contract"
	Description    string     `json:"description"`     // Markdown source
	IsOpen         bool       `json:"is_open"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Virtual fields populated by joined list queries.
	DepartmentName   string `json:"department_name,omitempty"`
	ApplicationCount int    `json:"application_count"`
}

// ApplicationStatus tracks triage of a job application.
type ApplicationStatus string

const (
	ApplicationStatusNew      ApplicationStatus = "new"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusRejected ApplicationStatus = "rejected"
	ApplicationStatusHired    ApplicationStatus = "hired"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusReviewed,
		ApplicationStatusRejected, ApplicationStatusHired:
		return true
	}
	return false
}

// JobApplication is a submitted application. The resume lives in the
// private S3 bucket and is only reachable through a presigned URL.
type JobApplication struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	CoverLetter string            `json:"cover_letter"`
	ResumeS3Key *string           `json:"resume_s3_key,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`

	// Virtual field populated by joined list queries.
	JobTitle string `json:"job_title,omitempty"`
}

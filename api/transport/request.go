package transport

import (
	"time"

	"github.com/jobdeck/backend/domain"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// JobRequest accepts both the canonical field names and the legacy
// spellings some clients still send. Normalization happens exactly once, at
// this boundary; internal code only ever sees canonical fields.
type JobRequest struct {
	Title           string          `json:"title"`
	JobTitle        string          `json:"jobTitle"`
	CompanyName     string          `json:"company_name"`
	Location        string          `json:"location"`
	WorkLocation    string          `json:"workLocation"`
	Description     string          `json:"description"`
	JobType         string          `json:"job_type"`
	Type            string          `json:"type"`
	WorkMode        string          `json:"work_mode"`
	Mode            string          `json:"mode"`
	ExperienceLevel string          `json:"experience_level"`
	Level           string          `json:"level"`
	Salary          domain.Salary   `json:"salary"`
	Requirements    []string        `json:"requirements"`
	Benefits        domain.Benefits `json:"benefits"`
	Deadline        string          `json:"deadline"`
	AppDeadline     string          `json:"applicationDeadline"`
	Status          string          `json:"status"`
}

// Deadline formats accepted from clients.
var deadlineFormats = []string{time.RFC3339, "2006-01-02"}

// ToJob resolves aliases and builds the domain job. A canonical field wins
// over its legacy alias when both are present. Status normalization
// (unknown -> published, live/inactive aliases) is part of the boundary.
func (r *JobRequest) ToJob() *domain.Job {
	job := &domain.Job{
		Title:           firstNonEmpty(r.Title, r.JobTitle),
		CompanyName:     r.CompanyName,
		Location:        firstNonEmpty(r.Location, r.WorkLocation),
		Description:     r.Description,
		JobType:         firstNonEmpty(r.JobType, r.Type),
		WorkMode:        firstNonEmpty(r.WorkMode, r.Mode),
		ExperienceLevel: firstNonEmpty(r.ExperienceLevel, r.Level),
		Salary:          r.Salary,
		Requirements:    r.Requirements,
		Benefits:        r.Benefits,
		Status:          domain.NormalizeStatus(r.Status),
	}
	if raw := firstNonEmpty(r.Deadline, r.AppDeadline); raw != "" {
		for _, layout := range deadlineFormats {
			if parsed, err := time.Parse(layout, raw); err == nil {
				job.Deadline = parsed
				break
			}
		}
	}
	return job
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type ApplyRequest struct {
	CoverLetter string   `json:"cover_letter"`
	DocumentIDs []string `json:"document_ids"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status"`
}

type ApplicationNotesRequest struct {
	Notes string `json:"notes"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type BulkNotesRequest struct {
	IDs   []string `json:"ids"`
	Notes string   `json:"notes"`
}

type ProfileUpdateRequest struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Location string `json:"location"`
	About    string `json:"about"`
}

type DocumentRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

type SkillRequest struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	From        string `json:"from"`
	To          string `json:"to"`
	Description string `json:"description"`
}

type MessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

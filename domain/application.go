package domain

import "time"

// ApplicationStatus is the review state assigned by the owning company.
type ApplicationStatus string

const (
	ApplicationPending      ApplicationStatus = "pending"
	ApplicationViewed       ApplicationStatus = "viewed"
	ApplicationSuccessful   ApplicationStatus = "successful"
	ApplicationUnsuccessful ApplicationStatus = "unsuccessful"
)

// ValidApplicationStatus reports whether raw is a known review state.
func ValidApplicationStatus(raw string) bool {
	switch ApplicationStatus(raw) {
	case ApplicationPending, ApplicationViewed, ApplicationSuccessful, ApplicationUnsuccessful:
		return true
	}
	return false
}

// Application is a seeker's submission against a specific job. CompanyID is
// a copy of the job owner's id taken at creation time so ownership checks
// never need a join.
type Application struct {
	ID                string            `json:"id"`
	JobID             string            `json:"job_id"`
	ApplicantID       string            `json:"applicant_id"`
	CompanyID         string            `json:"company_id"`
	Status            ApplicationStatus `json:"status"`
	CoverLetter       string            `json:"cover_letter,omitempty"`
	AttachedDocuments []Document        `json:"attached_documents,omitempty"`
	CompanyNotes      string            `json:"company_notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// OwnedBy reports whether userID is the denormalized owning company.
func (a *Application) OwnedBy(userID string) bool {
	return a != nil && userID != "" && a.CompanyID == userID
}

// ApplicantSummary is the slice of applicant profile data populated next to
// an application when a company reviews candidates.
type ApplicantSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Headline        string  `json:"headline,omitempty"`
	Location        string  `json:"location,omitempty"`
	Skills          []Skill `json:"skills,omitempty"`
	ExperienceCount int     `json:"experience_count"`
}

// ApplicationView is an application populated with its applicant, as served
// to the job owner.
type ApplicationView struct {
	Application
	Applicant ApplicantSummary `json:"applicant"`
}

// ApplicationWithJob is an application with job context denormalized into
// the response, as served to the applicant.
type ApplicationWithJob struct {
	Application
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

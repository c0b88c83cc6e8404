package domain

import "time"

// User roles. Role is fixed at registration and never changed by any route.
const (
	RoleSeeker  = "seeker"
	RoleCompany = "company"
)

// User represents an account on the platform. Documents, skills and
// experience entries are value objects embedded in the user aggregate,
// each with a generated sub-id for targeted add/remove.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email,omitempty"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Headline     string       `json:"headline,omitempty"`
	Location     string       `json:"location,omitempty"`
	About        string       `json:"about,omitempty"`
	Documents    []Document   `json:"documents,omitempty"`
	Skills       []Skill      `json:"skills,omitempty"`
	Experience   []Experience `json:"experience,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Document is an uploaded-file reference; the blob itself lives elsewhere.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind,omitempty"`
	URL        string    `json:"url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Description string     `json:"description,omitempty"`
}

func (u *User) IsCompany() bool {
	return u != nil && u.Role == RoleCompany
}

func (u *User) IsSeeker() bool {
	return u != nil && u.Role == RoleSeeker
}

// DocumentsByID returns the subset of the user's documents whose ids appear
// in ids, preserving the user's own ordering. Unknown ids are ignored.
func (u *User) DocumentsByID(ids []string) []Document {
	if u == nil || len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Document
	for _, doc := range u.Documents {
		if want[doc.ID] {
			out = append(out, doc)
		}
	}
	return out
}

// PublicView strips fields that are not shown to other users.
func (u *User) PublicView() *User {
	if u == nil {
		return nil
	}
	view := *u
	view.Email = ""
	return &view
}

func ValidRole(role string) bool {
	return role == RoleSeeker || role == RoleCompany
}

package models

import "time"

const MaxTitleLength = 200

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "ACTIVE"
	ProjectArchived ProjectStatus = "ARCHIVED"
	ProjectDeleted  ProjectStatus = "DELETED"
)

type Project struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Owner       *User         `json:"owner,omitempty"`
	Documents   []Document    `json:"documents,omitempty"`
	Notes       []Note        `json:"notes,omitempty"`
	Resources   []Resource    `json:"resources,omitempty"`
}

type NewProject struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (p NewProject) Validate() error {
	errs := FieldErrors{}
	validateTitle(errs, p.Title)
	return errs.err()
}

// ProjectPatch is a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
}

func (p ProjectPatch) Validate() error {
	errs := FieldErrors{}
	if p.Title != nil {
		validateTitle(errs, *p.Title)
	}
	if p.Status != nil {
		switch *p.Status {
		case ProjectActive, ProjectArchived, ProjectDeleted:
		default:
			errs["status"] = "Unknown status " + string(*p.Status)
		}
	}
	return errs.err()
}

// ProjectDocument is the single working draft attached to a project.
type ProjectDocument struct {
	ID        int64     `json:"id"`
	Project   int64     `json:"project"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func validateTitle(errs FieldErrors, title string) {
	switch {
	case title == "":
		errs["title"] = "Title is required and cannot be empty"
	case len([]rune(title)) > MaxTitleLength:
		errs["title"] = "Title cannot be longer than 200 characters"
	}
}

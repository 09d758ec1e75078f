package models

import "time"

type Note struct {
	ID             int64     `json:"id"`
	Project        int64     `json:"project"`
	Title          string    `json:"title"`
	NameIdentifier string    `json:"name_identifier"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type NewNote struct {
	Project        int64  `json:"project"`
	Title          string `json:"title,omitempty"`
	NameIdentifier string `json:"name_identifier,omitempty"`
	Content        string `json:"content"`
}

func (n NewNote) Validate() error {
	errs := FieldErrors{}
	if n.Project <= 0 {
		errs["project"] = "Project is required"
	}
	if n.Content == "" {
		errs["content"] = "Content is required and cannot be empty"
	}
	return errs.err()
}

type NotePatch struct {
	Title          *string `json:"title,omitempty"`
	NameIdentifier *string `json:"name_identifier,omitempty"`
	Content        *string `json:"content,omitempty"`
}

func (n NotePatch) Validate() error {
	if n.Content != nil && *n.Content == "" {
		return FieldErrors{"content": "Content cannot be empty"}
	}
	return nil
}

package models

import "time"

type Document struct {
	ID        int64     `json:"id"`
	Project   int64     `json:"project"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewDocument struct {
	Project int64  `json:"project"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (d NewDocument) Validate() error {
	errs := FieldErrors{}
	if d.Project <= 0 {
		errs["project"] = "Project is required"
	}
	validateTitle(errs, d.Title)
	if d.Content == "" {
		errs["content"] = "Content is required and cannot be empty"
	}
	return errs.err()
}

type DocumentPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (d DocumentPatch) Validate() error {
	errs := FieldErrors{}
	if d.Title != nil {
		validateTitle(errs, *d.Title)
	}
	if d.Content != nil && *d.Content == "" {
		errs["content"] = "Content cannot be empty"
	}
	return errs.err()
}

package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (a *API) GetNotes(ctx context.Context, projectID int64) ([]models.Note, error) {
	return call[[]models.Note](ctx, a, client.Request{Method: http.MethodGet, Path: "/notes/", Query: byProject(projectID)})
}

func (a *API) CreateNote(ctx context.Context, in models.NewNote) (models.Note, error) {
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	return call[models.Note](ctx, a, client.Request{Method: http.MethodPost, Path: "/notes/", Body: in})
}

func (a *API) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) (models.Note, error) {
	if err := patch.Validate(); err != nil {
		return models.Note{}, err
	}
	return call[models.Note](ctx, a, client.Request{Method: http.MethodPatch, Path: idPath("notes", id), Body: patch})
}

func (a *API) DeleteNote(ctx context.Context, id int64) error {
	return exec(ctx, a, client.Request{Method: http.MethodDelete, Path: idPath("notes", id)})
}

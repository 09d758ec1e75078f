package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (a *API) GetDocuments(ctx context.Context, projectID int64) ([]models.Document, error) {
	return call[[]models.Document](ctx, a, client.Request{Method: http.MethodGet, Path: "/documents/", Query: byProject(projectID)})
}

func (a *API) GetDocument(ctx context.Context, id int64) (models.Document, error) {
	return call[models.Document](ctx, a, client.Request{Method: http.MethodGet, Path: idPath("documents", id)})
}

func (a *API) CreateDocument(ctx context.Context, in models.NewDocument) (models.Document, error) {
	if err := in.Validate(); err != nil {
		return models.Document{}, err
	}
	return call[models.Document](ctx, a, client.Request{Method: http.MethodPost, Path: "/documents/", Body: in})
}

func (a *API) UpdateDocument(ctx context.Context, id int64, patch models.DocumentPatch) (models.Document, error) {
	if err := patch.Validate(); err != nil {
		return models.Document{}, err
	}
	return call[models.Document](ctx, a, client.Request{Method: http.MethodPatch, Path: idPath("documents", id), Body: patch})
}

func (a *API) DeleteDocument(ctx context.Context, id int64) error {
	return exec(ctx, a, client.Request{Method: http.MethodDelete, Path: idPath("documents", id)})
}

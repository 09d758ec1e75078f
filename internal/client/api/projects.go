package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (a *API) GetProjects(ctx context.Context) ([]models.Project, error) {
	return call[[]models.Project](ctx, a, client.Request{Method: http.MethodGet, Path: "/projects/"})
}

func (a *API) GetProject(ctx context.Context, id int64) (models.Project, error) {
	return call[models.Project](ctx, a, client.Request{Method: http.MethodGet, Path: idPath("projects", id)})
}

func (a *API) CreateProject(ctx context.Context, in models.NewProject) (models.Project, error) {
	if err := in.Validate(); err != nil {
		return models.Project{}, err
	}
	return call[models.Project](ctx, a, client.Request{Method: http.MethodPost, Path: "/projects/", Body: in})
}

func (a *API) UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (models.Project, error) {
	if err := patch.Validate(); err != nil {
		return models.Project{}, err
	}
	return call[models.Project](ctx, a, client.Request{Method: http.MethodPatch, Path: idPath("projects", id), Body: patch})
}

func (a *API) DeleteProject(ctx context.Context, id int64) error {
	return exec(ctx, a, client.Request{Method: http.MethodDelete, Path: idPath("projects", id)})
}

// DuplicateProject copies a project together with its draft and notes.
func (a *API) DuplicateProject(ctx context.Context, id int64) (models.Project, error) {
	return call[models.Project](ctx, a, client.Request{Method: http.MethodPost, Path: idPath("projects", id, "duplicate")})
}

// GetProjectDocument returns the project's working draft.
func (a *API) GetProjectDocument(ctx context.Context, projectID int64) (models.ProjectDocument, error) {
	return call[models.ProjectDocument](ctx, a, client.Request{Method: http.MethodGet, Path: idPath("projects", projectID, "document")})
}

func (a *API) SaveProjectDocument(ctx context.Context, projectID int64, content string) (models.ProjectDocument, error) {
	return call[models.ProjectDocument](ctx, a, client.Request{
		Method: http.MethodPost,
		Path:   idPath("projects", projectID, "document"),
		Body:   map[string]string{"content": content},
	})
}

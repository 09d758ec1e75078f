package api

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (a *API) GetResources(ctx context.Context, projectID int64) ([]models.Resource, error) {
	return call[[]models.Resource](ctx, a, client.Request{Method: http.MethodGet, Path: "/resources/", Query: byProject(projectID)})
}

// UploadResource sends content as a multipart upload. The multipart body
// carries its own Content-Type.
func (a *API) UploadResource(ctx context.Context, in models.NewResource, content io.Reader) (models.Resource, error) {
	if err := in.Validate(); err != nil {
		return models.Resource{}, err
	}

	form := &client.Form{}
	form.AddField("project", strconv.FormatInt(in.Project, 10))
	form.AddField("file_type", string(models.ResourceTypeOf(in.FileName)))
	if in.Title != "" {
		form.AddField("title", in.Title)
	}
	if in.Description != "" {
		form.AddField("description", in.Description)
	}
	form.AddFile("file", filepath.Base(in.FileName), mime.TypeByExtension(filepath.Ext(in.FileName)), content)

	return call[models.Resource](ctx, a, client.Request{
		Method:          http.MethodPost,
		Path:            "/resources/",
		Body:            form,
		SkipContentType: true,
	})
}

func (a *API) ExtractResourceContent(ctx context.Context, id int64) (models.Resource, error) {
	return call[models.Resource](ctx, a, client.Request{Method: http.MethodPost, Path: idPath("resources", id, "extract")})
}

func (a *API) SummarizeResource(ctx context.Context, id int64) (models.ResourceSummary, error) {
	return call[models.ResourceSummary](ctx, a, client.Request{Method: http.MethodPost, Path: idPath("resources", id, "summarize")})
}

func (a *API) DeleteResource(ctx context.Context, id int64) error {
	return exec(ctx, a, client.Request{Method: http.MethodDelete, Path: idPath("resources", id)})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
	"github.com/dmitrijs2005/legalwriter/internal/client/sources"
	"github.com/dmitrijs2005/legalwriter/internal/common"
)

var ErrEmptySummary = errors.New("no summary was generated")

// ResearchService turns uploaded material into project notes.
type ResearchService interface {
	// Upload reads a local path or s3://bucket/key and uploads it to the project.
	Upload(ctx context.Context, projectID int64, location, description string) (models.Resource, error)
	// SummarizeToNote summarizes a resource and saves the summary as a note
	// named after the case citation.
	SummarizeToNote(ctx context.Context, projectID, resourceID int64) (models.Note, error)
}

type ResearchAPI interface {
	GetResources(ctx context.Context, projectID int64) ([]models.Resource, error)
	UploadResource(ctx context.Context, in models.NewResource, content io.Reader) (models.Resource, error)
	SummarizeResource(ctx context.Context, id int64) (models.ResourceSummary, error)
	CreateNote(ctx context.Context, in models.NewNote) (models.Note, error)
}

type SourceOpener interface {
	Open(ctx context.Context, location string) (*sources.Source, error)
}

type researchService struct {
	api    ResearchAPI
	opener SourceOpener
}

func NewResearchService(api ResearchAPI, opener SourceOpener) ResearchService {
	return &researchService{api: api, opener: opener}
}

func (r *researchService) Upload(ctx context.Context, projectID int64, location, description string) (models.Resource, error) {
	src, err := r.opener.Open(ctx, location)
	if err != nil {
		return models.Resource{}, fmt.Errorf("open %s: %w", location, err)
	}
	defer src.Body.Close()

	return r.api.UploadResource(ctx, models.NewResource{
		Project:     projectID,
		Title:       src.Name,
		FileName:    src.Name,
		Description: description,
	}, src.Body)
}

func (r *researchService) SummarizeToNote(ctx context.Context, projectID, resourceID int64) (models.Note, error) {
	resources, err := r.api.GetResources(ctx, projectID)
	if err != nil {
		return models.Note{}, err
	}

	var resource *models.Resource
	for i := range resources {
		if resources[i].ID == resourceID {
			resource = &resources[i]
			break
		}
	}
	if resource == nil {
		return models.Note{}, fmt.Errorf("resource %d in project %d: %w", resourceID, projectID, common.ErrNotFound)
	}

	summary, err := r.api.SummarizeResource(ctx, resourceID)
	if err != nil {
		return models.Note{}, err
	}
	if summary.Summary == "" {
		if summary.SummaryError != "" {
			return models.Note{}, fmt.Errorf("%w: %s", ErrEmptySummary, summary.SummaryError)
		}
		return models.Note{}, ErrEmptySummary
	}

	citation := resource.CitationTitle()
	return r.api.CreateNote(ctx, models.NewNote{
		Project:        projectID,
		Title:          citation,
		NameIdentifier: citation,
		Content:        summary.Summary,
	})
}

package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (a *API) Chat(ctx context.Context, req models.ChatRequest) (models.ChatReply, error) {
	if err := req.Validate(); err != nil {
		return models.ChatReply{}, err
	}
	return call[models.ChatReply](ctx, a, client.Request{Method: http.MethodPost, Path: "/chat/", Body: req})
}

// GetAvailableContexts lists the project items chat can draw on.
func (a *API) GetAvailableContexts(ctx context.Context, projectID int64) ([]models.ChatContext, error) {
	return call[[]models.ChatContext](ctx, a, client.Request{Method: http.MethodGet, Path: "/chat/contexts/", Query: byProject(projectID)})
}

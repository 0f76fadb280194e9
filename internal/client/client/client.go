package client

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

// Client is the story API contract used by the services and the story
// pipeline.
type Client interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error)
	// AddStory sends one multipart upload and returns the server's
	// confirmation message.
	AddStory(ctx context.Context, upload *models.StoryUpload) (string, error)
	ListStories(ctx context.Context, token string, page, size int, withLocation bool) ([]models.Story, error)
}

package uploads

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

// Repository stores upload history records.
type Repository interface {
	// Add stores u. An empty ID is replaced with a fresh one.
	Add(ctx context.Context, u *models.Upload) error

	// List returns the most recent uploads first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]models.Upload, error)
}

package services

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/client/feed"
)

// FeedService reads the story feed on behalf of the logged-in user.
type FeedService struct {
	stream *feed.Stream
	tokens interface {
		Token(ctx context.Context) (string, bool)
	}
}

func NewFeedService(stream *feed.Stream, sessions SessionStore) *FeedService {
	return &FeedService{stream: stream, tokens: sessions}
}

// Browse fetches up to pages pages, or the whole feed when pages <= 0.
func (s *FeedService) Browse(ctx context.Context, pages int) ([]feed.Page, error) {
	token, ok := s.tokens.Token(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return feed.Take(ctx, s.stream, token, pages)
}

// Package feed exposes the remote story list as a lazy sequence of pages.
package feed

import (
	"context"
	"iter"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

// FirstPage is the index of the first page on the story API.
const FirstPage = 1

// Lister fetches one page of stories. client.HTTPClient satisfies it.
type Lister interface {
	ListStories(ctx context.Context, token string, page, size int, withLocation bool) ([]models.Story, error)
}

type Page struct {
	Number int
	Items  []models.Story
}

type Stream struct {
	lister       Lister
	size         int
	withLocation bool
}

func NewStream(lister Lister, size int, withLocation bool) *Stream {
	if size <= 0 {
		size = 10
	}
	return &Stream{lister: lister, size: size, withLocation: withLocation}
}

func (s *Stream) PageSize() int {
	return s.size
}

// Pages fetches pages on demand, starting from FirstPage. The sequence ends
// after an empty or short page, after an error (yielded once), or when the
// consumer stops.
func (s *Stream) Pages(ctx context.Context, token string) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		for n := FirstPage; ; n++ {
			if err := ctx.Err(); err != nil {
				yield(Page{Number: n}, err)
				return
			}

			items, err := s.lister.ListStories(ctx, token, n, s.size, s.withLocation)
			if err != nil {
				yield(Page{Number: n}, err)
				return
			}
			if len(items) == 0 {
				return
			}
			if !yield(Page{Number: n, Items: items}, nil) {
				return
			}
			if len(items) < s.size {
				return
			}
		}
	}
}

// Take collects up to limit pages. A non-positive limit reads until the
// stream ends.
func Take(ctx context.Context, s *Stream, token string, limit int) ([]Page, error) {
	var pages []Page
	for p, err := range s.Pages(ctx, token) {
		if err != nil {
			return pages, err
		}
		pages = append(pages, p)
		if limit > 0 && len(pages) >= limit {
			break
		}
	}
	return pages, nil
}

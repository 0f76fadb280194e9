package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	total     int
	err       error
	errOnPage int

	Pages            []int
	LastToken        string
	LastSize         int
	LastWithLocation bool
}

func (f *fakeLister) ListStories(_ context.Context, token string, page, size int, withLocation bool) ([]models.Story, error) {
	f.Pages = append(f.Pages, page)
	f.LastToken = token
	f.LastSize = size
	f.LastWithLocation = withLocation

	if f.err != nil && page == f.errOnPage {
		return nil, f.err
	}

	start := (page - 1) * size
	var out []models.Story
	for i := start; i < start+size && i < f.total; i++ {
		out = append(out, models.Story{ID: fmt.Sprintf("story-%d", i)})
	}
	return out, nil
}

func TestPages_StopsOnShortPage(t *testing.T) {
	l := &fakeLister{total: 7}
	s := NewStream(l, 3, true)

	pages, err := Take(context.Background(), s, "tok", 0)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[0].Number)
	assert.Len(t, pages[2].Items, 1)
	assert.Equal(t, "story-6", pages[2].Items[0].ID)
	assert.Equal(t, []int{1, 2, 3}, l.Pages)
	assert.Equal(t, "tok", l.LastToken)
	assert.True(t, l.LastWithLocation)
}

func TestPages_StopsOnEmptyPage(t *testing.T) {
	l := &fakeLister{total: 4}
	s := NewStream(l, 2, false)

	pages, err := Take(context.Background(), s, "tok", 0)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, []int{1, 2, 3}, l.Pages)
}

func TestPages_IsLazy(t *testing.T) {
	l := &fakeLister{total: 100}
	s := NewStream(l, 10, false)

	pages, err := Take(context.Background(), s, "tok", 2)
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, []int{1, 2}, l.Pages)
}

func TestPages_Error(t *testing.T) {
	boom := errors.New("boom")
	l := &fakeLister{total: 100, err: boom, errOnPage: 2}
	s := NewStream(l, 10, false)

	pages, err := Take(context.Background(), s, "tok", 0)
	require.ErrorIs(t, err, boom)
	assert.Len(t, pages, 1)
}

func TestPages_CanceledContext(t *testing.T) {
	l := &fakeLister{total: 100}
	s := NewStream(l, 10, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Take(ctx, s, "tok", 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, l.Pages)
}

func TestNewStream_DefaultSize(t *testing.T) {
	assert.Equal(t, 10, NewStream(&fakeLister{}, 0, false).PageSize())
}

package location

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	Coordinates *models.Coordinates
	Clears      int
}

func (s *fakeSink) SetCoordinates(c models.Coordinates) { s.Coordinates = &c }
func (s *fakeSink) ClearCoordinates() {
	s.Coordinates = nil
	s.Clears++
}

type failingProvider struct{ err error }

func (f failingProvider) LastLocation(context.Context) (models.Coordinates, bool, error) {
	return models.Coordinates{}, false, f.err
}

func TestStatic(t *testing.T) {
	fix := &models.Coordinates{Lat: -6.2, Lon: 106.8}
	s := NewStatic(fix)
	fix.Lat = 0

	c, ok, err := s.LastLocation(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, -6.2, c.Lat)

	_, ok, err = NewStatic(nil).LastLocation(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGated(t *testing.T) {
	perms := &Permissions{}
	g := NewGated(perms, NewStatic(&models.Coordinates{Lat: 1, Lon: 2}))

	_, _, err := g.LastLocation(context.Background())
	require.ErrorIs(t, err, ErrPermissionDenied)

	perms.Grant()
	c, ok, err := g.LastLocation(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.Coordinates{Lat: 1, Lon: 2}, c)

	perms.Revoke()
	assert.False(t, perms.Granted())
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	perms := &Permissions{}
	sink := &fakeSink{Coordinates: &models.Coordinates{Lat: 9, Lon: 9}}

	_, err := Refresh(ctx, NewGated(perms, NewStatic(&models.Coordinates{Lat: 1, Lon: 2})), sink)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Nil(t, sink.Coordinates)

	perms.Grant()
	c, err := Refresh(ctx, NewGated(perms, NewStatic(&models.Coordinates{Lat: 1, Lon: 2})), sink)
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Lat: 1, Lon: 2}, c)
	require.NotNil(t, sink.Coordinates)
	assert.Equal(t, c, *sink.Coordinates)

	_, err = Refresh(ctx, NewGated(perms, NewStatic(nil)), sink)
	require.ErrorIs(t, err, ErrNoFix)
	assert.Nil(t, sink.Coordinates)

	boom := errors.New("gps off")
	_, err = Refresh(ctx, failingProvider{err: boom}, sink)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, sink.Clears)
}

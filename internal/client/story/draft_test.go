package story

import (
	"testing"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_SnapshotIsCopy(t *testing.T) {
	d := NewDraft()
	d.SetImage("/img.jpg")
	d.SetDescription("desc")
	d.SetCoordinates(models.Coordinates{Lat: 1, Lon: 2})

	s := d.Snapshot()
	require.NotNil(t, s.Coordinates)
	s.Coordinates.Lat = 99

	again := d.Snapshot()
	assert.Equal(t, 1.0, again.Coordinates.Lat)
	assert.True(t, again.Submittable())
	assert.Equal(t, "desc", again.Description)
}

func TestDraft_ClearAndReset(t *testing.T) {
	d := NewDraft()
	d.SetImage("/img.jpg")
	d.SetCoordinates(models.Coordinates{Lat: 1, Lon: 2})

	d.ClearCoordinates()
	assert.Nil(t, d.Snapshot().Coordinates)

	d.Reset()
	assert.Equal(t, Snapshot{}, d.Snapshot())
	assert.False(t, d.Snapshot().Submittable())
}

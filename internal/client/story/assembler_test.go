package story

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransform struct {
	Out     string
	Err     error
	Calls   int
	LastSrc string
}

func (f *fakeTransform) Transform(src string) (string, error) {
	f.Calls++
	f.LastSrc = src
	if f.Err != nil {
		return "", f.Err
	}
	if f.Out == "" {
		return src, nil
	}
	return f.Out, nil
}

func writeImage(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestAssemble_MissingImageWinsOverEverything(t *testing.T) {
	tr := &fakeTransform{}
	a := NewAssembler(tr)

	cases := []struct {
		name  string
		draft Snapshot
		token string
	}{
		{"no token", Snapshot{}, ""},
		{"with token", Snapshot{Description: "x"}, "tok"},
		{"with coordinates", Snapshot{Coordinates: &models.Coordinates{Lat: 1, Lon: 2}}, "tok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := a.Assemble(tc.draft, tc.token)
			require.ErrorIs(t, err, ErrMissingImage)
			assert.Nil(t, req)
		})
	}
	assert.Zero(t, tr.Calls)
}

func TestAssemble_Unauthenticated(t *testing.T) {
	tr := &fakeTransform{}
	a := NewAssembler(tr)

	_, err := a.Assemble(Snapshot{ImagePath: "/tmp/a.jpg"}, "")
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, tr.Calls)
}

func TestAssemble_BuildsRequest(t *testing.T) {
	src := writeImage(t, "photo.png", []byte("raw"))
	reduced := writeImage(t, "reduced-123.jpg", []byte("jpeg-bytes"))
	tr := &fakeTransform{Out: reduced}
	a := NewAssembler(tr)

	draft := Snapshot{
		ImagePath:   src,
		Description: "hello",
		Coordinates: &models.Coordinates{Lat: -6.2, Lon: 106.8},
	}
	req, err := a.Assemble(draft, "T")
	require.NoError(t, err)

	assert.Equal(t, src, tr.LastSrc)
	assert.Equal(t, "Bearer T", req.Authorization)
	assert.Equal(t, "reduced-123.jpg", req.Photo.Filename)
	assert.Equal(t, "image/jpeg", req.Photo.ContentType)
	assert.Equal(t, []byte("jpeg-bytes"), req.Photo.Data)
	assert.Equal(t, "hello", req.Description)
	require.NotNil(t, req.Lat)
	require.NotNil(t, req.Lon)
	assert.Equal(t, -6.2, *req.Lat)
	assert.Equal(t, 106.8, *req.Lon)

	_, statErr := os.Stat(reduced)
	assert.True(t, os.IsNotExist(statErr), "reduced copy should be removed")
	_, statErr = os.Stat(src)
	assert.NoError(t, statErr, "source must be kept")
}

func TestAssemble_EmptyDescriptionAndNoLocation(t *testing.T) {
	src := writeImage(t, "photo.jpg", []byte("jpeg"))
	a := NewAssembler(&fakeTransform{})

	req, err := a.Assemble(Snapshot{ImagePath: src}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "", req.Description)
	assert.Nil(t, req.Lat)
	assert.Nil(t, req.Lon)
	assert.Equal(t, "photo.jpg", req.Photo.Filename)
}

func TestAssemble_TransformError(t *testing.T) {
	boom := errors.New("boom")
	a := NewAssembler(&fakeTransform{Err: boom})

	_, err := a.Assemble(Snapshot{ImagePath: "/x.jpg"}, "abc")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, UserMessage(err), "boom")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "insert an image", UserMessage(ErrMissingImage))
	assert.Equal(t, "please log in first", UserMessage(ErrUnauthenticated))
}

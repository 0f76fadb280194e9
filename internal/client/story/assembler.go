package story

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/netx"
)

var (
	ErrMissingImage    = errors.New("missing image")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// PhotoContentType is sent for every photo part; the transform always
// produces JPEG.
const PhotoContentType = "image/jpeg"

// UploadRequest is an assembled story submission.
type UploadRequest = models.StoryUpload

// ImageTransform re-encodes an image file to fit the upload limits and
// returns the path of the result.
type ImageTransform interface {
	Transform(srcPath string) (string, error)
}

type Assembler struct {
	transform ImageTransform
}

func NewAssembler(transform ImageTransform) *Assembler {
	return &Assembler{transform: transform}
}

// Assemble validates the draft and builds the upload request. A missing image
// is reported before a missing token. Description and coordinates are passed
// through as they are.
func (a *Assembler) Assemble(draft Snapshot, token string) (*UploadRequest, error) {
	if !draft.Submittable() {
		return nil, ErrMissingImage
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	reduced, err := a.transform.Transform(draft.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}
	if reduced != draft.ImagePath {
		defer os.Remove(reduced)
	}

	data, err := os.ReadFile(reduced)
	if err != nil {
		return nil, fmt.Errorf("failed to read prepared image: %w", err)
	}

	req := &UploadRequest{
		Photo: models.FilePart{
			Filename:    filepath.Base(reduced),
			ContentType: PhotoContentType,
			Data:        data,
		},
		Description:   draft.Description,
		Authorization: netx.Bearer(token),
	}
	if c := draft.Coordinates; c != nil {
		lat, lon := c.Lat, c.Lon
		req.Lat = &lat
		req.Lon = &lon
	}
	return req, nil
}

// UserMessage turns an assembly error into the text shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingImage):
		return "insert an image"
	case errors.Is(err, ErrUnauthenticated):
		return "please log in first"
	default:
		return err.Error()
	}
}

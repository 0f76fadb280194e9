package story

import (
	"sync"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

// Draft is the story being composed. Capture, selection, text entry and
// location callbacks update it only through its setters; submission reads a
// Snapshot.
type Draft struct {
	mu          sync.Mutex
	imagePath   string
	description string
	coordinates *models.Coordinates
}

// Snapshot is an immutable copy of a Draft.
type Snapshot struct {
	ImagePath   string
	Description string
	Coordinates *models.Coordinates
}

func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) SetImage(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.imagePath = path
}

func (d *Draft) SetDescription(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.description = text
}

func (d *Draft) SetCoordinates(c models.Coordinates) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.coordinates = &c
}

func (d *Draft) ClearCoordinates() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.coordinates = nil
}

// Reset discards the draft after a successful upload.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.imagePath = ""
	d.description = ""
	d.coordinates = nil
}

func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Snapshot{ImagePath: d.imagePath, Description: d.description}
	if d.coordinates != nil {
		c := *d.coordinates
		s.Coordinates = &c
	}
	return s
}

// Submittable reports whether the draft carries an image.
func (s Snapshot) Submittable() bool {
	return s.ImagePath != ""
}

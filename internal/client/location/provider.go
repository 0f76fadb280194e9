// Package location supplies the device position attached to a story.
package location

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrNoFix            = errors.New("location not found")
)

// Provider returns the last known position. ok is false when there is no
// fix yet.
type Provider interface {
	LastLocation(ctx context.Context) (c models.Coordinates, ok bool, err error)
}

// Static always reports the same fix, or none when it was built without one.
type Static struct {
	fix *models.Coordinates
}

func NewStatic(fix *models.Coordinates) *Static {
	if fix == nil {
		return &Static{}
	}
	c := *fix
	return &Static{fix: &c}
}

func (s *Static) LastLocation(ctx context.Context) (models.Coordinates, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, false, err
	}
	if s.fix == nil {
		return models.Coordinates{}, false, nil
	}
	return *s.fix, true, nil
}

// Permissions records whether the user allowed location access.
type Permissions struct {
	mu      sync.Mutex
	granted bool
}

func (p *Permissions) Grant() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted = true
}

func (p *Permissions) Revoke() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted = false
}

func (p *Permissions) Granted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.granted
}

// Gated asks the wrapped provider only while permission is granted.
type Gated struct {
	perms *Permissions
	next  Provider
}

func NewGated(perms *Permissions, next Provider) *Gated {
	return &Gated{perms: perms, next: next}
}

func (g *Gated) LastLocation(ctx context.Context) (models.Coordinates, bool, error) {
	if !g.perms.Granted() {
		return models.Coordinates{}, false, ErrPermissionDenied
	}
	return g.next.LastLocation(ctx)
}

// Sink receives location updates. story.Draft satisfies it.
type Sink interface {
	SetCoordinates(c models.Coordinates)
	ClearCoordinates()
}

// Refresh reads p and stores the result in sink. Denied permission and a
// missing fix both leave sink without coordinates and are reported as
// ErrPermissionDenied and ErrNoFix.
func Refresh(ctx context.Context, p Provider, sink Sink) (models.Coordinates, error) {
	c, ok, err := p.LastLocation(ctx)
	if err != nil {
		sink.ClearCoordinates()
		return models.Coordinates{}, err
	}
	if !ok {
		sink.ClearCoordinates()
		return models.Coordinates{}, ErrNoFix
	}
	sink.SetCoordinates(c)
	return c, nil
}

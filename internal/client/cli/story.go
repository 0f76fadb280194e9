package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/storyshare/internal/client/location"
	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/story"
)

var errNoBucket = errors.New("no bucket configured")

// Camera captures a new photo and makes it the draft's image.
func (a *App) Camera(ctx context.Context) error {
	path, err := a.camera.Capture(ctx)
	if err != nil {
		return err
	}
	a.draft.SetImage(path)
	a.println("Photo captured:", path)
	return nil
}

// Gallery copies path into the work directory and makes it the draft's image.
func (a *App) Gallery(_ context.Context, path string) error {
	copied, err := a.gallery.Select(path)
	if err != nil {
		return err
	}
	a.draft.SetImage(copied)
	a.println("Image selected:", path)
	return nil
}

// Fetch downloads key from the configured bucket and makes it the draft's image.
func (a *App) Fetch(ctx context.Context, key string) error {
	if a.bucket == nil {
		return errNoBucket
	}
	path, err := a.bucket.Fetch(ctx, key)
	if err != nil {
		return err
	}
	a.draft.SetImage(path)
	a.println("Image downloaded:", key)
	return nil
}

func (a *App) Describe(_ context.Context) error {
	text, err := getMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	a.draft.SetDescription(text)
	return nil
}

// Location grants location access and attaches the current fix, if any.
func (a *App) Location(ctx context.Context) error {
	a.perms.Grant()

	c, err := location.Refresh(ctx, a.locator, a.draft)
	switch {
	case errors.Is(err, location.ErrNoFix):
		a.println("Location not found")
		return nil
	case err != nil:
		return err
	}
	a.println("Location:", c)
	return nil
}

// NoLocation revokes location access and drops the draft's coordinates.
func (a *App) NoLocation(ctx context.Context) error {
	a.perms.Revoke()
	_, err := location.Refresh(ctx, a.locator, a.draft)
	if err != nil && !errors.Is(err, location.ErrPermissionDenied) {
		return err
	}
	a.println("Location removed")
	return nil
}

func (a *App) Draft(_ context.Context) error {
	s := a.draft.Snapshot()

	image := s.ImagePath
	if image == "" {
		image = "(none)"
	}
	loc := "(none)"
	if s.Coordinates != nil {
		loc = s.Coordinates.String()
	}

	a.println(fmt.Sprintf("Image:       %s\nDescription: %s\nLocation:    %s", image, s.Description, loc))
	return nil
}

// Upload submits the draft and waits until the submission settles. On
// success the draft is cleared and the first feed page is shown.
func (a *App) Upload(ctx context.Context) error {
	select {
	case <-a.settled:
	default:
	}

	token, _ := a.tokens.Token(ctx)
	draft := a.draft.Snapshot()
	if !a.controller.TrySubmit(ctx, draft, token) {
		a.println("An upload is already in progress")
		return nil
	}

	var res story.Result
	select {
	case res = <-a.settled:
	case <-ctx.Done():
		return ctx.Err()
	}

	if res.Status != story.StatusSuccess {
		return nil
	}
	a.recordUpload(ctx, draft, res.Message)
	if a.showFeed.Swap(false) {
		return a.Feed(ctx, 1)
	}
	return nil
}

// recordUpload adds a history entry. Failures are logged only: the story is
// already on the server.
func (a *App) recordUpload(ctx context.Context, draft story.Snapshot, message string) {
	u := &models.Upload{
		Description: draft.Description,
		ImageName:   filepath.Base(draft.ImagePath),
		Message:     message,
	}
	if c := draft.Coordinates; c != nil {
		u.Lat, u.Lon = &c.Lat, &c.Lon
	}
	if err := a.history.Add(ctx, u); err != nil {
		a.log.Warn(ctx, "error saving upload history", "error", err)
	}
}

// History lists the last n uploads made from this machine, all when n is 0.
func (a *App) History(ctx context.Context, n int) error {
	list, err := a.history.List(ctx, n)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("Nothing uploaded yet")
		return nil
	}
	for _, u := range list {
		line := fmt.Sprintf("%s  %s", u.UploadedAt.Local().Format("2006-01-02 15:04"), u.ImageName)
		if u.Description != "" {
			line += "  " + u.Description
		}
		if u.Lat != nil && u.Lon != nil {
			line += "  @" + models.Coordinates{Lat: *u.Lat, Lon: *u.Lon}.String()
		}
		a.println(line)
	}
	return nil
}

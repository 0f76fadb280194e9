package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/services"
)

// Feed prints up to pages pages of stories, or all of them when pages is 0.
// Stories with coordinates show their distance from the current fix when
// location access is granted.
func (a *App) Feed(ctx context.Context, pages int) error {
	list, err := a.feedService.Browse(ctx, pages)
	if errors.Is(err, services.ErrNotLoggedIn) {
		a.println("Please log in first")
		return nil
	}

	var here *models.Coordinates
	if c, ok, locErr := a.locator.LastLocation(ctx); locErr == nil && ok {
		here = &c
	}

	n := 0
	for _, p := range list {
		for _, s := range p.Items {
			n++
			a.println(formatStory(n, s, here))
		}
	}
	if n == 0 && err == nil {
		a.println("No stories yet")
	}
	return err
}

func formatStory(n int, s models.Story, here *models.Coordinates) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", n, s.Name)
	if !s.CreatedAt.IsZero() {
		fmt.Fprintf(&b, " (%s)", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if d := strings.TrimSpace(s.Description); d != "" {
		fmt.Fprintf(&b, "\n   %s", d)
	}
	if loc, ok := s.Location(); ok {
		fmt.Fprintf(&b, "\n   at %s", loc)
		if here != nil {
			fmt.Fprintf(&b, ", %.1f km away", here.DistanceTo(loc)/1000)
		}
	}
	if s.PhotoURL != "" {
		fmt.Fprintf(&b, "\n   %s", s.PhotoURL)
	}
	return b.String()
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if c := a.draft.Snapshot(); c.Submittable() {
		s += "draft"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores a saved session and runs the REPL on stdin until the user
// exits or ctx is cancelled.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to storyshare (type 'help' for commands)")

	if me, err := a.authService.CurrentUser(ctx); err == nil {
		a.userName = me.Name
		a.println("Logged in as", me.Name)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Camera(ctx context.Context) error
	Gallery(ctx context.Context, path string) error
	Fetch(ctx context.Context, key string) error
	Describe(ctx context.Context) error
	Location(ctx context.Context) error
	NoLocation(ctx context.Context) error
	Draft(ctx context.Context) error
	Upload(ctx context.Context) error
	Feed(ctx context.Context, pages int) error
	History(ctx context.Context, n int) error
}

// runREPL starts a simple read–eval–print loop for the storyshare CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF,
// on "exit" or "quit", or when ctx is cancelled.
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - exit | quit      leave the program
//
//	Logged in, additionally:
//	  - camera           capture a photo with the configured command
//	  - gallery <path>   pick an image file
//	  - fetch <key>      download an image from the configured bucket
//	  - describe         enter the story text
//	  - location         grant location access and attach the current fix
//	  - nolocation       revoke location access and drop coordinates
//	  - draft            show the story being composed
//	  - upload           submit the draft
//	  - feed [pages]     list stories, one page unless told otherwise
//	  - history [n]      list the last uploads made from this machine
//	  - logout           log out
//
// Errors returned by handlers are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("storyshare %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: camera, gallery <path>, fetch <key>, describe, location, nolocation, draft, upload, feed [pages], history [n], logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "camera":
			err = a.Camera(ctx)

		case "gallery":
			if len(args) == 0 {
				printlnFn("Usage: gallery <path>")
				continue
			}
			err = a.Gallery(ctx, strings.Join(args, " "))

		case "fetch":
			if len(args) == 0 {
				printlnFn("Usage: fetch <key>")
				continue
			}
			err = a.Fetch(ctx, args[0])

		case "describe":
			err = a.Describe(ctx)

		case "location":
			err = a.Location(ctx)

		case "nolocation":
			err = a.NoLocation(ctx)

		case "draft":
			err = a.Draft(ctx)

		case "upload":
			err = a.Upload(ctx)

		case "feed":
			pages := 1
			if len(args) > 0 {
				n, convErr := strconv.Atoi(args[0])
				if convErr != nil || n < 0 {
					printlnFn("Usage: feed [pages], 0 for all")
					continue
				}
				pages = n
			}
			err = a.Feed(ctx, pages)

		case "history":
			n := 10
			if len(args) > 0 {
				v, convErr := strconv.Atoi(args[0])
				if convErr != nil || v < 0 {
					printlnFn("Usage: history [n], 0 for all")
					continue
				}
				n = v
			}
			err = a.History(ctx, n)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

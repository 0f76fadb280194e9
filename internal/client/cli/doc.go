// Package cli provides the interactive storyshare command-line client.
//
// It wires configuration, the local session database, the story API client
// and the story pipeline into a REPL. Typical flow: log in once (the session
// is kept between runs), pick or capture a photo, describe it, optionally
// attach the location, upload, and browse the feed.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

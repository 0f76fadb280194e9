package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls       []string
	lastPath    string
	lastKey     string
	lastPages   int
	lastHistory int
	failOn      string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Camera(ctx context.Context) error { return f.record("camera") }
func (f *fakeExec) Gallery(ctx context.Context, path string) error {
	f.lastPath = path
	return f.record("gallery")
}
func (f *fakeExec) Fetch(ctx context.Context, key string) error {
	f.lastKey = key
	return f.record("fetch")
}
func (f *fakeExec) Describe(ctx context.Context) error   { return f.record("describe") }
func (f *fakeExec) Location(ctx context.Context) error   { return f.record("location") }
func (f *fakeExec) NoLocation(ctx context.Context) error { return f.record("nolocation") }
func (f *fakeExec) Draft(ctx context.Context) error      { return f.record("draft") }
func (f *fakeExec) Upload(ctx context.Context) error     { return f.record("upload") }
func (f *fakeExec) Feed(ctx context.Context, pages int) error {
	f.lastPages = pages
	return f.record("feed")
}

func (f *fakeExec) History(ctx context.Context, n int) error {
	f.lastHistory = n
	return f.record("history")
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.ReplaceAll(toString(v), "\n", " "))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return ""
	}
}

func TestRunREPL_StoryFlow(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"gallery /tmp/my photo.jpg",
		"fetch users/1/a.jpg",
		"camera",
		"describe",
		"location",
		"nolocation",
		"draft",
		"upload",
		"feed",
		"feed 3",
		"history",
		"history 2",
		"logout",
		"exit",
		"register",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"login", "gallery", "fetch", "camera", "describe", "location",
		"nolocation", "draft", "upload", "feed", "feed", "history", "history", "logout",
	}, exec.calls)
	assert.Equal(t, "/tmp/my photo.jpg", exec.lastPath)
	assert.Equal(t, "users/1/a.jpg", exec.lastKey)
	assert.Equal(t, 3, exec.lastPages)
	assert.Equal(t, 2, exec.lastHistory)
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.NewReader("gallery\nfetch\nfeed many\nhistory -1\nfoobar\n\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: gallery <path>")
	assert.Contains(t, *lines, "Usage: fetch <key>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failOn: "upload"}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("upload\n")))

	assert.Contains(t, *lines, "Error: boom")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("login\n")))
	assert.Empty(t, exec.calls)
}

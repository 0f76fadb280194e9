package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/storyshare/internal/client/client"
	"github.com/dmitrijs2005/storyshare/internal/client/config"
	"github.com/dmitrijs2005/storyshare/internal/client/feed"
	"github.com/dmitrijs2005/storyshare/internal/client/imagesource"
	"github.com/dmitrijs2005/storyshare/internal/client/location"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/uploads"
	"github.com/dmitrijs2005/storyshare/internal/client/services"
	"github.com/dmitrijs2005/storyshare/internal/client/session"
	"github.com/dmitrijs2005/storyshare/internal/client/story"
	"github.com/dmitrijs2005/storyshare/internal/filex"
	"github.com/dmitrijs2005/storyshare/internal/imaging"
	"github.com/dmitrijs2005/storyshare/internal/logging"
)

type feedBrowser interface {
	Browse(ctx context.Context, pages int) ([]feed.Page, error)
}

type tokenSource interface {
	Token(ctx context.Context) (string, bool)
}

type bucketFetcher interface {
	Fetch(ctx context.Context, key string) (string, error)
}

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
	outMu  sync.Mutex

	authService services.AuthService
	feedService feedBrowser
	tokens      tokenSource
	history     uploads.Repository

	draft      *story.Draft
	controller *story.Controller
	settled    chan story.Result
	showFeed   atomic.Bool

	perms   *location.Permissions
	locator location.Provider
	gallery imagesource.Gallery
	camera  *imagesource.Camera
	bucket  bucketFetcher

	userName string
}

// NewApp opens the local database and wires the API client, services and
// the story pipeline.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	workDir, err := filex.EnsureDir(c.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("error preparing work dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	fix, err := c.StaticLocation()
	if err != nil {
		db.Close()
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.APIBaseURL, c.HTTPTimeout, log)
	sessions := session.NewStore(db)
	perms := &location.Permissions{}

	a := &App{
		config:      c,
		log:         log,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		authService: services.NewAuthService(apiClient, sessions, log),
		feedService: services.NewFeedService(feed.NewStream(apiClient, c.FeedPageSize, c.FeedWithLocation), sessions),
		tokens:      sessions,
		history:     uploads.NewSQLiteRepository(db),
		draft:       story.NewDraft(),
		perms:       perms,
		locator:     location.NewGated(perms, location.NewStatic(fix)),
		gallery:     imagesource.Gallery{WorkDir: workDir},
		camera:      imagesource.NewCamera(c.CaptureCommand, workDir),
	}

	if bc := bucketConfig(c); bc.Enabled() {
		b, err := imagesource.NewBucket(ctx, bc, workDir)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.bucket = b
	}

	transform := imaging.NewJPEGTransform(c.ImageMaxBytes, c.ImageMaxDimension, workDir)
	gateway := story.NewUploadGateway(apiClient, log)
	a.attachController(story.NewController(story.NewAssembler(transform), gateway, log))

	return a, nil
}

func bucketConfig(c *config.Config) imagesource.BucketConfig {
	return imagesource.BucketConfig{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}
}

// attachController subscribes the app's renderer to c. Success is reported
// as settled only after the success handler has run.
func (a *App) attachController(c *story.Controller) {
	a.controller = c
	a.settled = make(chan story.Result, 1)

	c.Observe(a.renderResult)
	c.OnSuccess(func(msg string) {
		a.draft.Reset()
		a.showFeed.Store(true)
		a.settle(story.Success(msg))
	})
}

func (a *App) renderResult(r story.Result) {
	switch r.Status {
	case story.StatusLoading:
		a.println("Uploading story...")
	case story.StatusSuccess:
		a.println("Add Story", r.Message)
	default:
		a.println("Add Story", r.Message)
		a.settle(r)
	}
}

func (a *App) settle(r story.Result) {
	select {
	case a.settled <- r:
	default:
	}
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close stops any upload in flight and closes the database.
func (a *App) Close() {
	if a.controller != nil {
		a.controller.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "error closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.tokens.Token(context.Background())
	return ok
}

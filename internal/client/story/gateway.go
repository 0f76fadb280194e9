package story

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/storyshare/internal/logging"
)

// Uploader performs the network call. client.HTTPClient satisfies it.
type Uploader interface {
	AddStory(ctx context.Context, upload *UploadRequest) (string, error)
}

// Gateway submits one assembled request. The returned channel yields Loading,
// then exactly one of Success or Error, and is then closed.
type Gateway interface {
	Submit(ctx context.Context, req *UploadRequest) <-chan Result
}

type UploadGateway struct {
	uploader Uploader
	log      logging.Logger
}

func NewUploadGateway(uploader Uploader, log logging.Logger) *UploadGateway {
	return &UploadGateway{uploader: uploader, log: log}
}

// Submit never retries. The channel is buffered for both values, so the
// upload goroutine finishes even if nobody drains it.
func (g *UploadGateway) Submit(ctx context.Context, req *UploadRequest) <-chan Result {
	out := make(chan Result, 2)
	out <- Loading()

	go func() {
		defer close(out)

		msg, err := g.uploader.AddStory(ctx, req)
		if err != nil {
			g.log.Warn(ctx, "submission failed", "error", err)
			out <- Failure(failureMessage(err))
			return
		}
		if msg == "" {
			msg = "story uploaded"
		}
		out <- Success(msg)
	}()

	return out
}

func failureMessage(err error) string {
	var ne net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "upload cancelled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return "request timed out"
	default:
		return err.Error()
	}
}

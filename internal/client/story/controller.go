package story

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/google/uuid"
)

// Phase is where the controller is in the current attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseUploading
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseUploading:
		return "uploading"
	default:
		return "unknown"
	}
}

type assembler interface {
	Assemble(draft Snapshot, token string) (*UploadRequest, error)
}

// Controller runs at most one submission at a time and republishes its
// states to observers. Observers are called one at a time, in order, from
// the controller's goroutine; they may call TrySubmit but must not call
// Close.
type Controller struct {
	assembler assembler
	gateway   Gateway
	log       logging.Logger

	mu        sync.Mutex
	phase     Phase
	current   *Result
	observers map[int]func(Result)
	nextID    int
	onSuccess []func(message string)
	cancel    context.CancelFunc
	closed    bool

	// deliverMu serialises observer calls across attempts.
	deliverMu sync.Mutex
}

func NewController(a assembler, g Gateway, log logging.Logger) *Controller {
	return &Controller{
		assembler: a,
		gateway:   g,
		log:       log,
		observers: make(map[int]func(Result)),
	}
}

// Observe registers fn for every published Result and returns a function
// that removes it.
func (c *Controller) Observe(fn func(Result)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// OnSuccess registers fn to run after a Success has been delivered to the
// observers, e.g. to switch to the feed.
func (c *Controller) OnSuccess(fn func(message string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSuccess = append(c.onSuccess, fn)
}

// Current returns the last published Result, if any.
func (c *Controller) Current() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Result{}, false
	}
	return *c.current, true
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// TrySubmit starts a submission of draft and returns true, or returns false
// without doing anything if one is already in flight or the controller is
// closed. Assembly and upload run on a background goroutine.
func (c *Controller) TrySubmit(ctx context.Context, draft Snapshot, token string) bool {
	c.mu.Lock()
	if c.closed || c.phase != PhaseIdle {
		c.mu.Unlock()
		return false
	}
	c.phase = PhaseValidating
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(runCtx, cancel, draft, token)
	return true
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, draft Snapshot, token string) {
	defer cancel()

	req, err := c.assembler.Assemble(draft, token)
	if err != nil {
		c.log.Info(ctx, "submission rejected", "reason", err)
		c.publish(Failure(UserMessage(err)))
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseUploading
	c.mu.Unlock()

	if _, ok := logging.RequestIDFrom(ctx); !ok {
		ctx = logging.ContextWithRequestID(ctx, uuid.NewString())
	}

	terminal := false
	for r := range c.gateway.Submit(ctx, req) {
		if terminal {
			continue
		}
		terminal = r.Terminal()
		c.publish(r)
	}

	if !terminal {
		// Gateway gave up without a verdict, usually after Close.
		c.publish(Failure("upload cancelled"))
	}
}

// publish records r and delivers it. A terminal r frees the submission slot
// before observers run, so they may start the next attempt.
func (c *Controller) publish(r Result) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.current = &r
	if r.Terminal() {
		c.phase = PhaseIdle
	}
	observers := make([]func(Result), 0, len(c.observers))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	var onSuccess []func(string)
	if r.Status == StatusSuccess {
		onSuccess = append(onSuccess, c.onSuccess...)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(r)
	}
	for _, fn := range onSuccess {
		fn(r.Message)
	}
}

// Close cancels an in-flight submission and detaches all observers. Nothing
// is delivered once Close has returned.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	c.observers = map[int]func(Result){}
	c.onSuccess = nil
	c.mu.Unlock()

	// Wait out a delivery that started before closed was set.
	c.deliverMu.Lock()
	c.deliverMu.Unlock()
}

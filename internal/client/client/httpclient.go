package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/dmitrijs2005/storyshare/internal/netx"
	"github.com/google/uuid"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// HTTPClient talks to the story REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) error {
	req := models.RegisterRequest{Name: name, Email: email, Password: string(password)}

	var resp models.APIResponse
	if err := c.postJSON(ctx, "/register", req, &resp); err != nil {
		return err
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	req := models.LoginRequest{Email: email, Password: string(password)}

	var resp models.LoginResponse
	if err := c.postJSON(ctx, "/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.LoginResult == nil || resp.LoginResult.Token == "" {
		return nil, fmt.Errorf("%w: login result without token", ErrMalformedResponse)
	}
	return resp.LoginResult, nil
}

func (c *HTTPClient) AddStory(ctx context.Context, upload *models.StoryUpload) (string, error) {
	fields := []netx.Field{
		{
			Name:        "photo",
			Filename:    upload.Photo.Filename,
			ContentType: upload.Photo.ContentType,
			Value:       upload.Photo.Data,
		},
		{Name: "description", ContentType: "text/plain", Value: []byte(upload.Description)},
	}
	if upload.Lat != nil {
		fields = append(fields, netx.Field{Name: "lat", Value: []byte(formatFloat(*upload.Lat))})
	}
	if upload.Lon != nil {
		fields = append(fields, netx.Field{Name: "lon", Value: []byte(formatFloat(*upload.Lon))})
	}

	body, contentType, err := netx.EncodeMultipart(fields)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/stories", body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	requestID, ok := logging.RequestIDFrom(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = logging.ContextWithRequestID(ctx, requestID)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", upload.Authorization)
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With("bytes", len(upload.Photo.Data))
	log.Debug(ctx, "uploading story")

	var resp models.APIResponse
	if err := c.do(req, &resp); err != nil {
		log.Warn(ctx, "story upload failed", "error", err)
		return "", err
	}

	log.Info(ctx, "story uploaded", "message", resp.Message)
	return resp.Message, nil
}

func (c *HTTPClient) ListStories(ctx context.Context, token string, page, size int, withLocation bool) ([]models.Story, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	location := "0"
	if withLocation {
		location = "1"
	}
	q.Set("location", location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stories?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", netx.Bearer(token))

	var resp models.StoriesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.ListStory, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in any, out envelope) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// envelope is implemented by every response type through the embedded
// models.APIResponse.
type envelope interface {
	Envelope() *models.APIResponse
}

// do executes req and decodes the JSON answer into out. Transport failures,
// non-2xx statuses, undecodable bodies and bodies flagged with "error": true
// all come back as errors.
func (c *HTTPClient) do(req *http.Request, out envelope) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return mapTransportError(err)
	}

	decodeErr := json.Unmarshal(body, out)
	env := out.Envelope()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decodeErr == nil {
			msg = env.Message
		}
		return newAPIError(resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}
	if env.Error {
		return newAPIError(resp.StatusCode, env.Message)
	}
	return nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

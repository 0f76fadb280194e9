// Package models defines the story API payloads and the client-side values
// exchanged between the story pipeline, the transport and the CLI.
package models

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point returns c as an orb point (x = lon, y = lat).
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// DistanceTo returns the great-circle distance to other in meters.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	return geo.Distance(c.Point(), other.Point())
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

// Story is a single feed item.
type Story struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	Lat         *float64  `json:"lat"`
	Lon         *float64  `json:"lon"`
}

// Location returns the story coordinates when both are present.
func (s Story) Location() (Coordinates, bool) {
	if s.Lat == nil || s.Lon == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *s.Lat, Lon: *s.Lon}, true
}

// FilePart is a binary multipart field.
type FilePart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoryUpload is a fully assembled, ready-to-send story submission.
type StoryUpload struct {
	Photo         FilePart
	Description   string
	Lat           *float64
	Lon           *float64
	Authorization string
}

// LoginResult is the session issued by the API on login.
type LoginResult struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// APIResponse is the envelope every story API endpoint answers with.
type APIResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Envelope gives decoders access to the common fields of any response type
// embedding APIResponse.
func (r *APIResponse) Envelope() *APIResponse {
	return r
}

type LoginResponse struct {
	APIResponse
	LoginResult *LoginResult `json:"loginResult"`
}

type StoriesResponse struct {
	APIResponse
	ListStory []Story `json:"listStory"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Upload is a story this client submitted successfully, kept locally.
type Upload struct {
	ID          string
	Description string
	ImageName   string
	Lat         *float64
	Lon         *float64
	Message     string
	UploadedAt  time.Time
}

// Package captions is the client of the remote transcription and subtitle
// rendering service.
package captions

import (
	"context"
	"errors"
	"net/http"

	"github.com/julianstephens/hermione/internal/backend"
	"github.com/julianstephens/hermione/internal/models"
)

const (
	previewPath    = "/api/canva/video/preview-subtitles"
	transcribePath = "/api/canva/video/transcribe"
	fontsPath      = "/api/canva/font-styles"
)

// ErrEmptyPayload is returned when a successful response carries no artifact
var ErrEmptyPayload = errors.New("response has no payload")

// PreviewRequest asks for a short subtitled sample of a video
type PreviewRequest struct {
	URL               string
	OriginalVideoPath string
	Settings          models.Settings
}

// TranscribeRequest asks for the full subtitled render of a video
type TranscribeRequest struct {
	URL      string
	Settings models.Settings
}

// Service is the captioning backend
type Service interface {
	Preview(ctx context.Context, req PreviewRequest) (models.Preview, error)
	Transcribe(ctx context.Context, req TranscribeRequest) (models.SubbedVideoArtifact, error)
	Fonts(ctx context.Context) ([]string, error)
}

// Client is the HTTP implementation of Service
type Client struct {
	api             *backend.Client
	previewModel    string
	transcribeModel string
}

func NewClient(api *backend.Client, previewModel, transcribeModel string) *Client {
	return &Client{api: api, previewModel: previewModel, transcribeModel: transcribeModel}
}

// generateBody flattens the settings categories next to the request fields
type generateBody struct {
	URL               string `json:"url"`
	Model             string `json:"model_to_use"`
	OriginalVideoPath string `json:"original_video_path,omitempty"`
	models.Settings
}

type envelope[T any] struct {
	Data *T `json:"data"`
}

func (c *Client) Preview(ctx context.Context, req PreviewRequest) (models.Preview, error) {
	var out envelope[models.Preview]
	err := c.api.JSON(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   previewPath,
		Body: generateBody{
			URL:               req.URL,
			Model:             c.previewModel,
			OriginalVideoPath: req.OriginalVideoPath,
			Settings:          req.Settings,
		},
	}, &out)
	if err != nil {
		return models.Preview{}, err
	}
	if out.Data == nil || out.Data.URL == "" {
		return models.Preview{}, ErrEmptyPayload
	}
	return *out.Data, nil
}

func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (models.SubbedVideoArtifact, error) {
	var out envelope[models.SubbedVideoArtifact]
	err := c.api.JSON(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   transcribePath,
		Body: generateBody{
			URL:      req.URL,
			Model:    c.transcribeModel,
			Settings: req.Settings,
		},
	}, &out)
	if err != nil {
		return models.SubbedVideoArtifact{}, err
	}
	if out.Data == nil || out.Data.URL == "" {
		return models.SubbedVideoArtifact{}, ErrEmptyPayload
	}
	return *out.Data, nil
}

func (c *Client) Fonts(ctx context.Context) ([]string, error) {
	var out struct {
		Fonts []string `json:"fonts"`
	}
	if err := c.api.JSON(ctx, backend.Request{Method: http.MethodGet, Path: fontsPath}, &out); err != nil {
		return nil, err
	}
	return out.Fonts, nil
}

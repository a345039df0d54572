package captions_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julianstephens/hermione/internal/backend"
	"github.com/julianstephens/hermione/internal/captions"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

func newClient(t *testing.T, handler http.HandlerFunc) *captions.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return captions.NewClient(backend.New(srv.URL, time.Second, nil), constants.PreviewModel, constants.TranscribeModel)
}

func TestPreviewSendsFlattenedSettings(t *testing.T) {
	var body map[string]json.RawMessage
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/canva/video/preview-subtitles" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{"text":"hello","url":"https://cdn/p.mp4","thumbnailUrl":"https://cdn/p.png","mimeType":"video/mp4","original_video_path":"/src/v.mp4"}}`))
	})

	settings := models.DefaultSettings()
	got, err := client.Preview(context.Background(), captions.PreviewRequest{
		URL:               "https://cdn/in.mp4",
		OriginalVideoPath: "/src/v.mp4",
		Settings:          settings,
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if got.URL != "https://cdn/p.mp4" || got.Text != "hello" || got.OriginalVideoPath != "/src/v.mp4" {
		t.Errorf("unexpected preview %+v", got)
	}

	for _, key := range []string{"url", "model_to_use", "original_video_path", "chunk_settings", "font_settings", "alignment_settings", "adjust_formatting"} {
		if _, ok := body[key]; !ok {
			t.Errorf("request body missing %q", key)
		}
	}
	var model string
	_ = json.Unmarshal(body["model_to_use"], &model)
	if model != constants.PreviewModel {
		t.Errorf("model_to_use = %q, want %q", model, constants.PreviewModel)
	}
}

func TestTranscribe(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/canva/video/transcribe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["model_to_use"] != constants.TranscribeModel {
			t.Errorf("model_to_use = %v", body["model_to_use"])
		}
		if _, ok := body["original_video_path"]; ok {
			t.Error("transcribe request should omit original_video_path")
		}
		_, _ = w.Write([]byte(`{"data":{"url":"https://cdn/full.mp4","thumbnailUrl":"t","mimeType":"video/mp4","height":1920,"width":1080}}`))
	})

	got, err := client.Transcribe(context.Background(), captions.TranscribeRequest{URL: "https://cdn/in.mp4", Settings: models.DefaultSettings()})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if got.URL != "https://cdn/full.mp4" || got.Height != 1920 || got.Width != 1080 {
		t.Errorf("unexpected artifact %+v", got)
	}
}

func TestEmptyPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null data", `{"data":null}`},
		{"no data", `{}`},
		{"no url", `{"data":{"thumbnailUrl":"t"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			if _, err := client.Preview(context.Background(), captions.PreviewRequest{URL: "u"}); !errors.Is(err, captions.ErrEmptyPayload) {
				t.Errorf("Preview error = %v, want ErrEmptyPayload", err)
			}
			if _, err := client.Transcribe(context.Background(), captions.TranscribeRequest{URL: "u"}); !errors.Is(err, captions.ErrEmptyPayload) {
				t.Errorf("Transcribe error = %v, want ErrEmptyPayload", err)
			}
		})
	}
}

func TestNonOKStatus(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Preview(context.Background(), captions.PreviewRequest{URL: "u"})
	var statusErr *backend.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Preview error = %v, want 500 StatusError", err)
	}
}

func TestFonts(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/canva/font-styles" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"fonts":["KOMTIT","Poppins"]}`))
	})

	fonts, err := client.Fonts(context.Background())
	if err != nil {
		t.Fatalf("Fonts failed: %v", err)
	}
	if len(fonts) != 2 || fonts[0] != "KOMTIT" {
		t.Errorf("Fonts() = %v", fonts)
	}
}

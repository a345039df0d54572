package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/julianstephens/hermione/internal/auth"
	"github.com/julianstephens/hermione/internal/captions"
	"github.com/julianstephens/hermione/internal/constants"
	apperr "github.com/julianstephens/hermione/internal/errors"
	"github.com/julianstephens/hermione/internal/host"
	"github.com/julianstephens/hermione/internal/models"
)

type fakeAuthBackend struct {
	mu     sync.Mutex
	authed bool
	err    error
}

func (f *fakeAuthBackend) set(authed bool) {
	f.mu.Lock()
	f.authed = authed
	f.mu.Unlock()
}

func (f *fakeAuthBackend) Status(context.Context, string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authed, f.err
}

func (f *fakeAuthBackend) RequestOTP(context.Context, string) (auth.Reply, error) {
	return auth.Reply{OK: true}, nil
}

func (f *fakeAuthBackend) ValidateOTP(context.Context, string, string) (auth.Reply, error) {
	return auth.Reply{OK: true}, nil
}

func (f *fakeAuthBackend) RequestAuthentication(context.Context, string, string) (constants.AuthOutcome, error) {
	f.set(true)
	return constants.OutcomeCompleted, nil
}

type fakeDoc struct {
	selection []string
	uploads   []host.UploadRequest
	uploadErr error
}

func (d *fakeDoc) ReadSelection(context.Context) (host.Selection, error) {
	return host.Selection{Refs: d.selection}, nil
}

func (d *fakeDoc) PageContext(context.Context) (host.PageContext, error) {
	return host.PageContext{Width: 1080, Height: 1920, HasDimensions: true}, nil
}

func (d *fakeDoc) TemporaryURL(_ context.Context, ref string) (string, error) {
	return "https://cdn.example.com/" + ref, nil
}

func (d *fakeDoc) UploadAsset(_ context.Context, req host.UploadRequest) (string, error) {
	if d.uploadErr != nil {
		return "", d.uploadErr
	}
	if err := req.Validate(); err != nil {
		return "", err
	}
	d.uploads = append(d.uploads, req)
	return "new-ref", nil
}

func (d *fakeDoc) AddElement(context.Context, string) error { return nil }
func (d *fakeDoc) SaveDraft(context.Context) error          { return nil }

type fakeCaptions struct {
	previews   []captions.PreviewRequest
	previewErr error
	fontCalls  int
}

func (c *fakeCaptions) Preview(_ context.Context, req captions.PreviewRequest) (models.Preview, error) {
	c.previews = append(c.previews, req)
	if c.previewErr != nil {
		return models.Preview{}, c.previewErr
	}
	path := req.OriginalVideoPath
	if path == "" {
		path = "/videos/original.mp4"
	}
	return models.Preview{
		Text:          "hello world",
		VideoArtifact: models.VideoArtifact{URL: req.URL + "#preview", MimeType: constants.MimeMP4, OriginalVideoPath: path},
	}, nil
}

func (c *fakeCaptions) Transcribe(_ context.Context, req captions.TranscribeRequest) (models.SubbedVideoArtifact, error) {
	return models.SubbedVideoArtifact{
		VideoArtifact: models.VideoArtifact{URL: req.URL + "#full", MimeType: constants.MimeMP4},
		Height:        1920,
		Width:         1080,
	}, nil
}

func (c *fakeCaptions) Fonts(context.Context) ([]string, error) {
	c.fontCalls++
	return []string{"KOMTIT", "Poppins"}, nil
}

type fakeLibrary struct {
	saved     []models.Settings
	uploads   []models.UploadRecord
	selection []string
}

func (l *fakeLibrary) ListAssets(context.Context) ([]models.Asset, error) { return nil, nil }

func (l *fakeLibrary) SetSelection(_ context.Context, refs []string) error {
	l.selection = refs
	return nil
}

func (l *fakeLibrary) SaveSettings(_ context.Context, s models.Settings) error {
	l.saved = append(l.saved, s)
	return nil
}

func (l *fakeLibrary) AddUpload(_ context.Context, rec models.UploadRecord) error {
	l.uploads = append(l.uploads, rec)
	return nil
}

type fixture struct {
	c       *Controller
	backend *fakeAuthBackend
	doc     *fakeDoc
	svc     *fakeCaptions
	lib     *fakeLibrary
}

func newFixture(t *testing.T, authed bool) *fixture {
	t.Helper()
	f := &fixture{
		backend: &fakeAuthBackend{authed: authed},
		doc:     &fakeDoc{selection: []string{"video-1"}},
		svc:     &fakeCaptions{},
		lib:     &fakeLibrary{},
	}
	f.c = New(Deps{
		Settings: models.DefaultSettings(),
		Auth:     auth.NewMachine(f.backend, nil),
		Document: f.doc,
		Captions: f.svc,
		Library:  f.lib,
	})
	t.Cleanup(f.c.Teardown)
	return f
}

func TestAuthenticatedOnInitialRedirectsToUpload(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	if !f.c.NeedsAuthCheck() {
		t.Fatal("expected a check before the first status query")
	}
	if got := f.c.CheckAuth(ctx); got != constants.AuthAuthenticated {
		t.Fatalf("CheckAuth() = %s", got)
	}
	if s := f.c.View().Screen; s != constants.ScreenUpload {
		t.Errorf("screen = %s, want upload", s)
	}
	if f.c.NeedsAuthCheck() {
		t.Error("redirect from the check scheduled another check")
	}
}

func TestNotAuthenticatedOnTranscriptionRedirectsToInitial(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.c.CheckAuth(ctx)
	if err := f.c.LoadSelectedVideo(ctx); err != nil {
		t.Fatalf("LoadSelectedVideo failed: %v", err)
	}
	if s := f.c.View().Screen; s != constants.ScreenTranscription {
		t.Fatalf("screen = %s, want transcription", s)
	}
	if !f.c.NeedsAuthCheck() {
		t.Error("screen change did not schedule a status check")
	}

	f.backend.set(false)
	f.c.CheckAuth(ctx)
	if s := f.c.View().Screen; s != constants.ScreenInitial {
		t.Errorf("screen = %s, want initial", s)
	}
}

func TestAuthenticatedPastUploadStays(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.c.CheckAuth(ctx)
	_ = f.c.LoadSelectedVideo(ctx)
	f.c.CheckAuth(ctx)
	if s := f.c.View().Screen; s != constants.ScreenTranscription {
		t.Errorf("screen = %s, want transcription", s)
	}
}

func TestSignInFlowRedirects(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	f.c.CheckAuth(ctx)
	m := f.c.Auth()
	m.StartChallenge()
	m.SetEmail("a@b.co")
	m.SubmitEmail(ctx)
	m.SetOTP("123456")
	m.SubmitOTP(ctx)

	v := f.c.View()
	if v.Auth.State != constants.AuthAuthenticated {
		t.Fatalf("auth state = %s", v.Auth.State)
	}
	if v.Screen != constants.ScreenUpload {
		t.Errorf("screen = %s, want upload", v.Screen)
	}
}

func TestFullFlow(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.c.CheckAuth(ctx)

	if err := f.c.LoadSelectedVideo(ctx); err != nil {
		t.Fatalf("LoadSelectedVideo failed: %v", err)
	}
	v := f.c.View()
	if v.Preview == nil || v.PreviewText != "hello world" {
		t.Fatalf("preview not stored: %+v", v)
	}
	if !v.ShowBack || !v.ShowFooter {
		t.Error("transcription screen should show back button and footer")
	}

	if err := f.c.UpdateSetting(constants.CategoryChunk, constants.KeyMaxWordsPerLine, 3); err != nil {
		t.Fatalf("UpdateSetting failed: %v", err)
	}
	if !f.c.View().Request.HasUnsavedChanges {
		t.Error("edit did not mark unsaved changes")
	}

	if err := f.c.ApplyChanges(ctx); err != nil {
		t.Fatalf("ApplyChanges failed: %v", err)
	}
	if f.c.View().Request.HasUnsavedChanges {
		t.Error("ApplyChanges left unsaved changes")
	}
	last := f.svc.previews[len(f.svc.previews)-1]
	if last.OriginalVideoPath != "/videos/original.mp4" {
		t.Errorf("apply changes sent original path %q", last.OriginalVideoPath)
	}
	if len(f.lib.saved) != 1 || f.lib.saved[0].Chunk.MaxWordsPerLine != 3 {
		t.Errorf("profile not saved: %+v", f.lib.saved)
	}

	if err := f.c.Generate(ctx); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	v = f.c.View()
	if v.Screen != constants.ScreenUploadConfirmation || v.Subbed == nil {
		t.Fatalf("after Generate: screen %s subbed %v", v.Screen, v.Subbed)
	}
	if v.Subbed.URL != "https://cdn.example.com/video-1#full" {
		t.Errorf("generated from %q, want the loaded video", v.Subbed.URL)
	}

	if err := f.c.Upload(ctx); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	v = f.c.View()
	if !v.Request.SuccessfulUpload || v.Request.Message != constants.MsgUploadStarted {
		t.Errorf("unexpected request state %+v", v.Request)
	}
	if len(f.lib.uploads) != 1 || f.lib.uploads[0].Preset != "alex_hormozi" {
		t.Errorf("upload not recorded: %+v", f.lib.uploads)
	}

	f.c.AddAnotherVideo()
	v = f.c.View()
	if v.Screen != constants.ScreenUpload || v.Preview != nil || v.Subbed != nil || v.Request.SuccessfulUpload {
		t.Errorf("AddAnotherVideo left %+v", v)
	}
}

func TestApplyChangesFailure(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.c.CheckAuth(ctx)
	if err := f.c.LoadSelectedVideo(ctx); err != nil {
		t.Fatalf("LoadSelectedVideo failed: %v", err)
	}
	_ = f.c.UpdateSetting(constants.CategoryFont, constants.KeyFontSize, 30)

	f.svc.previewErr = errors.New("bad gateway")
	if err := f.c.ApplyChanges(ctx); err == nil {
		t.Fatal("expected error")
	}
	v := f.c.View()
	if v.Request.Error != constants.MsgFailedSubtitles {
		t.Errorf("error = %q", v.Request.Error)
	}
	if !v.Request.HasUnsavedChanges {
		t.Error("failed apply cleared unsaved changes")
	}
	if len(f.lib.saved) != 0 {
		t.Error("failed apply saved the profile")
	}
}

func TestApplyChangesWithoutPreview(t *testing.T) {
	f := newFixture(t, true)
	err := f.c.ApplyChanges(context.Background())
	if !errors.Is(err, apperr.Precondition) {
		t.Errorf("error = %v, want Precondition", err)
	}
	if len(f.svc.previews) != 0 {
		t.Error("preview requested without a loaded video")
	}
	if got := f.c.View().Request.Error; got != constants.MsgMissingVideo {
		t.Errorf("request error = %q, want %q", got, constants.MsgMissingVideo)
	}
}

func TestGoBackClearsFeedback(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.c.CheckAuth(ctx)
	_ = f.c.LoadSelectedVideo(ctx)
	f.svc.previewErr = errors.New("boom")
	_ = f.c.ApplyChanges(ctx)

	if got := f.c.GoBack(); got != constants.ScreenUpload {
		t.Errorf("GoBack() = %s, want upload", got)
	}
	if v := f.c.View(); v.Request.Error != "" || v.Request.Message != "" {
		t.Errorf("GoBack left feedback %+v", v.Request)
	}
}

func TestUploadWithoutRenderedVideo(t *testing.T) {
	f := newFixture(t, true)
	err := f.c.Upload(context.Background())
	if apperr.UserMessage(err, "") != constants.MsgMissingVideo {
		t.Errorf("error = %v, want missing video", err)
	}
	if len(f.doc.uploads) != 0 {
		t.Error("upload collaborator was called")
	}
}

func renderVideo(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	f.c.CheckAuth(ctx)
	if err := f.c.LoadSelectedVideo(ctx); err != nil {
		t.Fatalf("LoadSelectedVideo failed: %v", err)
	}
	if err := f.c.Generate(ctx); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func TestUploadConsumesRenderedVideo(t *testing.T) {
	f := newFixture(t, true)
	renderVideo(t, f)
	ctx := context.Background()

	if err := f.c.Upload(ctx); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if v := f.c.View(); v.Subbed != nil {
		t.Error("rendered video kept after upload")
	}

	err := f.c.Upload(ctx)
	if !errors.Is(err, apperr.Precondition) || apperr.UserMessage(err, "") != constants.MsgMissingVideo {
		t.Errorf("second Upload error = %v, want missing video precondition", err)
	}
	if len(f.doc.uploads) != 1 {
		t.Errorf("expected 1 upload, got %d", len(f.doc.uploads))
	}
	if len(f.lib.uploads) != 1 {
		t.Errorf("expected 1 recorded upload, got %d", len(f.lib.uploads))
	}
}

func TestFailedUploadKeepsRenderedVideo(t *testing.T) {
	f := newFixture(t, true)
	renderVideo(t, f)
	ctx := context.Background()

	f.doc.uploadErr = errors.New("quota exceeded")
	if err := f.c.Upload(ctx); err == nil {
		t.Fatal("expected upload error")
	}
	if v := f.c.View(); v.Subbed == nil || v.Request.Error != constants.MsgUploadFailed {
		t.Fatalf("after failed upload: subbed %v error %q", v.Subbed, v.Request.Error)
	}

	f.doc.uploadErr = nil
	if err := f.c.Upload(ctx); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(f.doc.uploads) != 1 {
		t.Errorf("expected 1 upload after retry, got %d", len(f.doc.uploads))
	}
}

func TestAddAssetSetsHint(t *testing.T) {
	f := newFixture(t, true)
	ref, err := f.c.AddAsset(context.Background(), "https://cdn.example.com/new.mp4", constants.MimeMP4)
	if err != nil {
		t.Fatalf("AddAsset failed: %v", err)
	}
	if ref != "new-ref" {
		t.Errorf("ref = %q", ref)
	}
	if msg := f.c.View().Request.Message; msg != constants.MsgAssetAdded {
		t.Errorf("message = %q", msg)
	}
	if err := f.c.Select(context.Background(), ref); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(f.lib.selection) != 1 || f.lib.selection[0] != ref {
		t.Errorf("selection = %v", f.lib.selection)
	}
}

func TestFontsCached(t *testing.T) {
	f := newFixture(t, true)
	for i := 0; i < 2; i++ {
		fonts, err := f.c.Fonts(context.Background())
		if err != nil || len(fonts) != 2 {
			t.Fatalf("Fonts() = %v, %v", fonts, err)
		}
	}
	if f.svc.fontCalls != 1 {
		t.Errorf("fonts fetched %d times, want 1", f.svc.fontCalls)
	}
}

func TestCancelClearsUnsavedChanges(t *testing.T) {
	f := newFixture(t, true)
	_ = f.c.ApplyPreset("tremor")
	if !f.c.View().Request.HasUnsavedChanges {
		t.Fatal("preset did not mark unsaved changes")
	}
	f.c.Cancel()
	if f.c.View().Request.HasUnsavedChanges {
		t.Error("Cancel left unsaved changes")
	}
}

func TestResetSettings(t *testing.T) {
	f := newFixture(t, true)
	if err := f.c.UpdateSetting(constants.CategoryFont, constants.KeyFontSize, 48); err != nil {
		t.Fatalf("UpdateSetting failed: %v", err)
	}
	f.c.settings.MarkClean()

	got := f.c.ResetSettings()
	if got != models.DefaultSettings() || f.c.Settings() != models.DefaultSettings() {
		t.Errorf("ResetSettings() = %+v, want defaults", got)
	}
	if !f.c.View().Request.HasUnsavedChanges {
		t.Error("reset should leave changes to apply")
	}
}

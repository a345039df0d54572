// Package app is the composition root of the editor. The Controller owns
// every core component and funnels all state changes through named
// operations, which the presentation layer calls.
package app

import (
	"context"
	"sync"

	"github.com/julianstephens/hermione/internal/auth"
	"github.com/julianstephens/hermione/internal/captions"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/host"
	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/models"
	"github.com/julianstephens/hermione/internal/navigator"
	"github.com/julianstephens/hermione/internal/netmon"
	"github.com/julianstephens/hermione/internal/orchestrator"
	"github.com/julianstephens/hermione/internal/settings"
)

// Library is the local record of assets, the saved settings profile and
// upload history
type Library interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	SetSelection(ctx context.Context, refs []string) error
	SaveSettings(ctx context.Context, s models.Settings) error
	AddUpload(ctx context.Context, rec models.UploadRecord) error
}

// Deps are the collaborators of the controller
type Deps struct {
	Settings models.Settings
	Auth     *auth.Machine
	Document host.Document
	Captions captions.Service
	Monitor  *netmon.Monitor
	Library  Library
}

// Controller is the editor's single source of truth
type Controller struct {
	settings *settings.Store
	auth     *auth.Machine
	nav      *navigator.Navigator
	orch     *orchestrator.Orchestrator
	monitor  *netmon.Monitor
	doc      host.Document
	captions captions.Service
	library  Library

	mu          sync.Mutex
	preview     *models.VideoArtifact
	previewText string
	subbed      *models.SubbedVideoArtifact
	selectedRef string
	checked     bool
	checkedOn   constants.Screen
	fonts       []string
}

func New(deps Deps) *Controller {
	c := &Controller{
		settings: settings.New(deps.Settings),
		auth:     deps.Auth,
		nav:      navigator.New(),
		orch:     orchestrator.New(deps.Document, deps.Captions),
		monitor:  deps.Monitor,
		doc:      deps.Document,
		captions: deps.Captions,
		library:  deps.Library,
	}
	c.auth.OnTransition(c.onAuthTransition)
	return c
}

// Start launches the background network monitor
func (c *Controller) Start(ctx context.Context) {
	if c.monitor != nil {
		c.monitor.Start(ctx)
	}
}

// Teardown stops the sampler, detaches listeners and drops any in-flight
// operation
func (c *Controller) Teardown() {
	if c.monitor != nil {
		c.monitor.Stop()
		c.monitor.OnChange(nil)
	}
	c.auth.OnTransition(nil)
	c.orch.Cancel()
}

// OnNetworkChange registers fn for connection status changes. fn receives
// the banner text, empty when the connection is fine.
func (c *Controller) OnNetworkChange(fn func(banner string)) {
	if c.monitor == nil {
		return
	}
	if fn == nil {
		c.monitor.OnChange(nil)
		return
	}
	c.monitor.OnChange(func(netmon.Status) {
		fn(c.monitor.Banner())
	})
}

// onAuthTransition redirects the screen for the new auth state. A redirect
// counts as checked, so it does not schedule another status check.
func (c *Controller) onAuthTransition(s models.AuthSession) {
	var target constants.Screen
	switch s.State {
	case constants.AuthAuthenticated:
		if c.nav.Index() >= constants.ScreenUpload.Index() {
			return
		}
		target = constants.ScreenUpload
	case constants.AuthNotAuthenticated:
		if c.nav.Current() == constants.ScreenInitial {
			return
		}
		target = constants.ScreenInitial
	default:
		return
	}

	if c.nav.AdvanceTo(target) {
		logger.Debug("auth redirect", "state", s.State, "screen", target)
		c.mu.Lock()
		c.checkedOn = target
		c.mu.Unlock()
	}
}

// NeedsAuthCheck reports whether the screen changed since the last status
// check
func (c *Controller) NeedsAuthCheck() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.checked || c.checkedOn != c.nav.Current()
}

// CheckAuth re-queries the authentication status; transitions redirect the
// screen
func (c *Controller) CheckAuth(ctx context.Context) constants.AuthState {
	c.mu.Lock()
	c.checked = true
	c.checkedOn = c.nav.Current()
	c.mu.Unlock()
	return c.auth.Check(ctx)
}

// Auth exposes the sign-in state machine to the presentation layer
func (c *Controller) Auth() *auth.Machine {
	return c.auth
}

// GoBack moves one screen back and clears the pending error and message
func (c *Controller) GoBack() constants.Screen {
	c.orch.ClearFeedback()
	return c.nav.GoBack()
}

// Dismiss closes the error alert
func (c *Controller) Dismiss() {
	c.orch.Dismiss()
}

// Cancel drops the in-flight operation and clears the unsaved-changes flag.
// It reports false when the operation had already committed its result.
func (c *Controller) Cancel() bool {
	if !c.orch.Cancel() {
		return false
	}
	c.settings.MarkClean()
	return true
}

// UpdateSetting merges one settings key
func (c *Controller) UpdateSetting(category constants.Category, key string, value any) error {
	_, err := c.settings.Merge(category, key, value)
	return err
}

// UpdateFormatting sets the formatting toggles to exactly enabled
func (c *Controller) UpdateFormatting(enabled []string) {
	c.settings.MergeFormatting(enabled)
}

// ApplyPreset selects a preset from the catalog
func (c *Controller) ApplyPreset(id string) error {
	_, err := c.settings.ApplyPreset(id)
	return err
}

// ResetSettings puts every setting back to its default. The change needs
// an apply like any other edit.
func (c *Controller) ResetSettings() models.Settings {
	return c.settings.Replace(models.DefaultSettings())
}

// Settings returns the current settings snapshot
func (c *Controller) Settings() models.Settings {
	return c.settings.Snapshot()
}

func (c *Controller) currentPreview() *models.VideoArtifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.preview == nil {
		return nil
	}
	p := *c.preview
	return &p
}

// LoadSelectedVideo previews the selected video and moves to the
// transcription screen
func (c *Controller) LoadSelectedVideo(ctx context.Context) error {
	_, err := c.orch.LoadSelectedVideo(ctx, c.settings.Snapshot(), c.currentPreview(), func(l orchestrator.Loaded) {
		a := l.Preview.Artifact()
		c.mu.Lock()
		c.preview = &a
		c.previewText = l.Preview.Text
		c.selectedRef = l.Ref
		c.mu.Unlock()
		c.nav.AdvanceTo(constants.ScreenTranscription)
	})
	return err
}

// ApplyChanges re-renders the preview with the edited settings and saves
// them as the profile
func (c *Controller) ApplyChanges(ctx context.Context) error {
	var url string
	prev := c.currentPreview()
	if prev != nil {
		url = prev.URL
	}

	snap := c.settings.Snapshot()
	p, err := c.orch.PreviewGeneration(ctx, url, snap, prev)
	if err != nil {
		return err
	}

	a := p.Artifact()
	if a.OriginalVideoPath == "" {
		a.OriginalVideoPath = prev.OriginalVideoPath
	}
	c.mu.Lock()
	c.preview = &a
	c.previewText = p.Text
	c.mu.Unlock()

	if c.settings.Snapshot() == snap {
		c.settings.MarkClean()
	}
	c.saveProfile(ctx, snap)
	return nil
}

// Generate renders the full subtitled video and moves to the confirmation
// screen
func (c *Controller) Generate(ctx context.Context) error {
	c.mu.Lock()
	ref := c.selectedRef
	c.mu.Unlock()

	snap := c.settings.Snapshot()
	_, err := c.orch.FullGeneration(ctx, ref, snap, func(a models.SubbedVideoArtifact) {
		c.mu.Lock()
		c.subbed = &a
		c.mu.Unlock()
		c.nav.AdvanceTo(constants.ScreenUploadConfirmation)
		c.settings.MarkClean()
	})
	if err != nil {
		return err
	}
	c.saveProfile(ctx, snap)
	return nil
}

// Upload adds the rendered video to the design and records it in the
// upload history
func (c *Controller) Upload(ctx context.Context) error {
	c.mu.Lock()
	var subbed *models.SubbedVideoArtifact
	if c.subbed != nil {
		s := *c.subbed
		subbed = &s
	}
	c.mu.Unlock()

	rec, err := c.orch.HostUpload(ctx, subbed)
	if err != nil {
		return err
	}
	// the rendered video is consumed; a failed upload keeps it for a retry
	c.mu.Lock()
	c.subbed = nil
	c.mu.Unlock()

	if c.library != nil {
		rec.Preset = c.settings.Snapshot().Font.Preset
		if err := c.library.AddUpload(ctx, rec); err != nil {
			logger.Warn("failed to record upload", "error", err)
		}
	}
	return nil
}

// AddAnotherVideo resets the flow after a successful upload
func (c *Controller) AddAnotherVideo() {
	c.orch.ResetUpload()
	c.mu.Lock()
	c.preview = nil
	c.previewText = ""
	c.subbed = nil
	c.selectedRef = ""
	c.mu.Unlock()
	c.nav.AdvanceTo(constants.ScreenUpload)
}

// AddAsset registers a video in the design so it can be selected
func (c *Controller) AddAsset(ctx context.Context, url string, mime constants.MimeType) (string, error) {
	ref, err := c.doc.UploadAsset(ctx, host.UploadRequest{
		Type:         constants.AssetVideo,
		URL:          url,
		ThumbnailURL: constants.PlaceholderThumbnail,
		MimeType:     mime,
	})
	if err != nil {
		return "", err
	}
	c.orch.SetMessage(constants.MsgAssetAdded)
	return ref, nil
}

// Assets lists the videos in the design
func (c *Controller) Assets(ctx context.Context) ([]models.Asset, error) {
	if c.library == nil {
		return nil, nil
	}
	return c.library.ListAssets(ctx)
}

// Select makes ref the current selection
func (c *Controller) Select(ctx context.Context, ref string) error {
	if c.library == nil {
		return nil
	}
	return c.library.SetSelection(ctx, []string{ref})
}

// Fonts returns the font catalog, fetching it once
func (c *Controller) Fonts(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	cached := c.fonts
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	fonts, err := c.captions.Fonts(ctx)
	if err != nil {
		logger.Warn("failed to fetch fonts", "error", err)
		return nil, err
	}
	c.mu.Lock()
	c.fonts = fonts
	c.mu.Unlock()
	return fonts, nil
}

func (c *Controller) saveProfile(ctx context.Context, s models.Settings) {
	if c.library == nil {
		return
	}
	if err := c.library.SaveSettings(ctx, s); err != nil {
		logger.Warn("failed to save settings profile", "error", err)
	}
}

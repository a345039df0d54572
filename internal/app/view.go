package app

import (
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

// View is everything the presentation layer renders
type View struct {
	Screen      constants.Screen
	Auth        models.AuthSession
	Request     models.RequestState
	Settings    models.Settings
	Preview     *models.VideoArtifact
	PreviewText string
	Subbed      *models.SubbedVideoArtifact
	Banner      string
	ShowBack    bool
	ShowFooter  bool
}

// View returns a consistent snapshot of the editor
func (c *Controller) View() View {
	v := View{
		Screen:     c.nav.Current(),
		Auth:       c.auth.Session(),
		Request:    c.orch.State(),
		Settings:   c.settings.Snapshot(),
		ShowBack:   c.nav.ShowBackButton(),
		ShowFooter: c.nav.ShowFooter(),
	}
	v.Request.HasUnsavedChanges = c.settings.Dirty()
	if c.monitor != nil {
		v.Banner = c.monitor.Banner()
	}

	c.mu.Lock()
	if c.preview != nil {
		p := *c.preview
		v.Preview = &p
	}
	if c.subbed != nil {
		s := *c.subbed
		v.Subbed = &s
	}
	v.PreviewText = c.previewText
	c.mu.Unlock()
	return v
}

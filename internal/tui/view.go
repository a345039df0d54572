package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hermione/internal/app"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/tui/state"
)

var screenTitles = map[constants.Screen]string{
	constants.ScreenInitial:            "Welcome",
	constants.ScreenUpload:             "Select video",
	constants.ScreenTranscription:      "Customize",
	constants.ScreenUploadConfirmation: "Add to design",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.ctrl.View()

	var content string
	if m.form != nil {
		content = m.viewForm()
	} else {
		switch v.Screen {
		case constants.ScreenInitial:
			content = m.viewInitial(v)
		case constants.ScreenUpload:
			content = m.viewUpload()
		case constants.ScreenTranscription:
			content = m.viewTranscription(v)
		case constants.ScreenUploadConfirmation:
			content = m.viewUploadConfirmation(v)
		}
	}

	parts := []string{m.viewTabs(v)}
	if m.banner != "" {
		parts = append(parts, bannerStyle.Render(m.banner))
	}
	if alert := m.viewAlert(v); alert != "" {
		parts = append(parts, alert)
	}
	parts = append(parts, docStyle.Render(content))
	if v.ShowFooter {
		parts = append(parts, footerStyle.Render(constants.Attribution))
	}
	if m.form == nil {
		parts = append(parts, m.help.View(m))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs(v app.View) string {
	tabs := []string{titleStyle.Render(constants.DisplayName)}
	for _, s := range constants.Screens {
		if s == v.Screen {
			tabs = append(tabs, activeTabStyle.Render(screenTitles[s]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(screenTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewAlert(v app.View) string {
	switch {
	case v.Request.IsLoading || v.Request.IsPreviewLoading:
		label := "Working..."
		if v.Request.IsPreviewLoading {
			label = "Generating preview..."
		}
		return fmt.Sprintf("%s %s", m.spinner.View(), label)
	case m.authPending:
		return fmt.Sprintf("%s %s", m.spinner.View(), "Contacting the server...")
	case v.Request.Error != "":
		return dangerStyle.Render("✗ " + v.Request.Error)
	case v.Request.Message != "":
		return messageStyle.Render(v.Request.Message)
	}
	return ""
}

func (m Model) viewForm() string {
	var title string
	switch m.mode {
	case state.ModeEmail, state.ModeOTP:
		title = "Sign in"
	case state.ModePreset:
		title = "Choose a preset"
	case state.ModeCustomize:
		title = "Customize subtitles"
	case state.ModeAddAsset:
		title = "Add a video"
	}

	parts := []string{titleStyle.Render(title), m.form.View()}
	if m.formError != "" {
		parts = append(parts, dangerStyle.Render(m.formError))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewInitial(v app.View) string {
	lines := []string{
		titleStyle.Render("Add subtitles to your videos"),
		"",
	}
	switch v.Auth.State {
	case constants.AuthChecking:
		lines = append(lines, m.spinner.View()+" Checking your session...")
	case constants.AuthError:
		lines = append(lines, warningStyle.Render("We could not verify your session."), "Press enter to sign in again.")
	default:
		lines = append(lines, "Press enter to sign in with your email.")
	}
	if v.Auth.Email != "" {
		lines = append(lines, mutedStyle.Render("Last used: "+v.Auth.Email))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewUpload() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render("Select a video in the design, then press enter to load it."),
		m.assets.View(),
	)
}

func (m Model) viewTranscription(v app.View) string {
	var preview string
	if v.Preview == nil {
		preview = mutedStyle.Render("No preview yet.")
	} else {
		text := v.PreviewText
		if strings.TrimSpace(text) == "" {
			text = mutedStyle.Render("(no transcript)")
		}
		preview = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Preview"),
			v.Preview.URL,
			"",
			text,
		)
	}

	width := m.width/2 - 4
	if width < 20 {
		width = 40
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		previewStyle.Width(width).Render(preview),
		lipgloss.NewStyle().PaddingLeft(2).Render(m.settingsPanel.View()),
	)
}

func (m Model) viewUploadConfirmation(v app.View) string {
	if v.Request.SuccessfulUpload {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Your video was added to the design"),
			"",
			"Press 'n' to add captions to another video.",
		)
	}
	if v.Subbed == nil {
		return mutedStyle.Render(constants.MsgMissingVideo)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Your video is ready"),
		v.Subbed.URL,
		mutedStyle.Render(fmt.Sprintf("%dx%d %s", v.Subbed.Width, v.Subbed.Height, v.Subbed.MimeType)),
		"",
		"Press 'u' to add it to the design.",
	)
}

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hermione/internal/app"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/logger"
	"github.com/julianstephens/hermione/internal/models"
	"github.com/julianstephens/hermione/internal/tui/handlers"
	"github.com/julianstephens/hermione/internal/tui/state"
)

type authCheckedMsg struct {
	state constants.AuthState
}

type authStepMsg struct {
	session models.AuthSession
}

type opDoneMsg struct {
	action handlers.Action
	err    error
}

type assetsMsg struct {
	assets []models.Asset
	err    error
}

type fontsMsg struct {
	fonts []string
	err   error
}

type networkMsg struct {
	banner string
}

func checkAuth(ctx context.Context, ctrl *app.Controller) tea.Cmd {
	return func() tea.Msg {
		return authCheckedMsg{state: ctrl.CheckAuth(ctx)}
	}
}

func (m Model) refreshAssets() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		list, err := ctrl.Assets(ctx)
		return assetsMsg{assets: list, err: err}
	}
}

func (m Model) run(action handlers.Action, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{action: action, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.assets.SetSize(msg.Width-4, msg.Height-10)
		m.settingsPanel.SetSize(msg.Width/2-4, msg.Height-10)
		if m.form != nil {
			cmds = append(cmds, m.updateForm(msg))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case networkMsg:
		m.banner = msg.banner

	case authCheckedMsg:
		m.checking = false
		if msg.state == constants.AuthAuthenticated {
			cmds = append(cmds, m.refreshAssets())
		}

	case authStepMsg:
		m.authPending = false
		cmds = append(cmds, m.openAuthStep(msg.session))

	case assetsMsg:
		if msg.err != nil {
			logger.Warn("failed to list assets", "error", msg.err)
			break
		}
		m.assets.SetAssets(msg.assets)

	case fontsMsg:
		m.fonts = msg.fonts
		m.customizeForm = state.NewCustomizeForm(m.ctrl.Settings())
		m.form = handlers.NewCustomizeForm(m.customizeForm, m.fonts)
		m.mode = state.ModeCustomize
		cmds = append(cmds, m.form.Init())

	case opDoneMsg:
		if msg.err != nil {
			logger.Debug("operation finished with error", "action", msg.action, "error", msg.err)
		}
		switch msg.action {
		case handlers.ActionAddAsset, handlers.ActionAddAnother:
			cmds = append(cmds, m.refreshAssets())
		}

	default:
		if m.form != nil {
			cmds = append(cmds, m.updateForm(msg))
		} else if key, ok := msg.(tea.KeyMsg); ok {
			cmds = append(cmds, m.handleKey(key))
		} else if m.ctrl.View().Screen == constants.ScreenUpload {
			var cmd tea.Cmd
			m.assets, cmd = m.assets.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	v := m.ctrl.View()
	m.settingsPanel.SetSettings(v.Settings, v.Request.HasUnsavedChanges)

	if !m.checking && m.ctrl.NeedsAuthCheck() {
		m.checking = true
		cmds = append(cmds, checkAuth(m.ctx, m.ctrl))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctrl := m.ctrl
	v := ctrl.View()

	action := handlers.Resolve(m.keys, v, msg)
	if m.authPending && action != handlers.ActionQuit {
		return nil
	}

	switch action {
	case handlers.ActionQuit:
		m.quitting = true
		return tea.Quit
	case handlers.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case handlers.ActionBack:
		ctrl.GoBack()
	case handlers.ActionDismiss:
		ctrl.Dismiss()
	case handlers.ActionSignIn:
		ctrl.Auth().StartChallenge()
		return m.openAuthStep(ctrl.Auth().Session())
	case handlers.ActionSignOut:
		ctrl.Auth().SignOut()
	case handlers.ActionLoad:
		ref := ""
		if a, ok := m.assets.Selected(); ok {
			ref = a.Ref
		}
		return m.run(handlers.ActionLoad, func(ctx context.Context) error {
			if ref != "" {
				if err := ctrl.Select(ctx, ref); err != nil {
					return err
				}
			}
			return ctrl.LoadSelectedVideo(ctx)
		})
	case handlers.ActionAddAsset:
		m.assetForm = &state.AssetFormModel{MimeType: constants.MimeMP4}
		m.form = handlers.NewAssetForm(m.assetForm)
		m.mode = state.ModeAddAsset
		return m.form.Init()
	case handlers.ActionRefresh:
		return m.refreshAssets()
	case handlers.ActionPresets:
		m.presetForm = &state.PresetFormModel{Preset: v.Settings.Font.Preset}
		m.form = handlers.NewPresetForm(m.presetForm)
		m.mode = state.ModePreset
		return m.form.Init()
	case handlers.ActionCustomize:
		if m.fonts != nil {
			return func() tea.Msg { return fontsMsg{fonts: m.fonts} }
		}
		ctx := m.ctx
		return func() tea.Msg {
			fonts, err := ctrl.Fonts(ctx)
			return fontsMsg{fonts: fonts, err: err}
		}
	case handlers.ActionDefaults:
		ctrl.ResetSettings()
	case handlers.ActionApply:
		return m.run(handlers.ActionApply, ctrl.ApplyChanges)
	case handlers.ActionGenerate:
		return m.run(handlers.ActionGenerate, ctrl.Generate)
	case handlers.ActionCancel:
		ctrl.Cancel()
	case handlers.ActionUpload:
		return m.run(handlers.ActionUpload, ctrl.Upload)
	case handlers.ActionAddAnother:
		ctrl.AddAnotherVideo()
		return func() tea.Msg { return opDoneMsg{action: handlers.ActionAddAnother} }
	}
	return nil
}

// openAuthStep shows the form for the session's challenge step
func (m *Model) openAuthStep(s models.AuthSession) tea.Cmd {
	switch s.Step {
	case constants.StepEmail:
		m.emailForm = &state.EmailFormModel{Email: s.Email}
		m.form = handlers.NewEmailForm(m.emailForm, s.Error)
		m.mode = state.ModeEmail
	case constants.StepOTP:
		m.otpForm = &state.OTPFormModel{}
		m.form = handlers.NewOTPForm(m.otpForm, s.Email, s.Error)
		m.mode = state.ModeOTP
	default:
		m.closeForm()
		return nil
	}
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = state.ModeBrowse
	m.formError = ""
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m.abortForm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.completeForm())
	case huh.StateAborted:
		return tea.Batch(cmd, m.abortForm())
	}
	return cmd
}

func (m *Model) abortForm() tea.Cmd {
	auth := m.ctrl.Auth()
	switch m.mode {
	case state.ModeOTP:
		auth.Back()
		m.checking = true
		return tea.Batch(m.openAuthStep(auth.Session()), checkAuth(m.ctx, m.ctrl))
	case state.ModeEmail:
		auth.SignOut()
	}
	m.closeForm()
	return nil
}

func (m *Model) completeForm() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl

	switch m.mode {
	case state.ModeEmail:
		ctrl.Auth().SetEmail(m.emailForm.Email)
		m.authPending = true
		m.form = nil
		return func() tea.Msg {
			return authStepMsg{session: ctrl.Auth().SubmitEmail(ctx)}
		}

	case state.ModeOTP:
		ctrl.Auth().SetOTP(m.otpForm.OTP)
		m.authPending = true
		m.form = nil
		return func() tea.Msg {
			return authStepMsg{session: ctrl.Auth().SubmitOTP(ctx)}
		}

	case state.ModePreset:
		if err := ctrl.ApplyPreset(m.presetForm.Preset); err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return nil
		}

	case state.ModeCustomize:
		current := ctrl.Settings()
		changes, err := m.customizeForm.Changes(current)
		if err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return nil
		}
		for _, c := range changes {
			if err := ctrl.UpdateSetting(c.Category, c.Key, c.Value); err != nil {
				m.formError = err.Error()
				m.form.State = huh.StateNormal
				return nil
			}
		}
		if m.customizeForm.FormattingChanged(current) {
			ctrl.UpdateFormatting(m.customizeForm.Formatting)
		}

	case state.ModeAddAsset:
		fm := *m.assetForm
		m.closeForm()
		return m.run(handlers.ActionAddAsset, func(ctx context.Context) error {
			_, err := ctrl.AddAsset(ctx, strings.TrimSpace(fm.URL), fm.MimeType)
			return err
		})
	}

	m.closeForm()
	return nil
}

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hermione/internal/app"
	"github.com/julianstephens/hermione/internal/tui/components/assets"
	"github.com/julianstephens/hermione/internal/tui/components/settings"
	"github.com/julianstephens/hermione/internal/tui/handlers"
	"github.com/julianstephens/hermione/internal/tui/state"
)

type Model struct {
	ctx           context.Context
	ctrl          *app.Controller
	mode          state.Mode
	keys          handlers.KeyMap
	help          help.Model
	spinner       spinner.Model
	assets        assets.Model
	settingsPanel settings.Model
	form          *huh.Form
	emailForm     *state.EmailFormModel
	otpForm       *state.OTPFormModel
	presetForm    *state.PresetFormModel
	customizeForm *state.CustomizeFormModel
	assetForm     *state.AssetFormModel
	fonts         []string
	banner        string
	checking      bool
	authPending   bool
	quitting      bool
	width         int
	height        int
	formError     string // Error message to display for form operations
}

func NewModel(ctx context.Context, ctrl *app.Controller) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	v := ctrl.View()
	return Model{
		ctx:           ctx,
		ctrl:          ctrl,
		mode:          state.ModeBrowse,
		keys:          handlers.DefaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		assets:        assets.New(nil, 0, 0),
		settingsPanel: settings.New(v.Settings, 0, 0),
		banner:        v.Banner,
		checking:      true,
	}
}

func (m Model) ShortHelp() []key.Binding {
	return handlers.Bindings(m.keys, m.ctrl.View())
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, checkAuth(m.ctx, m.ctrl), m.refreshAssets())
}

// Run starts the interactive editor and blocks until it exits
func Run(ctx context.Context, ctrl *app.Controller) error {
	p := tea.NewProgram(NewModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	ctrl.OnNetworkChange(func(banner string) {
		p.Send(networkMsg{banner: banner})
	})
	defer ctrl.OnNetworkChange(nil)

	_, err := p.Run()
	return err
}

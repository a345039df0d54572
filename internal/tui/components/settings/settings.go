package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hermione/internal/models"
)

type Model struct {
	settings models.Settings
	dirty    bool
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginBottom(1)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

func New(settings models.Settings, width, height int) Model {
	return Model{settings: settings, width: width, height: height}
}

func (m *Model) SetSettings(settings models.Settings, dirty bool) {
	m.settings = settings
	m.dirty = dirty
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func presetName(id string) string {
	if p, ok := models.LookupPreset(id); ok {
		return p.Name
	}
	return id
}

func (m Model) View() string {
	s := m.settings
	var sections []string

	sections = append(sections, sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Font"),
		row("Preset:", presetName(s.Font.Preset)),
		row("Font:", s.Font.FontName),
		row("Size:", fmt.Sprintf("%d", s.Font.FontSize)),
		row("Color:", s.Font.FontColor),
		row("Highlight:", s.Font.HighlightColor),
	)))

	sections = append(sections, sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Layout"),
		row("Words per line:", fmt.Sprintf("%d", s.Chunk.MaxWordsPerLine)),
		row("Chars per line:", fmt.Sprintf("%d", s.Chunk.MaxCharsPerLine)),
		row("Position:", strings.ReplaceAll(s.Alignment.AlignmentKey, "_", " ")),
	)))

	formatting := "none"
	if enabled := s.Formatting.Enabled(); len(enabled) > 0 {
		formatting = strings.ReplaceAll(strings.Join(enabled, ", "), "_", " ")
	}
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Formatting"),
		valueStyle.Render(formatting),
	))

	if m.dirty {
		sections = append(sections, dirtyStyle.Render("Unsaved changes. Press 's' to apply."))
	}

	return lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

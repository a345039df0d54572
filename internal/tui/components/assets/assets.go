package assets

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/hermione/internal/models"
)

type Item struct {
	Asset models.Asset
}

func (i Item) Title() string { return i.Asset.URL }
func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Asset.MimeType, i.Asset.Ref)
	if !i.Asset.CreatedAt.IsZero() {
		desc += " | added " + humanize.Time(i.Asset.CreatedAt)
	}
	return desc
}
func (i Item) FilterValue() string { return i.Asset.URL }

type Model struct {
	list list.Model
}

func New(assets []models.Asset, width, height int) Model {
	l := list.New(toItems(assets), list.NewDefaultDelegate(), width, height)
	l.Title = "Videos"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return Model{list: l}
}

func toItems(assets []models.Asset) []list.Item {
	items := make([]list.Item, len(assets))
	for i, a := range assets {
		items[i] = Item{Asset: a}
	}
	return items
}

func (m *Model) SetAssets(assets []models.Asset) {
	m.list.SetItems(toItems(assets))
}

// Selected returns the highlighted asset, if any
func (m Model) Selected() (models.Asset, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Asset, true
	}
	return models.Asset{}, false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No videos in the design yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

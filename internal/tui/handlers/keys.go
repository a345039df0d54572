package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hermione/internal/app"
	"github.com/julianstephens/hermione/internal/constants"
)

// Action is what a key press asks the editor to do
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionHelp
	ActionBack
	ActionDismiss
	ActionSignIn
	ActionSignOut
	ActionLoad
	ActionAddAsset
	ActionRefresh
	ActionPresets
	ActionCustomize
	ActionDefaults
	ActionApply
	ActionGenerate
	ActionCancel
	ActionUpload
	ActionAddAnother
)

type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Back       key.Binding
	Dismiss    key.Binding
	SignIn     key.Binding
	SignOut    key.Binding
	Load       key.Binding
	AddAsset   key.Binding
	Refresh    key.Binding
	Presets    key.Binding
	Customize  key.Binding
	Defaults   key.Binding
	Apply      key.Binding
	Generate   key.Binding
	Cancel     key.Binding
	Upload     key.Binding
	AddAnother key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sign in"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "sign out"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load video"),
		),
		AddAsset: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add video"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Presets: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "presets"),
		),
		Customize: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "customize"),
		),
		Defaults: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "reset to defaults"),
		),
		Apply: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "apply changes"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cancel"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "add to design"),
		),
		AddAnother: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "another video"),
		),
	}
}

type liveKey struct {
	binding key.Binding
	action  Action
}

func live(k KeyMap, v app.View) []liveKey {
	keys := []liveKey{{k.Quit, ActionQuit}, {k.Help, ActionHelp}}
	if v.ShowBack {
		keys = append(keys, liveKey{k.Back, ActionBack})
	}
	if v.Request.Error != "" {
		keys = append(keys, liveKey{k.Dismiss, ActionDismiss})
	}

	switch v.Screen {
	case constants.ScreenInitial:
		keys = append(keys, liveKey{k.SignIn, ActionSignIn})
	case constants.ScreenUpload:
		keys = append(keys,
			liveKey{k.Load, ActionLoad},
			liveKey{k.AddAsset, ActionAddAsset},
			liveKey{k.Refresh, ActionRefresh},
			liveKey{k.SignOut, ActionSignOut},
		)
	case constants.ScreenTranscription:
		keys = append(keys,
			liveKey{k.Presets, ActionPresets},
			liveKey{k.Customize, ActionCustomize},
			liveKey{k.Defaults, ActionDefaults},
			liveKey{k.Generate, ActionGenerate},
		)
		if v.Request.HasUnsavedChanges {
			keys = append(keys, liveKey{k.Apply, ActionApply})
		}
		if v.Request.HasUnsavedChanges || v.Request.IsLoading || v.Request.IsPreviewLoading {
			keys = append(keys, liveKey{k.Cancel, ActionCancel})
		}
	case constants.ScreenUploadConfirmation:
		if v.Request.SuccessfulUpload {
			keys = append(keys, liveKey{k.AddAnother, ActionAddAnother})
		} else {
			keys = append(keys, liveKey{k.Upload, ActionUpload})
		}
	}
	return keys
}

// Bindings lists the keys that are live for v, global keys first
func Bindings(k KeyMap, v app.View) []key.Binding {
	lk := live(k, v)
	keys := make([]key.Binding, len(lk))
	for i, l := range lk {
		keys[i] = l.binding
	}
	return keys
}

// Resolve maps a key press on the browse view to an action. Keys that are
// not live for v resolve to ActionNone.
func Resolve(k KeyMap, v app.View, msg tea.KeyMsg) Action {
	for _, l := range live(k, v) {
		if key.Matches(msg, l.binding) {
			return l.action
		}
	}
	return ActionNone
}

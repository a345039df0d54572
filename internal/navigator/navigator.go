// Package navigator holds the current editor screen.
package navigator

import (
	"sync"

	"github.com/julianstephens/hermione/internal/constants"
)

// Navigator tracks the active screen. Screens are ordered; moving back
// steps one screen toward the start and never past it.
type Navigator struct {
	mu      sync.Mutex
	current constants.Screen
}

func New() *Navigator {
	return &Navigator{current: constants.ScreenInitial}
}

func (n *Navigator) Current() constants.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Index returns the ordinal of the current screen
func (n *Navigator) Index() int {
	return n.Current().Index()
}

// GoBack moves to the previous screen and returns it. It is a no-op on the
// first screen.
func (n *Navigator) GoBack() constants.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current > constants.ScreenInitial {
		n.current--
	}
	return n.current
}

// AdvanceTo jumps to screen and reports whether the screen changed.
// Unknown screens are ignored.
func (n *Navigator) AdvanceTo(screen constants.Screen) bool {
	if screen < constants.ScreenInitial || int(screen) >= len(constants.Screens) {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	changed := n.current != screen
	n.current = screen
	return changed
}

// ShowBackButton reports whether the current screen offers a way back
func (n *Navigator) ShowBackButton() bool {
	s := n.Current()
	return s != constants.ScreenInitial && s != constants.ScreenUpload
}

// ShowFooter reports whether the attribution footer is shown
func (n *Navigator) ShowFooter() bool {
	return n.Current() != constants.ScreenInitial
}

package navigator

import (
	"testing"

	"github.com/julianstephens/hermione/internal/constants"
)

func TestGoBack(t *testing.T) {
	tests := []struct {
		from constants.Screen
		want constants.Screen
	}{
		{constants.ScreenUploadConfirmation, constants.ScreenTranscription},
		{constants.ScreenTranscription, constants.ScreenUpload},
		{constants.ScreenUpload, constants.ScreenInitial},
		{constants.ScreenInitial, constants.ScreenInitial},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			n := New()
			n.AdvanceTo(tt.from)
			if got := n.GoBack(); got != tt.want {
				t.Errorf("GoBack() = %s, want %s", got, tt.want)
			}
			if n.Current() != tt.want {
				t.Errorf("Current() = %s, want %s", n.Current(), tt.want)
			}
		})
	}
}

func TestAdvanceTo(t *testing.T) {
	n := New()

	if !n.AdvanceTo(constants.ScreenTranscription) {
		t.Error("AdvanceTo(transcription) reported no change")
	}
	if n.Index() != 2 {
		t.Errorf("Index() = %d, want 2", n.Index())
	}
	if n.AdvanceTo(constants.ScreenTranscription) {
		t.Error("AdvanceTo(same screen) reported a change")
	}
	if n.AdvanceTo(constants.Screen(42)) {
		t.Error("AdvanceTo(unknown) reported a change")
	}
	if n.Current() != constants.ScreenTranscription {
		t.Errorf("unknown screen moved navigator to %s", n.Current())
	}
}

func TestChromeVisibility(t *testing.T) {
	tests := []struct {
		screen     constants.Screen
		backButton bool
		footer     bool
	}{
		{constants.ScreenInitial, false, false},
		{constants.ScreenUpload, false, true},
		{constants.ScreenTranscription, true, true},
		{constants.ScreenUploadConfirmation, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.screen.String(), func(t *testing.T) {
			n := New()
			n.AdvanceTo(tt.screen)
			if n.ShowBackButton() != tt.backButton {
				t.Errorf("ShowBackButton() = %v, want %v", n.ShowBackButton(), tt.backButton)
			}
			if n.ShowFooter() != tt.footer {
				t.Errorf("ShowFooter() = %v, want %v", n.ShowFooter(), tt.footer)
			}
		})
	}
}

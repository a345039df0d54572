package state

import (
	"testing"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

func TestCustomizeFormRoundTripHasNoChanges(t *testing.T) {
	s := models.DefaultSettings()
	form := NewCustomizeForm(s)

	changes, err := form.Changes(s)
	if err != nil {
		t.Fatalf("Changes failed: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected no changes, got %+v", changes)
	}
	if form.FormattingChanged(s) {
		t.Error("expected formatting unchanged")
	}
}

func TestCustomizeFormChanges(t *testing.T) {
	s := models.DefaultSettings()
	form := NewCustomizeForm(s)
	form.FontSize = " 32 "
	form.FontName = "Poppins"
	form.AlignmentKey = "bottom_center"

	changes, err := form.Changes(s)
	if err != nil {
		t.Fatalf("Changes failed: %v", err)
	}

	want := []Change{
		{Category: constants.CategoryFont, Key: constants.KeyFontName, Value: "Poppins"},
		{Category: constants.CategoryFont, Key: constants.KeyFontSize, Value: 32},
		{Category: constants.CategoryAlignment, Key: constants.KeyAlignmentKey, Value: "bottom_center"},
	}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d: %+v", len(changes), len(want), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, changes[i], want[i])
		}
	}
}

func TestCustomizeFormRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		apply func(f *CustomizeFormModel)
	}{
		{"zero font size", func(f *CustomizeFormModel) { f.FontSize = "0" }},
		{"words not a number", func(f *CustomizeFormModel) { f.MaxWordsPerLine = "many" }},
		{"negative chars", func(f *CustomizeFormModel) { f.MaxCharsPerLine = "-4" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			form := NewCustomizeForm(s)
			tt.apply(form)
			if _, err := form.Changes(s); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFormattingChanged(t *testing.T) {
	s := models.DefaultSettings()
	form := NewCustomizeForm(s)
	form.Formatting = append(form.Formatting, constants.KeyBounceAnimation)
	if !form.FormattingChanged(s) {
		t.Error("expected formatting change")
	}
}

func TestParseMinInt(t *testing.T) {
	tests := []struct {
		raw     string
		min     int
		want    int
		wantErr bool
	}{
		{"5", 1, 5, false},
		{" 1 ", 1, 1, false},
		{"0", 1, 0, true},
		{"abc", 1, 0, true},
		{"", 1, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMinInt(tt.raw, tt.min)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMinInt(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMinInt(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

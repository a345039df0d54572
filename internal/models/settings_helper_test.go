package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/hermione/internal/constants"
)

func TestDefaultSettingsMatchCatalog(t *testing.T) {
	s := DefaultSettings()

	if s.Font.Preset != constants.DefaultPreset {
		t.Errorf("Preset = %q, want %q", s.Font.Preset, constants.DefaultPreset)
	}
	if _, ok := LookupPreset(s.Font.Preset); !ok {
		t.Errorf("default preset %q is not in the catalog", s.Font.Preset)
	}
	if s.Alignment.AlignmentKey != "middle_center" {
		t.Errorf("AlignmentKey = %q, want middle_center", s.Alignment.AlignmentKey)
	}
	if !s.Formatting.RemovePunctuation || !s.Formatting.Capitalize {
		t.Error("expected remove_punctuation and capitalize to default to true")
	}
	if s.Formatting.CapitalizeFirstLetter || s.Formatting.BounceAnimation {
		t.Error("expected capitalize_first_letter and bounce_animation to default to false")
	}
}

func TestSettingsJSONShape(t *testing.T) {
	data, err := json.Marshal(DefaultSettings())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	for _, c := range constants.Categories {
		if _, ok := decoded[string(c)]; !ok {
			t.Errorf("missing category %q in %s", c, data)
		}
	}
	if decoded["font_settings"]["borderw"] != float64(constants.DefaultBorderW) {
		t.Errorf("borderw = %v, want %d", decoded["font_settings"]["borderw"], constants.DefaultBorderW)
	}
}

func TestSetCoercesValues(t *testing.T) {
	tests := []struct {
		name     string
		category constants.Category
		key      string
		value    any
		want     any
	}{
		{"int", constants.CategoryFont, constants.KeyFontSize, 32, 32},
		{"whole float to int", constants.CategoryChunk, constants.KeyMaxWordsPerLine, float64(3), 3},
		{"string to int", constants.CategoryAlignment, constants.KeySpacing, "14", 14},
		{"json number to float", constants.CategoryChunk, constants.KeyProximityThreshold, json.Number("0.4"), 0.4},
		{"int to float", constants.CategoryFont, constants.KeyBoxOpacity, 1, float64(1)},
		{"string", constants.CategoryFont, constants.KeyFontColor, "#FF0000", "#FF0000"},
		{"bool", constants.CategoryFormatting, constants.KeyBounceAnimation, true, true},
		{"string to bool", constants.CategoryFormatting, constants.KeyCapitalize, "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			if err := s.Set(tt.category, tt.key, tt.value); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			got, err := s.Get(tt.category, tt.key)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestSetRejectsUnknownAndMistyped(t *testing.T) {
	tests := []struct {
		name     string
		category constants.Category
		key      string
		value    any
		wantErr  error
	}{
		{"unknown category", "render_settings", "fps", 30, ErrUnknownKey},
		{"unknown key", constants.CategoryFont, "font_weight", 700, ErrUnknownKey},
		{"unknown toggle", constants.CategoryFormatting, "italic", true, ErrUnknownKey},
		{"fractional int", constants.CategoryFont, constants.KeyFontSize, 12.5, ErrInvalidValue},
		{"number for string", constants.CategoryFont, constants.KeyFontName, 12, ErrInvalidValue},
		{"garbage bool", constants.CategoryFormatting, constants.KeyCapitalize, "maybe", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			err := s.Set(tt.category, tt.key, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(s, DefaultSettings()) {
				t.Error("rejected Set() mutated settings")
			}
		})
	}
}

func TestFormattingSetEnabled(t *testing.T) {
	f := FormattingSettings{RemovePunctuation: true, CapitalizeFirstLetter: true}
	f.SetEnabled([]string{constants.KeyCapitalize, "sparkles"})

	want := FormattingSettings{Capitalize: true}
	if f != want {
		t.Errorf("SetEnabled() = %+v, want %+v", f, want)
	}
	if got := f.Enabled(); !reflect.DeepEqual(got, []string{constants.KeyCapitalize}) {
		t.Errorf("Enabled() = %v", got)
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{}
	s.Font.FontColor = "#123456"
	ApplyDefaultSettings(&s)

	if s.Font.FontColor != "#123456" {
		t.Errorf("FontColor overwritten: %q", s.Font.FontColor)
	}
	if s.Font.FontSize != constants.DefaultFontSize {
		t.Errorf("FontSize = %d, want %d", s.Font.FontSize, constants.DefaultFontSize)
	}
	if s.Alignment.AlignmentKey != constants.DefaultAlignmentKey {
		t.Errorf("AlignmentKey = %q, want %q", s.Alignment.AlignmentKey, constants.DefaultAlignmentKey)
	}
}

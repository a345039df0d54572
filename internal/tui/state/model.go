// Package state holds the form models of the TUI and converts them into
// settings changes.
package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

// Mode is what currently owns keyboard input
type Mode int

const (
	ModeBrowse Mode = iota
	ModeEmail
	ModeOTP
	ModePreset
	ModeCustomize
	ModeAddAsset
)

// EmailFormModel represents the email step of sign-in
type EmailFormModel struct {
	Email string
}

// OTPFormModel represents the one-time-password step of sign-in
type OTPFormModel struct {
	OTP string
}

// PresetFormModel represents the presets grid
type PresetFormModel struct {
	Preset string
}

// AssetFormModel represents a new video registered in the design
type AssetFormModel struct {
	URL      string
	MimeType constants.MimeType
}

// CustomizeFormModel represents the customization form. Numeric fields are
// kept as strings for the text inputs.
type CustomizeFormModel struct {
	FontName        string
	FontSize        string
	FontColor       string
	HighlightColor  string
	MaxWordsPerLine string
	MaxCharsPerLine string
	AlignmentKey    string
	Formatting      []string
}

// Change is a single settings key update
type Change struct {
	Category constants.Category
	Key      string
	Value    any
}

// NewCustomizeForm seeds the form from s
func NewCustomizeForm(s models.Settings) *CustomizeFormModel {
	return &CustomizeFormModel{
		FontName:        s.Font.FontName,
		FontSize:        strconv.Itoa(s.Font.FontSize),
		FontColor:       s.Font.FontColor,
		HighlightColor:  s.Font.HighlightColor,
		MaxWordsPerLine: strconv.Itoa(s.Chunk.MaxWordsPerLine),
		MaxCharsPerLine: strconv.Itoa(s.Chunk.MaxCharsPerLine),
		AlignmentKey:    s.Alignment.AlignmentKey,
		Formatting:      s.Formatting.Enabled(),
	}
}

// Changes returns the keys that differ from current, in a stable order.
// Formatting toggles are not included; they are merged as a set.
func (f *CustomizeFormModel) Changes(current models.Settings) ([]Change, error) {
	var changes []Change

	str := func(cat constants.Category, key, now, next string) {
		next = strings.TrimSpace(next)
		if next != "" && next != now {
			changes = append(changes, Change{Category: cat, Key: key, Value: next})
		}
	}
	num := func(cat constants.Category, key string, now int, raw string, min int) error {
		n, err := ParseMinInt(raw, min)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if n != now {
			changes = append(changes, Change{Category: cat, Key: key, Value: n})
		}
		return nil
	}

	str(constants.CategoryFont, constants.KeyFontName, current.Font.FontName, f.FontName)
	if err := num(constants.CategoryFont, constants.KeyFontSize, current.Font.FontSize, f.FontSize, constants.MinFontSize); err != nil {
		return nil, err
	}
	str(constants.CategoryFont, constants.KeyFontColor, current.Font.FontColor, f.FontColor)
	str(constants.CategoryFont, constants.KeyHighlightColor, current.Font.HighlightColor, f.HighlightColor)
	if err := num(constants.CategoryChunk, constants.KeyMaxWordsPerLine, current.Chunk.MaxWordsPerLine, f.MaxWordsPerLine, constants.MinWordsPerLine); err != nil {
		return nil, err
	}
	if err := num(constants.CategoryChunk, constants.KeyMaxCharsPerLine, current.Chunk.MaxCharsPerLine, f.MaxCharsPerLine, constants.MinCharsPerLine); err != nil {
		return nil, err
	}
	str(constants.CategoryAlignment, constants.KeyAlignmentKey, current.Alignment.AlignmentKey, f.AlignmentKey)
	return changes, nil
}

// FormattingChanged reports whether the toggles differ from current
func (f *CustomizeFormModel) FormattingChanged(current models.Settings) bool {
	var next models.FormattingSettings
	next.SetEnabled(f.Formatting)
	return next != current.Formatting
}

// ParseMinInt parses a whole number no smaller than min
func ParseMinInt(raw string, min int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("must be a whole number")
	}
	if n < min {
		return 0, fmt.Errorf("must be at least %d", min)
	}
	return n, nil
}

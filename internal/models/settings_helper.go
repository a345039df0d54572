package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/julianstephens/hermione/internal/constants"
)

var (
	// ErrUnknownKey is returned when a category or key is not part of the settings model
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrInvalidValue is returned when a value cannot be stored in the addressed field
	ErrInvalidValue = errors.New("invalid settings value")
)

// DefaultSettings returns the settings every new session starts with.
func DefaultSettings() Settings {
	return Settings{
		Chunk: ChunkSettings{
			MaxWordsPerLine:    constants.DefaultMaxWordsPerLine,
			MaxCharsPerLine:    constants.DefaultMaxCharsPerLine,
			ProximityThreshold: constants.DefaultProximityThreshold,
			SentenceCount:      constants.DefaultSentenceCount,
		},
		Font: FontSettings{
			FontName:        constants.DefaultFontName,
			FontSize:        constants.DefaultFontSize,
			FontColor:       constants.DefaultFontColor,
			OutlineColor:    constants.DefaultOutlineColor,
			BorderColor:     constants.DefaultBorderColor,
			HighlightColor:  constants.DefaultHighlightColor,
			BorderW:         constants.DefaultBorderW,
			BoxColor:        constants.DefaultFontBoxColor,
			BoxOpacity:      constants.DefaultBoxOpacity,
			ShadowX:         constants.DefaultShadowX,
			ShadowY:         constants.DefaultShadowY,
			PassedFontColor: constants.DefaultPassedFontColor,
			Preset:          constants.DefaultPreset,
		},
		Alignment: AlignmentSettings{
			AlignmentKey: constants.DefaultAlignmentKey,
			Spacing:      constants.DefaultSpacing,
			BoxColor:     constants.DefaultAlignmentBoxColor,
		},
		Formatting: FormattingSettings{
			RemovePunctuation: true,
			Capitalize:        true,
		},
	}
}

// ApplyDefaultSettings fills fields that a partially stored profile left empty.
func ApplyDefaultSettings(s *Settings) {
	d := DefaultSettings()
	if s.Chunk.MaxWordsPerLine < constants.MinWordsPerLine {
		s.Chunk.MaxWordsPerLine = d.Chunk.MaxWordsPerLine
	}
	if s.Chunk.MaxCharsPerLine < constants.MinCharsPerLine {
		s.Chunk.MaxCharsPerLine = d.Chunk.MaxCharsPerLine
	}
	if s.Chunk.ProximityThreshold < constants.MinProximityThreshold {
		s.Chunk.ProximityThreshold = d.Chunk.ProximityThreshold
	}
	if s.Font.FontName == "" {
		s.Font.FontName = d.Font.FontName
	}
	if s.Font.FontSize < constants.MinFontSize {
		s.Font.FontSize = d.Font.FontSize
	}
	for _, f := range []struct{ dst *string; def string }{
		{&s.Font.FontColor, d.Font.FontColor},
		{&s.Font.OutlineColor, d.Font.OutlineColor},
		{&s.Font.BorderColor, d.Font.BorderColor},
		{&s.Font.HighlightColor, d.Font.HighlightColor},
		{&s.Font.BoxColor, d.Font.BoxColor},
		{&s.Font.PassedFontColor, d.Font.PassedFontColor},
		{&s.Font.Preset, d.Font.Preset},
		{&s.Alignment.AlignmentKey, d.Alignment.AlignmentKey},
		{&s.Alignment.BoxColor, d.Alignment.BoxColor},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
}

// Set stores value under category/key. Only keys of the fixed model are accepted.
func (s *Settings) Set(category constants.Category, key string, value any) error {
	switch category {
	case constants.CategoryChunk:
		return s.setChunk(key, value)
	case constants.CategoryFont:
		return s.setFont(key, value)
	case constants.CategoryAlignment:
		return s.setAlignment(key, value)
	case constants.CategoryFormatting:
		return s.setFormatting(key, value)
	}
	return fmt.Errorf("%w: category %q", ErrUnknownKey, category)
}

func (s *Settings) setChunk(key string, value any) error {
	switch key {
	case constants.KeyMaxWordsPerLine:
		return assignInt(&s.Chunk.MaxWordsPerLine, key, value)
	case constants.KeyMaxCharsPerLine:
		return assignInt(&s.Chunk.MaxCharsPerLine, key, value)
	case constants.KeyProximityThreshold:
		return assignFloat(&s.Chunk.ProximityThreshold, key, value)
	case constants.KeySentenceCount:
		return assignInt(&s.Chunk.SentenceCount, key, value)
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownKey, constants.CategoryChunk, key)
}

func (s *Settings) setFont(key string, value any) error {
	f := &s.Font
	switch key {
	case constants.KeyFontName:
		return assignString(&f.FontName, key, value)
	case constants.KeyFontSize:
		return assignInt(&f.FontSize, key, value)
	case constants.KeyFontColor:
		return assignString(&f.FontColor, key, value)
	case constants.KeyOutlineColor:
		return assignString(&f.OutlineColor, key, value)
	case constants.KeyBorderColor:
		return assignString(&f.BorderColor, key, value)
	case constants.KeyFontHeight:
		return assignInt(&f.FontHeight, key, value)
	case constants.KeyFontWidth:
		return assignInt(&f.FontWidth, key, value)
	case constants.KeyHighlightColor:
		return assignString(&f.HighlightColor, key, value)
	case constants.KeyBox:
		return assignInt(&f.Box, key, value)
	case constants.KeyBorderW:
		return assignInt(&f.BorderW, key, value)
	case constants.KeyBoxColor:
		return assignString(&f.BoxColor, key, value)
	case constants.KeyBoxOpacity:
		return assignFloat(&f.BoxOpacity, key, value)
	case constants.KeyShadowX:
		return assignInt(&f.ShadowX, key, value)
	case constants.KeyShadowY:
		return assignInt(&f.ShadowY, key, value)
	case constants.KeyPassedFontColor:
		return assignString(&f.PassedFontColor, key, value)
	case constants.KeyPreset:
		return assignString(&f.Preset, key, value)
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownKey, constants.CategoryFont, key)
}

func (s *Settings) setAlignment(key string, value any) error {
	switch key {
	case constants.KeyAlignmentKey:
		return assignString(&s.Alignment.AlignmentKey, key, value)
	case constants.KeySpacing:
		return assignInt(&s.Alignment.Spacing, key, value)
	case constants.KeyBoxColor:
		return assignString(&s.Alignment.BoxColor, key, value)
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownKey, constants.CategoryAlignment, key)
}

func (s *Settings) setFormatting(key string, value any) error {
	toggle := s.Formatting.toggle(key)
	if toggle == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownKey, constants.CategoryFormatting, key)
	}
	return assignBool(toggle, key, value)
}

func (f *FormattingSettings) toggle(key string) *bool {
	switch key {
	case constants.KeyRemovePunctuation:
		return &f.RemovePunctuation
	case constants.KeyCapitalize:
		return &f.Capitalize
	case constants.KeyCapitalizeFirstLetter:
		return &f.CapitalizeFirstLetter
	case constants.KeyBounceAnimation:
		return &f.BounceAnimation
	}
	return nil
}

// SetEnabled rewrites every toggle so that exactly the listed keys are true.
// Names outside the toggle catalog are ignored.
func (f *FormattingSettings) SetEnabled(enabled []string) {
	set := make(map[string]bool, len(enabled))
	for _, k := range enabled {
		set[k] = true
	}
	for _, k := range constants.FormattingToggles {
		*f.toggle(k) = set[k]
	}
}

// Enabled returns the toggle keys that are currently on, in catalog order
func (f FormattingSettings) Enabled() []string {
	var keys []string
	for _, k := range constants.FormattingToggles {
		if *f.toggle(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Get returns the value stored under category/key.
func (s Settings) Get(category constants.Category, key string) (any, error) {
	m, ok := SettingsToMap(s)[category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrUnknownKey, category)
	}
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownKey, category, key)
	}
	return v, nil
}

// SettingsToMap flattens the settings into category -> key -> value.
func SettingsToMap(s Settings) map[constants.Category]map[string]any {
	return map[constants.Category]map[string]any{
		constants.CategoryChunk: {
			constants.KeyMaxWordsPerLine:    s.Chunk.MaxWordsPerLine,
			constants.KeyMaxCharsPerLine:    s.Chunk.MaxCharsPerLine,
			constants.KeyProximityThreshold: s.Chunk.ProximityThreshold,
			constants.KeySentenceCount:      s.Chunk.SentenceCount,
		},
		constants.CategoryFont: {
			constants.KeyFontName:        s.Font.FontName,
			constants.KeyFontSize:        s.Font.FontSize,
			constants.KeyFontColor:       s.Font.FontColor,
			constants.KeyOutlineColor:    s.Font.OutlineColor,
			constants.KeyBorderColor:     s.Font.BorderColor,
			constants.KeyFontHeight:      s.Font.FontHeight,
			constants.KeyFontWidth:       s.Font.FontWidth,
			constants.KeyHighlightColor:  s.Font.HighlightColor,
			constants.KeyBox:             s.Font.Box,
			constants.KeyBorderW:         s.Font.BorderW,
			constants.KeyBoxColor:        s.Font.BoxColor,
			constants.KeyBoxOpacity:      s.Font.BoxOpacity,
			constants.KeyShadowX:         s.Font.ShadowX,
			constants.KeyShadowY:         s.Font.ShadowY,
			constants.KeyPassedFontColor: s.Font.PassedFontColor,
			constants.KeyPreset:          s.Font.Preset,
		},
		constants.CategoryAlignment: {
			constants.KeyAlignmentKey: s.Alignment.AlignmentKey,
			constants.KeySpacing:      s.Alignment.Spacing,
			constants.KeyBoxColor:     s.Alignment.BoxColor,
		},
		constants.CategoryFormatting: {
			constants.KeyRemovePunctuation:     s.Formatting.RemovePunctuation,
			constants.KeyCapitalize:            s.Formatting.Capitalize,
			constants.KeyCapitalizeFirstLetter: s.Formatting.CapitalizeFirstLetter,
			constants.KeyBounceAnimation:       s.Formatting.BounceAnimation,
		},
	}
}

func assignInt(dst *int, key string, value any) error {
	switch v := value.(type) {
	case int:
		*dst = v
	case int64:
		*dst = int(v)
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("%w: %s expects an integer, got %v", ErrInvalidValue, key, v)
		}
		*dst = int(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		*dst = int(i)
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		*dst = i
	default:
		return fmt.Errorf("%w: %s expects an integer, got %T", ErrInvalidValue, key, value)
	}
	return nil
}

func assignFloat(dst *float64, key string, value any) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case float32:
		*dst = float64(v)
	case int:
		*dst = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		*dst = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		*dst = f
	default:
		return fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidValue, key, value)
	}
	return nil
}

func assignString(dst *string, key string, value any) error {
	v, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, key, value)
	}
	*dst = v
	return nil
}

func assignBool(dst *bool, key string, value any) error {
	switch v := value.(type) {
	case bool:
		*dst = v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		*dst = b
	default:
		return fmt.Errorf("%w: %s expects a boolean, got %T", ErrInvalidValue, key, value)
	}
	return nil
}

package models

// ChunkSettings controls how the transcript is split into subtitle lines
type ChunkSettings struct {
	MaxWordsPerLine    int     `json:"max_words_per_line" toml:"max_words_per_line"`   // words per rendered line
	MaxCharsPerLine    int     `json:"max_chars_per_line" toml:"max_chars_per_line"`   // characters per rendered line
	ProximityThreshold float64 `json:"proximity_threshold" toml:"proximity_threshold"` // seconds between words before a new chunk starts
	SentenceCount      int     `json:"sentence_count" toml:"sentence_count"`
}

// FontSettings controls subtitle typography and decoration
type FontSettings struct {
	FontName        string  `json:"font_name" toml:"font_name"`
	FontSize        int     `json:"font_size" toml:"font_size"`
	FontColor       string  `json:"font_color" toml:"font_color"`
	OutlineColor    string  `json:"outline_color" toml:"outline_color"`
	BorderColor     string  `json:"border_color" toml:"border_color"`
	FontHeight      int     `json:"font_height" toml:"font_height"`
	FontWidth       int     `json:"font_width" toml:"font_width"`
	HighlightColor  string  `json:"highlight_color" toml:"highlight_color"`
	Box             int     `json:"box" toml:"box"` // 0 or 1
	BorderW         int     `json:"borderw" toml:"borderw"`
	BoxColor        string  `json:"box_color" toml:"box_color"`
	BoxOpacity      float64 `json:"box_opacity" toml:"box_opacity"` // 0..1
	ShadowX         int     `json:"shadowx" toml:"shadowx"`
	ShadowY         int     `json:"shadowy" toml:"shadowy"`
	PassedFontColor string  `json:"passed_font_color" toml:"passed_font_color"`
	Preset          string  `json:"preset" toml:"preset"` // key into the preset catalog
}

// AlignmentSettings controls where subtitles are placed on the frame
type AlignmentSettings struct {
	AlignmentKey string `json:"alignment_key" toml:"alignment_key"`
	Spacing      int    `json:"spacing" toml:"spacing"`
	BoxColor     string `json:"box_color" toml:"box_color"`
}

// FormattingSettings holds the text formatting toggles
type FormattingSettings struct {
	RemovePunctuation     bool `json:"remove_punctuation" toml:"remove_punctuation"`
	Capitalize            bool `json:"capitalize" toml:"capitalize"`
	CapitalizeFirstLetter bool `json:"capitalize_first_letter" toml:"capitalize_first_letter"`
	BounceAnimation       bool `json:"bounce_animation" toml:"bounce_animation"`
}

// Settings is the complete subtitle rendering configuration
type Settings struct {
	Chunk      ChunkSettings      `json:"chunk_settings" toml:"chunk_settings"`
	Font       FontSettings       `json:"font_settings" toml:"font_settings"`
	Alignment  AlignmentSettings  `json:"alignment_settings" toml:"alignment_settings"`
	Formatting FormattingSettings `json:"adjust_formatting" toml:"adjust_formatting"`
}

package constants

// Category names one of the four disjoint settings categories
type Category string

const (
	CategoryChunk      Category = "chunk_settings"
	CategoryFont       Category = "font_settings"
	CategoryAlignment  Category = "alignment_settings"
	CategoryFormatting Category = "adjust_formatting"

	// Chunk settings
	KeyMaxWordsPerLine    = "max_words_per_line"
	KeyMaxCharsPerLine    = "max_chars_per_line"
	KeyProximityThreshold = "proximity_threshold"
	KeySentenceCount      = "sentence_count"

	// Font settings
	KeyFontName        = "font_name"
	KeyFontSize        = "font_size"
	KeyFontColor       = "font_color"
	KeyOutlineColor    = "outline_color"
	KeyBorderColor     = "border_color"
	KeyFontHeight      = "font_height"
	KeyFontWidth       = "font_width"
	KeyHighlightColor  = "highlight_color"
	KeyBox             = "box"
	KeyBorderW         = "borderw"
	KeyBoxColor        = "box_color"
	KeyBoxOpacity      = "box_opacity"
	KeyShadowX         = "shadowx"
	KeyShadowY         = "shadowy"
	KeyPassedFontColor = "passed_font_color"
	KeyPreset          = "preset"

	// Alignment settings (box_color is shared with font settings)
	KeyAlignmentKey = "alignment_key"
	KeySpacing      = "spacing"

	// Formatting toggles
	KeyRemovePunctuation     = "remove_punctuation"
	KeyCapitalize            = "capitalize"
	KeyCapitalizeFirstLetter = "capitalize_first_letter"
	KeyBounceAnimation       = "bounce_animation"

	// Default values
	DefaultMaxWordsPerLine    = 5
	DefaultMaxCharsPerLine    = 40
	DefaultProximityThreshold = 0.1
	DefaultSentenceCount      = 2

	DefaultFontName        = "KOMTIT"
	DefaultFontSize        = 20
	DefaultFontColor       = "#FFFFFF"
	DefaultOutlineColor    = "#FFFFFF"
	DefaultBorderColor     = "#020502"
	DefaultHighlightColor  = "#008000"
	DefaultBorderW         = 1
	DefaultFontBoxColor    = "#000000"
	DefaultBoxOpacity      = 0.6
	DefaultShadowX         = 2
	DefaultShadowY         = 2
	DefaultPassedFontColor = "#FFFFFF"
	DefaultPreset          = "alex_hormozi"

	DefaultAlignmentKey      = "middle_center"
	DefaultSpacing           = 10
	DefaultAlignmentBoxColor = "black"

	// Input bounds enforced by the editor before merging
	MinFontSize           = 1
	MinWordsPerLine       = 1
	MinCharsPerLine       = 1
	MinProximityThreshold = 0.1
	ProximityStep         = 0.1
)

// Categories lists the settings categories in display order
var Categories = []Category{CategoryChunk, CategoryFont, CategoryAlignment, CategoryFormatting}

// FormattingToggles is the fixed catalog of formatting toggles
var FormattingToggles = []string{
	KeyRemovePunctuation,
	KeyCapitalize,
	KeyCapitalizeFirstLetter,
	KeyBounceAnimation,
}

// AlignmentKeys lists the nine subtitle positions, row-major
var AlignmentKeys = []string{
	"top_left", "top_center", "top_right",
	"middle_left", "middle_center", "middle_right",
	"bottom_left", "bottom_center", "bottom_right",
}

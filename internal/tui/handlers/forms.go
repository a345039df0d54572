package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
	"github.com/julianstephens/hermione/internal/tui/state"
)

// NewEmailForm creates the email step of sign-in. errMsg is the error of a
// previous attempt, shown as the description.
func NewEmailForm(fm *state.EmailFormModel, errMsg string) *huh.Form {
	input := huh.NewInput().
		Title("Email").
		Placeholder("you@example.com").
		Value(&fm.Email).
		Validate(func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				return fmt.Errorf("email cannot be empty")
			}
			if !strings.Contains(s, "@") {
				return fmt.Errorf("enter a valid email")
			}
			return nil
		})
	if errMsg != "" {
		input.Description(errMsg)
	}
	return huh.NewForm(huh.NewGroup(input)).WithTheme(huh.ThemeDracula())
}

// NewOTPForm creates the one-time-password step of sign-in
func NewOTPForm(fm *state.OTPFormModel, email, errMsg string) *huh.Form {
	desc := fmt.Sprintf("We sent a code to %s", email)
	if errMsg != "" {
		desc = errMsg
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("One-time password").
				Description(desc).
				Value(&fm.OTP).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("code cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewPresetForm creates the presets grid
func NewPresetForm(fm *state.PresetFormModel) *huh.Form {
	opts := make([]huh.Option[string], 0, len(models.Presets))
	for _, p := range models.Presets {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Presets").
				Options(opts...).
				Value(&fm.Preset),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewCustomizeForm creates the customization form. fonts feeds the font
// select; when empty the font name is a free text input.
func NewCustomizeForm(fm *state.CustomizeFormModel, fonts []string) *huh.Form {
	var fontField huh.Field
	if len(fonts) > 0 {
		opts := huh.NewOptions(fonts...)
		if !contains(fonts, fm.FontName) && fm.FontName != "" {
			opts = append([]huh.Option[string]{huh.NewOption(fm.FontName, fm.FontName)}, opts...)
		}
		fontField = huh.NewSelect[string]().
			Title("Font").
			Options(opts...).
			Value(&fm.FontName)
	} else {
		fontField = huh.NewInput().
			Title("Font").
			Value(&fm.FontName)
	}

	alignOpts := make([]huh.Option[string], 0, len(constants.AlignmentKeys))
	for _, k := range constants.AlignmentKeys {
		alignOpts = append(alignOpts, huh.NewOption(strings.ReplaceAll(k, "_", " "), k))
	}

	toggleOpts := make([]huh.Option[string], 0, len(constants.FormattingToggles))
	for _, k := range constants.FormattingToggles {
		toggleOpts = append(toggleOpts, huh.NewOption(strings.ReplaceAll(k, "_", " "), k))
	}

	return huh.NewForm(
		huh.NewGroup(
			fontField,
			huh.NewInput().
				Title("Font size").
				Value(&fm.FontSize).
				Validate(minInt(constants.MinFontSize)),
			huh.NewInput().
				Title("Font color").
				Value(&fm.FontColor).
				Validate(hexColor),
			huh.NewInput().
				Title("Highlight color").
				Value(&fm.HighlightColor).
				Validate(hexColor),
		).Title("Font"),
		huh.NewGroup(
			huh.NewInput().
				Title("Max words per line").
				Value(&fm.MaxWordsPerLine).
				Validate(minInt(constants.MinWordsPerLine)),
			huh.NewInput().
				Title("Max characters per line").
				Value(&fm.MaxCharsPerLine).
				Validate(minInt(constants.MinCharsPerLine)),
			huh.NewSelect[string]().
				Title("Position").
				Options(alignOpts...).
				Value(&fm.AlignmentKey),
			huh.NewMultiSelect[string]().
				Title("Formatting").
				Options(toggleOpts...).
				Value(&fm.Formatting),
		).Title("Layout"),
	).WithTheme(huh.ThemeDracula())
}

// NewAssetForm creates the form that registers a video in the design
func NewAssetForm(fm *state.AssetFormModel) *huh.Form {
	mimeOpts := make([]huh.Option[constants.MimeType], 0, len(constants.MimeTypes))
	for _, m := range constants.MimeTypes {
		mimeOpts = append(mimeOpts, huh.NewOption(string(m), m))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Video URL").
				Value(&fm.URL).
				Validate(func(s string) error {
					u, err := url.Parse(strings.TrimSpace(s))
					if err != nil || u.Scheme == "" || u.Host == "" {
						return fmt.Errorf("enter an absolute URL")
					}
					return nil
				}),
			huh.NewSelect[constants.MimeType]().
				Title("Type").
				Options(mimeOpts...).
				Value(&fm.MimeType),
		),
	).WithTheme(huh.ThemeDracula())
}

func minInt(min int) func(string) error {
	return func(s string) error {
		_, err := state.ParseMinInt(s, min)
		return err
	}
}

func hexColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 4) {
		return fmt.Errorf("use a hex color like #FFFFFF")
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("use a hex color like #FFFFFF")
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

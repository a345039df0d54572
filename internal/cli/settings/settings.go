package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/julianstephens/hermione/internal/cli"
	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/models"
)

var ErrInvalidAssignment = errors.New("expected category.key=value")

var categoryAliases = map[string]constants.Category{
	"chunk":      constants.CategoryChunk,
	"font":       constants.CategoryFont,
	"alignment":  constants.CategoryAlignment,
	"formatting": constants.CategoryFormatting,
}

// Assignment is one parsed category.key=value argument
type Assignment struct {
	Category constants.Category
	Key      string
	Value    string
}

// ParseAssignment parses category.key=value. The category may be given by
// its full name or its short alias.
func ParseAssignment(arg string) (Assignment, error) {
	path, value, ok := strings.Cut(arg, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("%w: %q", ErrInvalidAssignment, arg)
	}
	cat, key, ok := strings.Cut(strings.TrimSpace(path), ".")
	if !ok || cat == "" || key == "" {
		return Assignment{}, fmt.Errorf("%w: %q", ErrInvalidAssignment, arg)
	}

	category := constants.Category(cat)
	if alias, ok := categoryAliases[cat]; ok {
		category = alias
	}
	return Assignment{Category: category, Key: key, Value: strings.TrimSpace(value)}, nil
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	s, saved, err := ctx.Store.LoadSettings(bg)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !saved {
		s = models.DefaultSettings()
		ctx.Println("No saved profile; showing defaults.")
	}

	t := table.NewWriter()
	t.SetOutputMirror(ctx.Out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Category", "Key", "Value"})

	m := models.SettingsToMap(s)
	for _, cat := range constants.Categories {
		keys := make([]string, 0, len(m[cat]))
		for k := range m[cat] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.AppendRow(table.Row{cat, k, m[cat][k]})
		}
		t.AppendSeparator()
	}
	t.Render()
	return nil
}

type SettingsSetCmd struct {
	Assignments []string `arg:"" help:"One or more category.key=value pairs, e.g. font.font_size=24."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	s := ctx.LoadSettings(bg)
	for _, arg := range c.Assignments {
		a, err := ParseAssignment(arg)
		if err != nil {
			return err
		}
		if a.Category == constants.CategoryFont && a.Key == constants.KeyPreset {
			if _, ok := models.LookupPreset(a.Value); !ok {
				return fmt.Errorf("%w: preset %q", models.ErrInvalidValue, a.Value)
			}
		}
		if err := s.Set(a.Category, a.Key, a.Value); err != nil {
			return fmt.Errorf("failed to set %s.%s: %w", a.Category, a.Key, err)
		}
	}

	if err := ctx.Store.SaveSettings(bg, s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

type SettingsResetCmd struct{}

func (c *SettingsResetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.Open(bg); err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.Store.ResetSettings(bg); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	ctx.Println("Settings reset to defaults.")
	return nil
}

type PresetsCmd struct{}

func (c *PresetsCmd) Run(ctx *cli.Context) error {
	t := table.NewWriter()
	t.SetOutputMirror(ctx.Out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Name"})
	for _, p := range models.Presets {
		t.AppendRow(table.Row{p.ID, p.Name})
	}
	t.Render()
	return nil
}

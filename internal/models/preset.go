package models

// Preset is a named bundle of appearance settings selectable as a unit
type Preset struct {
	ID   string
	Name string
}

// Presets is the fixed catalog shown in the themes grid
var Presets = []Preset{
	{ID: "mr_beast", Name: "Mr Beast"},
	{ID: "love_bubbles", Name: "Lilly"},
	{ID: "outline", Name: "Outline"},
	{ID: "saranghae", Name: "Sarangae"},
	{ID: "poppings_bold", Name: "Poppins"},
	{ID: "alex_hormozi", Name: "Hormozi"},
	{ID: "baby_cute", Name: "Cute"},
	{ID: "annabelle", Name: "Belle"},
	{ID: "tremor", Name: "Tremor"},
}

// LookupPreset finds a preset by id
func LookupPreset(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeGlass = Theme{
		Name:       "glass",
		Primary:    lipgloss.Color("#e8e8f0"),
		Secondary:  lipgloss.Color("#9ad0ff"),
		Accent:     lipgloss.Color("#ffd580"),
		Background: lipgloss.Color("#101018"),
		Text:       lipgloss.Color("#f4f4f8"),
		Muted:      lipgloss.Color("#666688"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	// ThemeFrost leans on the cold tints bubbles pick up near the top edge.
	ThemeFrost = Theme{
		Name:       "frost",
		Primary:    lipgloss.Color("#cfe8ff"),
		Secondary:  lipgloss.Color("#7fb8e6"),
		Accent:     lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#0b1622"),
		Text:       lipgloss.Color("#eaf4ff"),
		Muted:      lipgloss.Color("#4f6d86"),
		Success:    lipgloss.Color("#8ff0d0"),
		Warning:    lipgloss.Color("#f0d68f"),
		Error:      lipgloss.Color("#f08f9a"),
	}

	ThemeDusk = Theme{
		Name:       "dusk",
		Primary:    lipgloss.Color("#f2d4e6"),
		Secondary:  lipgloss.Color("#c79bd8"),
		Accent:     lipgloss.Color("#ffc48a"),
		Background: lipgloss.Color("#1c1322"),
		Text:       lipgloss.Color("#fbeff5"),
		Muted:      lipgloss.Color("#7a6283"),
		Success:    lipgloss.Color("#a6e3a1"),
		Warning:    lipgloss.Color("#ffc48a"),
		Error:      lipgloss.Color("#f38ba8"),
	}

	// ThemeMono is for terminals without true color.
	ThemeMono = Theme{
		Name:       "mono",
		Primary:    lipgloss.Color("15"),
		Secondary:  lipgloss.Color("250"),
		Accent:     lipgloss.Color("15"),
		Background: lipgloss.Color("0"),
		Text:       lipgloss.Color("15"),
		Muted:      lipgloss.Color("244"),
		Success:    lipgloss.Color("15"),
		Warning:    lipgloss.Color("250"),
		Error:      lipgloss.Color("15"),
	}

	Themes = []Theme{
		ThemeGlass,
		ThemeFrost,
		ThemeDusk,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to glass.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeGlass
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames lists the available themes in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/drawerd/internal/model"
)

const panelWidth = 64

// Styles is the per-theme style set. The system theme resolves against the
// terminal's background at render time.
type Styles struct {
	Header   lipgloss.Style
	Panel    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Footer   lipgloss.Style
	Accent   lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style
	Alert    lipgloss.Style
	dark     bool
}

func StylesFor(theme model.Theme) Styles {
	dark := resolveDark(theme)
	accent := lipgloss.Color("12")
	dim := lipgloss.Color("8")
	if !dark {
		accent = lipgloss.Color("4")
		dim = lipgloss.Color("7")
	}
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Footer:   lipgloss.NewStyle().Foreground(dim),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Dim:      lipgloss.NewStyle().Foreground(dim),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Alert:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1).Foreground(lipgloss.Color("9")),
		dark:     dark,
	}
}

func resolveDark(theme model.Theme) bool {
	switch theme {
	case model.ThemeLight:
		return false
	case model.ThemeDark:
		return true
	default:
		return lipgloss.HasDarkBackground()
	}
}

type AppData struct {
	Header     string
	Body       string
	StatusLine string
	Footer     string
	Alert      string
	Side       model.DrawerSide
	Width      int
}

// RenderApp lays out the drawer panel, anchored to the configured side of
// the terminal when the window is wider than the panel.
func RenderApp(styles Styles, data AppData) string {
	panel := styles.Panel.Width(panelWidth).Render(data.Body)

	status := styles.Status.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = styles.Error.Render(data.StatusLine)
	}

	lines := []string{
		styles.Header.Render(data.Header),
		panel,
	}
	if data.Alert != "" {
		lines = append(lines, styles.Alert.Render(data.Alert))
	}
	if data.StatusLine != "" {
		lines = append(lines, status)
	}
	if data.Footer != "" {
		lines = append(lines, styles.Footer.Render(data.Footer))
	}
	out := strings.Join(lines, "\n")

	if data.Width > panelWidth+2 {
		pos := lipgloss.Left
		if data.Side == model.DrawerRight {
			pos = lipgloss.Right
		}
		out = lipgloss.PlaceHorizontal(data.Width, pos, out)
	}
	return out
}

// RenderMarkdown renders note content for the preview pane.
func (s Styles) RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if !s.dark {
		style = "light"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

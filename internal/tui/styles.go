package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the COLARE logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "C O L A R E" as a slow wave of purple light.
// Deep indigo (#241c6e) -> core purple (#4d3ef0) -> soft lavender (#b4acff).
func renderShimmerLogo(frame int) string {
	const text = "COLARE"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(36 + b*(180-36))
		g := clampByte(28 + b*(172-28))
		bl := clampByte(110 + b*(255-110))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles, zinc palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f4f5")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	// Brand accents
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7c6ff7"))

	violetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f4f5")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a")).
				Bold(true)

	// Banners
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7f1d1d")).
				Padding(0, 1)

	infoBannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac"))

	// Stat cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 2)

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f4f5")).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Background(lipgloss.Color("#27272a")).
			Padding(0, 1)

	avatarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#4d3ef0")).
			Bold(true).
			Padding(0, 1)

	unreadDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4d3ef0"))

	// Surface colors
	borderColor = lipgloss.Color("#3f3f46")

	// Selected row background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#27272a"))

	// Application and job status colors
	statusColors = map[string]lipgloss.Color{
		"submitted": lipgloss.Color("#fbbf24"),
		"reviewed":  lipgloss.Color("#60a5fa"),
		"accepted":  lipgloss.Color("#4ade80"),
		"rejected":  lipgloss.Color("#f87171"),
		"active":    lipgloss.Color("#4ade80"),
		"draft":     lipgloss.Color("#a1a1aa"),
		"closed":    lipgloss.Color("#71717a"),
	}
)

// StatusStyle returns a style colored for an application or job status.
func StatusStyle(status string) lipgloss.Style {
	if c, ok := statusColors[strings.ToLower(status)]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a"))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	path  string
}

var helpItems = []helpItem{
	{"Dashboard", "web dashboard", "/"},
	{"Tests", "manage tests", "/tests"},
	{"Candidates", "review candidates", "/candidates"},
	{"Create test", "test builder", "/create-test"},
}

// helpView renders the interactive help overlay with a cursor. Link paths
// are shown relative to webURL.
func helpView(cursor int, webURL string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7c6ff7")).
		Bold(true).
		Render("C O L A R E")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Hiring tests for hardware engineers.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7c6ff7"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"recruit", "Open the dashboard (interactive TUI)"},
		{"recruit login", "Store an API token"},
		{"recruit logout", "Clear your session"},
		{"recruit preview", "Preview a test offline"},
		{"recruit tests import", "Load sections from a file"},
		{"recruit version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, tagline)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		label := cmdStyle.Render(fmt.Sprintf("%-22s", item.label))
		prefix := "    "
		if i == cursor {
			label = selectedStyle.Render(fmt.Sprintf("%-22s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc+"  "+webLink(webURL, item.path)))
	}
	return b.String()
}

// webLink joins the web dashboard URL and a path.
func webLink(webURL, path string) string {
	return strings.TrimRight(webURL, "/") + path
}

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one key/description pair in the help footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// KeySection groups bindings under an optional title.
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-14s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderToolbar renders the tool list with the active tool highlighted:
// "[draw] select eraser duplicate slice"
func RenderToolbar(tools []string, active int, accent lipgloss.Color) string {
	activeStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	var out strings.Builder
	for i, name := range tools {
		if i > 0 {
			out.WriteString(" ")
		}
		if i == active {
			out.WriteString(activeStyle.Render("[" + name + "]"))
		} else {
			out.WriteString(" " + name + " ")
		}
	}
	return out.String()
}

// RenderStatusItem renders a "label:value" status bar fragment.
func RenderStatusItem(label, value string, muted lipgloss.Color) string {
	labelStyle := lipgloss.NewStyle().Foreground(muted)
	return labelStyle.Render(label+":") + value
}

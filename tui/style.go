package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusTarget = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("203")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleItems = lipgloss.NewStyle().
			Bold(true)

	styleNextDoor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleAttack = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleOutcome = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleComputer = lipgloss.NewStyle().
			Foreground(lipgloss.Color("177"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindItems
	kindNextDoor
	kindAttack
	kindOutcome
	kindComputer
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Can't do that:"):
		return kindError
	case strings.HasPrefix(line, "Game over:"),
		strings.HasSuffix(line, " wins!"),
		strings.Contains(line, " escapes! "):
		return kindOutcome
	case strings.HasPrefix(trimmed, "Items:"):
		return kindItems
	case strings.HasPrefix(line, "Next door"):
		return kindNextDoor
	case strings.Contains(line, "(computer) chooses to"):
		return kindComputer
	case strings.Contains(line, " attacks "),
		strings.Contains(line, "'s attack with "):
		return kindAttack
	default:
		return kindNarrative
	}
}

// styledItems renders "  Items: a (1), b (2)." with the item list bold.
func styledItems(line string) string {
	const label = "Items: "
	i := strings.Index(line, label)
	if i < 0 {
		return styleNarrative.Render(line)
	}
	cut := i + len(label)
	return styleNarrative.Render(line[:cut]) + styleItems.Render(line[cut:])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

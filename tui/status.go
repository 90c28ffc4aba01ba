package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/manorhunt/engine/snapshot"
)

// renderStatusBar produces a full-width status line: the current player and
// their room on the left; the target, the pet and the turn clock on the right.
func (m Model) renderStatusBar() string {
	left, target, rest := statusParts(m.engine.Snapshot(), m.width)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(target) - lipgloss.Width(rest)
	if gap < 0 {
		gap = 0
	}

	bar := styleStatusBar.Render(left+strings.Repeat(" ", gap)) +
		styleStatusTarget.Render(target) +
		styleStatusBar.Render(rest)
	return lipgloss.NewStyle().Width(m.width).Render(bar)
}

// statusParts splits the status line into the player section, the target
// section and the tail after it. The pet is dropped when width is too narrow.
func statusParts(s *snapshot.Snapshot, width int) (left, target, rest string) {
	left = " " + s.Manor
	if p, ok := s.CurrentPlayer(); ok {
		left = fmt.Sprintf(" %s @ %s | Items %d/%d", p.Name, s.RoomName(p.Room), len(p.Items), p.Capacity)
	}

	target = fmt.Sprintf("%s %dhp @ %s", s.Target.Name, s.Target.Health, s.RoomName(s.Target.Room))
	clock := fmt.Sprintf(" | T:%d/%d ", s.Turn, s.MaxTurns)
	rest = fmt.Sprintf(" | Pet @ %s", s.RoomName(s.Pet.Room)) + clock

	if lipgloss.Width(left)+lipgloss.Width(target)+lipgloss.Width(rest)+2 >= width {
		rest = clock
	}
	return left, target, rest
}

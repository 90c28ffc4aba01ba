// Package tui provides a Bubble Tea terminal UI for the manorhunt engine.
package tui

// History keeps the most recent commands for Up/Down recall.
type History struct {
	entries []string
	limit   int
	pos     int // len(entries) when not browsing
}

// NewHistory creates a history that remembers at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a command and stops browsing. Blank lines and repeats of the
// newest entry are not recorded.
func (h *History) Push(cmd string) {
	if cmd != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != cmd) {
		h.entries = append(h.entries, cmd)
		if over := len(h.entries) - h.limit; over > 0 {
			h.entries = h.entries[over:]
		}
	}
	h.ResetCursor()
}

// Prev steps back to an older command, stopping at the oldest one.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps forward. It reports false once it moves past the newest command,
// which means the input line should be cleared.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return "", false
	}
	return h.entries[h.pos], true
}

// ResetCursor stops browsing so the next Prev returns the newest command.
func (h *History) ResetCursor() {
	h.pos = len(h.entries)
}

// Len is the number of remembered commands.
func (h *History) Len() int {
	return len(h.entries)
}

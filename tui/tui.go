package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/manorhunt/cli"
	"github.com/nathoo/manorhunt/engine"
	"github.com/nathoo/manorhunt/engine/parser"
	"github.com/nathoo/manorhunt/engine/resolve"
	"github.com/nathoo/manorhunt/render"
	"github.com/nathoo/manorhunt/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the manorhunt TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
	mapCell  int
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
		mapCell: render.DefaultCell,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	m := New(eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text and plays
// any computer players who move first.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		s := m.engine.Snapshot()
		lines := cli.IntroLines(s)
		if len(s.Players) == 0 {
			lines = append(lines, "[Add players with /add name[:room[:capacity[:computer]]].]")
		}
		lines = append(lines, "")
		lines = append(lines, m.playComputers()...)
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		if strings.HasPrefix(input, "/add") {
			m = m.appendOutput(gameOutputMsg{lines: m.playComputers()})
		}
		return m, nil
	}

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	output := m.playCommand(input)
	output = append(output, m.playComputers()...)
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// playCommand runs one game command for the current player and returns the
// narration. Help, info and room descriptions are free.
func (m *Model) playCommand(input string) []string {
	if m.engine.IsTerminal() {
		return []string{"[The game is over. Type /quit to leave.]"}
	}

	cmd := parser.Parse(input)
	if cmd.Verb == parser.VerbHelp {
		return m.cmdHelp()
	}

	pid, ok := m.engine.CurrentPlayer()
	if !ok {
		return []string{"[No players yet. Add one with /add name[:room[:capacity[:computer]]].]"}
	}

	switch cmd.Verb {
	case parser.VerbInfo:
		return m.cmdInfo(pid, cmd.Arg)
	case parser.VerbRoom:
		return m.cmdRoom(pid, cmd.Arg)
	}

	in, err := resolve.Intent(m.engine.Snapshot(), pid, cmd)
	if err != nil {
		return []string{denied(err)}
	}
	report, err := m.engine.Apply(in)
	if err != nil {
		return []string{denied(err)}
	}
	return m.reportLines(report)
}

// playComputers lets computer players act until a human is up or the game
// ends.
func (m *Model) playComputers() []string {
	var lines []string
	for !m.engine.IsTerminal() {
		kind, ok := m.engine.CurrentKind()
		if !ok || kind != types.Computer {
			break
		}
		report, err := m.engine.PlayComputerTurn()
		if err != nil {
			lines = append(lines, denied(err))
			break
		}
		name := m.engine.Snapshot().Players[report.Player].Name
		lines = append(lines, fmt.Sprintf("%s (computer) chooses to %s.", name, report.Intent.Kind))
		lines = append(lines, m.reportLines(report)...)
	}
	if m.engine.IsTerminal() {
		if line := cli.OutcomeLine(m.engine.Snapshot()); line != "" && !m.announced() {
			lines = append(lines, line)
		}
	}
	return lines
}

// announced reports whether the outcome line was already printed.
func (m *Model) announced() bool {
	line := cli.OutcomeLine(m.engine.Snapshot())
	for _, rl := range m.rawLines {
		if rl.text == line {
			return true
		}
	}
	return false
}

func (m *Model) reportLines(r types.TurnReport) []string {
	lines := append([]string(nil), r.Output...)
	if m.trace {
		lines = append(lines, cli.TraceLines(r)...)
	}
	return lines
}

func denied(err error) string {
	return "Can't do that: " + err.Error()
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input == "" && len(msg.lines) == 0 {
		return m
	}
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindItems:
		return styledItems(line)
	case kindNextDoor:
		return styleNextDoor.Render(line)
	case kindAttack:
		return styleAttack.Render(line)
	case kindOutcome:
		return styleOutcome.Render(line)
	case kindComputer:
		return styleComputer.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(indent + word)
			lineLen = len(indent) + wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	arg := strings.TrimSpace(strings.TrimPrefix(input, cmd))

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/add":
		return m.cmdAdd(arg), false

	case "/players":
		return m.cmdPlayers(), false

	case "/state":
		return m.cmdState(), false

	case "/map":
		return m.cmdMap(arg), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdAdd(arg string) []string {
	spec, err := cli.ParsePlayerSpec(arg)
	if err != nil {
		return []string{denied(err)}
	}
	if _, err := cli.AddPlayer(m.engine, spec); err != nil {
		return []string{denied(err)}
	}
	s := m.engine.Snapshot()
	p := s.Players[len(s.Players)-1]
	return []string{fmt.Sprintf("%s (%s) joins in %s.", p.Name, p.Kind, s.RoomName(p.Room))}
}

func (m *Model) cmdPlayers() []string {
	s := m.engine.Snapshot()
	if len(s.Queue) == 0 {
		return []string{"No players yet."}
	}
	var out []string
	for i, id := range s.Queue {
		p := s.Players[id]
		turn := ""
		if i == 0 {
			turn = " (up next)"
		}
		out = append(out, fmt.Sprintf("%s (%s) in %s%s", p.Name, p.Kind, s.RoomName(p.Room), turn))
	}
	return out
}

func (m *Model) cmdInfo(pid types.PlayerID, name string) []string {
	if name != "" {
		found := false
		for _, p := range m.engine.Snapshot().Players {
			if strings.EqualFold(p.Name, name) {
				pid, found = types.PlayerID(p.ID), true
				break
			}
		}
		if !found {
			return []string{fmt.Sprintf("[No player named %q.]", name)}
		}
	}
	desc, err := m.engine.DescribePlayer(pid)
	if err != nil {
		return []string{denied(err)}
	}
	return []string{desc}
}

func (m *Model) cmdRoom(pid types.PlayerID, arg string) []string {
	s := m.engine.Snapshot()
	room := s.Players[pid].Room
	if arg != "" {
		r, err := resolve.Room(s, arg)
		if err != nil {
			return []string{denied(err)}
		}
		room = r
	}
	desc, err := m.engine.DescribeRoom(room)
	if err != nil {
		return []string{denied(err)}
	}
	return []string{desc}
}

func (m *Model) cmdState() []string {
	s := m.engine.Snapshot()
	output := []string{
		fmt.Sprintf("Session: %s", s.Session),
		fmt.Sprintf("Turn: %d/%d (%s)", s.Turn, s.MaxTurns, s.Status),
		fmt.Sprintf("Target: %s in room %d, health %d", s.Target.Name, s.Target.Room, s.Target.Health),
		fmt.Sprintf("Pet: %s in room %d", s.Pet.Name, s.Pet.Room),
	}
	for _, p := range s.Players {
		output = append(output, fmt.Sprintf("Player %d: %s (%s) in room %d, %d/%d items",
			p.ID, p.Name, p.Kind, p.Room, len(p.Items), p.Capacity))
	}
	return output
}

func (m *Model) cmdMap(path string) []string {
	if path == "" {
		path = cli.DefaultMapFile
	}
	if err := render.SavePNG(path, m.engine.Snapshot(), m.mapCell); err != nil {
		return []string{fmt.Sprintf("Map failed: %v", err)}
	}
	return []string{fmt.Sprintf("Map written to %s.", path)}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /add name[:room[:capacity[:computer]]]  Add a player",
		"  /players      Show the turn order",
		"  /map [file]   Save the map as PNG (default: " + cli.DefaultMapFile + ")",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"  /quit         Exit game",
		"  /help         Show this help",
		"",
		"Game commands (each one uses a turn):",
		"  move <room>            Move to a neighboring room (name or number)",
		"  pet <room>             Move the pet to any room (it wanders off next turn)",
		"  look (l)               Look around your room and next door",
		"  pick <item>            Pick up an item in your room",
		"  attack [item]          Attack the target (bare hands by default)",
		"",
		"Free commands:",
		"  info [player] (i)      Describe a player",
		"  room [room]            Describe a room",
		"  again (g)              Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

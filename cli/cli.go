// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the manorhunt engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gookit/color"

	"github.com/nathoo/manorhunt/engine"
	"github.com/nathoo/manorhunt/engine/parser"
	"github.com/nathoo/manorhunt/engine/resolve"
	"github.com/nathoo/manorhunt/engine/snapshot"
	"github.com/nathoo/manorhunt/render"
	"github.com/nathoo/manorhunt/types"
)

// DefaultMapFile is where /map writes when no file is given.
const DefaultMapFile = "manor.png"

var (
	colorSystem   = color.Style{color.FgGray, color.OpBold}
	colorDenied   = color.Style{color.FgRed, color.OpBold}
	colorComputer = color.Style{color.FgMagenta}
	colorWin      = color.Style{color.FgGreen, color.OpBold}
	colorTrace    = color.Style{color.FgBlue}
)

// CLI handles terminal interaction with the players.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	MapCell   int // pixel size of a grid cell for /map
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
	Color     bool // colour system and error lines
	lastCmd   string
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		MapCell: render.DefaultCell,
	}
}

// Run starts the game loop: computer players act on their own, human players
// are prompted for a command. It returns when the game ends, on /quit, or at
// the end of input.
func (c *CLI) Run() {
	c.printIntro()

	scanner := bufio.NewScanner(c.In)
	for {
		if c.Engine.IsTerminal() {
			c.printOutcome()
			return
		}
		if kind, ok := c.Engine.CurrentKind(); ok && kind == types.Computer {
			if !c.playComputer() {
				return
			}
			continue
		}

		c.print(c.prompt())
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.handleCommand(input)
	}
}

func (c *CLI) prompt() string {
	s := c.Engine.Snapshot()
	if p, ok := s.CurrentPlayer(); ok {
		return fmt.Sprintf("[%d/%d] %s> ", s.Turn+1, s.MaxTurns, p.Name)
	}
	return "> "
}

// handleCommand parses and plays one game command for the current player.
// Describe commands and help never consume a turn.
func (c *CLI) handleCommand(input string) {
	cmd := parser.Parse(input)
	if cmd.Verb == parser.VerbHelp {
		c.cmdHelp()
		return
	}

	pid, ok := c.Engine.CurrentPlayer()
	if !ok {
		c.printSystem("No players yet. Add one with /add name[:room[:capacity[:computer]]].")
		return
	}

	switch cmd.Verb {
	case parser.VerbInfo:
		c.cmdInfo(pid, cmd.Arg)
		return
	case parser.VerbRoom:
		c.cmdRoom(pid, cmd.Arg)
		return
	}

	in, err := resolve.Intent(c.Engine.Snapshot(), pid, cmd)
	if err != nil {
		c.printDenied(err)
		return
	}
	report, err := c.Engine.Apply(in)
	if err != nil {
		c.printDenied(err)
		return
	}
	c.printReport(report)
}

// playComputer runs one computer turn. It returns false if the engine
// refused, which ends the loop.
func (c *CLI) playComputer() bool {
	report, err := c.Engine.PlayComputerTurn()
	if err != nil {
		c.printDenied(err)
		return false
	}
	name := c.Engine.Snapshot().Players[report.Player].Name
	c.printLine(c.paint(colorComputer, fmt.Sprintf("%s (computer) chooses to %s.", name, report.Intent.Kind)))
	c.printReport(report)
	return true
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	arg := strings.TrimSpace(strings.TrimPrefix(input, cmd))

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/add":
		c.cmdAdd(arg)

	case "/players":
		c.cmdPlayers()

	case "/state":
		c.cmdState()

	case "/map":
		c.cmdMap(arg)

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdAdd(arg string) {
	spec, err := ParsePlayerSpec(arg)
	if err != nil {
		c.printDenied(err)
		return
	}
	if _, err := AddPlayer(c.Engine, spec); err != nil {
		c.printDenied(err)
		return
	}
	s := c.Engine.Snapshot()
	p := s.Players[len(s.Players)-1]
	c.printSystem(fmt.Sprintf("%s (%s) joins in %s.", p.Name, p.Kind, s.RoomName(p.Room)))
}

func (c *CLI) cmdPlayers() {
	s := c.Engine.Snapshot()
	if len(s.Queue) == 0 {
		c.printSystem("No players yet.")
		return
	}
	for i, id := range s.Queue {
		p := s.Players[id]
		marker := "  "
		if i == 0 {
			marker = "> "
		}
		c.printLine(fmt.Sprintf("%s%s (%s) in %s", marker, p.Name, p.Kind, s.RoomName(p.Room)))
	}
}

func (c *CLI) cmdInfo(pid types.PlayerID, name string) {
	if name != "" {
		s := c.Engine.Snapshot()
		found := false
		for _, p := range s.Players {
			if strings.EqualFold(p.Name, name) {
				pid, found = types.PlayerID(p.ID), true
				break
			}
		}
		if !found {
			c.printSystem(fmt.Sprintf("No player named %q.", name))
			return
		}
	}
	desc, err := c.Engine.DescribePlayer(pid)
	if err != nil {
		c.printDenied(err)
		return
	}
	c.printLine(desc)
}

func (c *CLI) cmdRoom(pid types.PlayerID, arg string) {
	s := c.Engine.Snapshot()
	room := s.Players[pid].Room
	if arg != "" {
		r, err := resolve.Room(s, arg)
		if err != nil {
			c.printDenied(err)
			return
		}
		room = r
	}
	desc, err := c.Engine.DescribeRoom(room)
	if err != nil {
		c.printDenied(err)
		return
	}
	c.printLine(desc)
}

func (c *CLI) cmdState() {
	data, err := c.Engine.Snapshot().JSON()
	if err != nil {
		c.printDenied(err)
		return
	}
	c.printLine(string(data))
}

func (c *CLI) cmdMap(path string) {
	if path == "" {
		path = DefaultMapFile
	}
	if err := render.SavePNG(path, c.Engine.Snapshot(), c.MapCell); err != nil {
		c.printDenied(err)
		return
	}
	c.printSystem(fmt.Sprintf("Map written to %s.", path))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /add name[:room[:capacity[:computer]]]  Add a player",
		"  /players      Show the turn order",
		"  /map [file]   Save the map as PNG (default: " + DefaultMapFile + ")",
		"  /state        Debug: dump current state as JSON",
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
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) printIntro() {
	s := c.Engine.Snapshot()
	for _, line := range IntroLines(s) {
		c.printLine(line)
	}
	if len(s.Players) == 0 {
		c.printSystem("Add players with /add name[:room[:capacity[:computer]]].")
	}
	c.printLine("")
}

func (c *CLI) printOutcome() {
	s := c.Engine.Snapshot()
	style := colorDenied
	if c.Engine.Outcome().Status == types.Won {
		style = colorWin
	}
	c.printLine(c.paint(style, OutcomeLine(s)))
}

// IntroLines describes the manor and the target at the start of a game.
func IntroLines(s *snapshot.Snapshot) []string {
	return []string{
		fmt.Sprintf("Welcome to %s.", s.Manor),
		fmt.Sprintf("%s (health %d) starts in %s. %s is with them.",
			s.Target.Name, s.Target.Health, s.RoomName(s.Target.Room), s.Pet.Name),
		fmt.Sprintf("The game ends after %d turns.", s.MaxTurns),
	}
}

// OutcomeLine announces how a finished game ended, or "" while it is running.
func OutcomeLine(s *snapshot.Snapshot) string {
	switch s.Status {
	case types.Won.String():
		return fmt.Sprintf("Game over: %s won on turn %d.", s.Winner, s.Turn)
	case types.Escaped.String():
		return fmt.Sprintf("Game over: %s escaped after %d turns.", s.Target.Name, s.Turn)
	}
	return ""
}

func (c *CLI) printReport(r types.TurnReport) {
	for _, line := range r.Output {
		c.printLine(line)
	}
	if c.Trace {
		c.printTrace(r)
	}
}

func (c *CLI) printTrace(r types.TurnReport) {
	for _, line := range TraceLines(r) {
		c.printLine(c.paint(colorTrace, line))
	}
}

// TraceLines formats a turn report's clock and events for debug output.
func TraceLines(r types.TurnReport) []string {
	lines := []string{fmt.Sprintf("[trace] turn %d, target in %d, pet in %d", r.Turn, r.TargetRoom, r.PetRoom)}
	for _, e := range r.Events {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, e.Data[k])
		}
		lines = append(lines, fmt.Sprintf("[trace]   %s %s", e.Type, strings.Join(parts, " ")))
	}
	return lines
}

func (c *CLI) printDenied(err error) {
	c.printLine(c.paint(colorDenied, "Can't do that: "+err.Error()))
}

func (c *CLI) paint(style color.Style, text string) string {
	if !c.Color {
		return text
	}
	return style.Sprint(text)
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	c.printLine(c.paint(colorSystem, "["+text+"]"))
}

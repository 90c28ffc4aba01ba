package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/manorhunt/engine"
	"github.com/nathoo/manorhunt/types"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"  Items: Knife (2), Poker (3).", kindItems},
		{"Next door (1): Parlor.", kindNextDoor},
		{"[Alice (human) joins in Kitchen.]", kindSystem},
		{"[trace] turn 1, target in 1, pet in 0", kindTrace},
		{"Can't do that: Study is not next to Kitchen", kindError},
		{"Alice attacks Doctor Lucky with Knife for 2 damage.", kindAttack},
		{"Alice's attack with Knife was seen by Bob. Doctor Lucky is unharmed.", kindAttack},
		{"Doctor Lucky is dead. Alice wins!", kindOutcome},
		{"Out of turns. Doctor Lucky escapes! Game over.", kindOutcome},
		{"Game over: Alice won on turn 4.", kindOutcome},
		{"Bot (computer) chooses to look.", kindComputer},
		{"Alice moves to Parlor.", kindNarrative},
		{"", kindNarrative},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"Doctor Lucky is in the Billiard Room with the Revolver.", 30,
			"Doctor Lucky is in the\nBilliard Room with the\nRevolver."},
		{"", 80, ""},
		{"one", 80, "one"},
		{"a b c d e", 3, "a b\nc d\ne"},
		{"  Items: Knife (2), Poker (3).", 20, "  Items: Knife (2),\nPoker (3)."},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("move parlor")
	h.Push("pick knife")

	for _, want := range []string{"pick knife", "move parlor", "look", "look"} {
		prev, ok := h.Prev()
		if !ok || prev != want {
			t.Errorf("expected %q, got %q (ok=%v)", want, prev, ok)
		}
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("move parlor")

	h.Prev() // "move parlor"
	h.Prev() // "look"

	next, ok := h.Next()
	if !ok || next != "move parlor" {
		t.Errorf("expected 'move parlor', got %q (ok=%v)", next, ok)
	}

	if _, ok = h.Next(); ok {
		t.Error("expected false when past newest entry")
	}
	if _, ok = h.Next(); ok {
		t.Error("expected false when already past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Prev(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	for _, want := range []string{"c", "b", "b"} {
		if prev, _ := h.Prev(); prev != want {
			t.Errorf("expected %q, got %q", want, prev)
		}
	}
}

func TestHistory_SkipsRepeatsAndBlanks(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look")
	h.Push("")
	h.Push("look")

	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}
}

func TestHistory_PushStopsBrowsing(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("move parlor")

	h.Prev()
	h.Prev()
	h.Push("attack")

	if prev, ok := h.Prev(); !ok || prev != "attack" {
		t.Errorf("expected 'attack' after push, got %q", prev)
	}
}

// testDef returns a three-room row: Kitchen | Parlor | Study.
func testDef() *types.ManorDef {
	return &types.ManorDef{
		Name:   "Cottage",
		Rows:   4,
		Cols:   12,
		Target: types.TargetDef{Name: "Doctor Lucky", Health: 2},
		Pet:    types.PetDef{Name: "Whiskers"},
		Rooms: []types.RoomDef{
			{Name: "Kitchen", Rect: types.Rect{RowStart: 0, ColStart: 0, RowEnd: 3, ColEnd: 3}},
			{Name: "Parlor", Rect: types.Rect{RowStart: 0, ColStart: 4, RowEnd: 3, ColEnd: 7}},
			{Name: "Study", Rect: types.Rect{RowStart: 0, ColStart: 8, RowEnd: 3, ColEnd: 11}},
		},
		Items: []types.ItemDef{
			{Name: "Knife", Damage: 2, Room: 0},
		},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	eng, err := engine.New(testDef(), engine.Config{MaxTurns: 10, Seed: 1})
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return New(eng)
}

// submit types a line and presses enter.
func submit(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func transcript(m Model) string {
	lines := make([]string, len(m.rawLines))
	for i, rl := range m.rawLines {
		lines[i] = rl.text
	}
	return strings.Join(lines, "\n")
}

func TestHandleMeta_Quit(t *testing.T) {
	m := newTestModel(t)

	if _, quit := m.handleMeta("/quit"); !quit {
		t.Error("expected quit=true for /quit")
	}
	if _, quit := m.handleMeta("/exit"); !quit {
		t.Error("expected quit=true for /exit")
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/add", "/map", "/quit", "move", "attack", "wanders off next turn"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m := newTestModel(t)

	output, _ := m.handleMeta("/trace")
	if !m.trace {
		t.Error("expected trace to be enabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "enabled") {
		t.Errorf("expected enabled message, got %v", output)
	}

	output, _ = m.handleMeta("/trace")
	if m.trace {
		t.Error("expected trace to be disabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "disabled") {
		t.Errorf("expected disabled message, got %v", output)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestHandleMeta_AddAndState(t *testing.T) {
	m := newTestModel(t)

	output, _ := m.handleMeta("/add Alice:parlor:2")
	if len(output) != 1 || output[0] != "Alice (human) joins in Parlor." {
		t.Errorf("unexpected /add output: %v", output)
	}

	joined := strings.Join(m.cmdState(), "\n")
	for _, want := range []string{"Turn: 0/10 (in progress)", "Target: Doctor Lucky in room 0, health 2", "Player 0: Alice (human) in room 1, 0/2 items"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in state output:\n%s", want, joined)
		}
	}

	output, _ = m.handleMeta("/add :kitchen")
	if len(output) != 1 || !strings.HasPrefix(output[0], "Can't do that:") {
		t.Errorf("expected rejection, got %v", output)
	}
}

func TestHandleMeta_Map(t *testing.T) {
	m := newTestModel(t)
	m.mapCell = 4
	path := filepath.Join(t.TempDir(), "map.png")

	output, _ := m.handleMeta("/map " + path)
	if len(output) != 1 || !strings.Contains(output[0], "Map written") {
		t.Errorf("unexpected /map output: %v", output)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("map not written: %v", err)
	}
}

func TestEnter_PlaysTurns(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "/add Alice")
	m = submit(t, m, "move parlor")
	m = submit(t, m, "move study")
	m = submit(t, m, "g")

	out := transcript(m)
	for _, want := range []string{
		"> move parlor",
		"Alice moves to Parlor.",
		"Doctor Lucky moves to Parlor.",
		"Alice moves to Study.",
		"Can't do that: Study is not next to Study",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in transcript:\n%s", want, out)
		}
	}
	if m.engine.Turn() != 2 {
		t.Errorf("turn = %d, want 2", m.engine.Turn())
	}
}

func TestEnter_ComputerFinishesGame(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "/add Bot:kitchen:3:computer")

	// With no human to wait for, the computer plays until the game ends.
	out := transcript(m)
	if !strings.Contains(out, "Bot (computer) chooses to attack.") {
		t.Errorf("expected the computer to attack first:\n%s", out)
	}
	if !m.engine.IsTerminal() {
		t.Fatal("expected the game to be over")
	}
	if strings.Count(out, "Game over:") != 1 {
		t.Errorf("outcome should be announced once:\n%s", out)
	}
}

func TestEnter_GameOver(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "/add Alice")
	m = submit(t, m, "pick knife")
	m = submit(t, m, "move parlor")
	m = submit(t, m, "move study")
	// Target: 0 -> 1 -> 2 -> 0. Alice waits in the Study for it to come back.
	for m.engine.Snapshot().Target.Room != 2 {
		m = submit(t, m, "look")
	}
	m = submit(t, m, "attack knife")
	m = submit(t, m, "look")

	out := transcript(m)
	for _, want := range []string{
		"Alice attacks Doctor Lucky with Knife for 2 damage.",
		"Doctor Lucky is dead. Alice wins!",
		"Game over: Alice won on turn",
		"[The game is over. Type /quit to leave.]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in transcript:\n%s", want, out)
		}
	}
	if strings.Count(out, "Game over: Alice won") != 1 {
		t.Error("outcome should be announced once")
	}
}

func TestStatusParts(t *testing.T) {
	m := newTestModel(t)
	m = submit(t, m, "/add Alice")

	left, target, rest := statusParts(m.engine.Snapshot(), 120)
	if left != " Alice @ Kitchen | Items 0/3" {
		t.Errorf("left = %q", left)
	}
	if target != "Doctor Lucky 2hp @ Kitchen" {
		t.Errorf("target = %q", target)
	}
	if rest != " | Pet @ Kitchen | T:0/10 " {
		t.Errorf("rest = %q", rest)
	}

	_, _, narrow := statusParts(m.engine.Snapshot(), 40)
	if narrow != " | T:0/10 " {
		t.Errorf("narrow rest = %q", narrow)
	}
}

// Package types defines the shared data structures for the manorhunt engine.
// This package contains only type definitions and trivial accessors, no rules.
package types

// Rect is a room's bounding box in grid cells, inclusive on both ends.
type Rect struct {
	RowStart int
	ColStart int
	RowEnd   int
	ColEnd   int
}

// Valid reports whether the rectangle is non-negative and not inverted.
func (r Rect) Valid() bool {
	return r.RowStart >= 0 && r.ColStart >= 0 &&
		r.RowStart <= r.RowEnd && r.ColStart <= r.ColEnd
}

// RoomDef is the load-time definition of a room. Its id is its index.
type RoomDef struct {
	Name string
	Rect Rect
}

// ItemDef is the load-time definition of an item.
type ItemDef struct {
	Name   string
	Damage int
	Room   int // index into ManorDef.Rooms
}

// TargetDef describes the character being pursued.
type TargetDef struct {
	Name   string
	Health int
}

// PetDef describes the target's pet.
type PetDef struct {
	Name string
}

// ManorDef is the complete, validated manor definition handed to the engine.
type ManorDef struct {
	Name   string
	Rows   int
	Cols   int
	Target TargetDef
	Pet    PetDef
	Rooms  []RoomDef
	Items  []ItemDef
}

// PlayerID identifies a player by its position in the engine's player arena.
type PlayerID int

// PlayerKind tags who drives a player's decisions.
type PlayerKind int

const (
	Human PlayerKind = iota
	Computer
)

func (k PlayerKind) String() string {
	if k == Computer {
		return "computer"
	}
	return "human"
}

// IntentKind enumerates the actions a player can take on their turn.
type IntentKind int

const (
	IntentMove IntentKind = iota
	IntentMovePet
	IntentLook
	IntentPick
	IntentAttack
)

func (k IntentKind) String() string {
	switch k {
	case IntentMove:
		return "move"
	case IntentMovePet:
		return "move-pet"
	case IntentLook:
		return "look"
	case IntentPick:
		return "pick"
	case IntentAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// BareHands is the attack item index meaning "no item".
const BareHands = -1

// Intent is one requested action for a player.
type Intent struct {
	Player PlayerID
	Kind   IntentKind
	Room   int // Move, MovePet
	Index  int // Pick: room item index; Attack: held item index or BareHands
}

// Move builds a move intent.
func Move(p PlayerID, room int) Intent { return Intent{Player: p, Kind: IntentMove, Room: room} }

// MovePet builds a move-pet intent.
func MovePet(p PlayerID, room int) Intent { return Intent{Player: p, Kind: IntentMovePet, Room: room} }

// Look builds a look-around intent.
func Look(p PlayerID) Intent { return Intent{Player: p, Kind: IntentLook} }

// Pick builds a pick-item intent.
func Pick(p PlayerID, index int) Intent { return Intent{Player: p, Kind: IntentPick, Index: index} }

// Attack builds an attack intent. Use BareHands for an unarmed attempt.
func Attack(p PlayerID, index int) Intent { return Intent{Player: p, Kind: IntentAttack, Index: index} }

// Status is the game's terminal state machine.
type Status int

const (
	InProgress Status = iota
	Won
	Escaped
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Escaped:
		return "escaped"
	default:
		return "in progress"
	}
}

// Outcome is the current game status. Winner is meaningful only when Won.
type Outcome struct {
	Status Status
	Winner PlayerID
}

// Terminal reports whether no further actions are accepted.
func (o Outcome) Terminal() bool {
	return o.Status != InProgress
}

// Event is emitted for every observable change during a turn.
type Event struct {
	Type string
	Data map[string]any
}

// ItemView is an item as shown to players.
type ItemView struct {
	Name   string
	Damage int
}

// RoomView is what a player can observe of one room.
type RoomView struct {
	ID        int
	Name      string
	Items     []ItemView
	Occupants []string
	HasTarget bool
	HasPet    bool
	Obscured  bool // occupants hidden by the pet
}

// LookReport is the result of looking around from a room.
type LookReport struct {
	Here      RoomView
	Neighbors []RoomView
}

// AttackReport describes an attack attempt.
type AttackReport struct {
	Weapon    string
	Damage    int
	Witnesses []string
	Succeeded bool
	Health    int // target health after the attempt
}

// TurnReport is the output of one accepted action.
type TurnReport struct {
	Turn       int // turn counter after the action
	Player     PlayerID
	Intent     Intent
	Output     []string
	Events     []Event
	Look       *LookReport
	Attack     *AttackReport
	TargetRoom int
	PetRoom    int
	Outcome    Outcome
}

// Command is a parsed line of player input, before name resolution.
type Command struct {
	Verb string
	Arg  string // optional
}

// Package snapshot builds immutable, JSON-serializable copies of the world
// for front ends to read between turns.
package snapshot

import (
	"encoding/json"

	"github.com/nathoo/manorhunt/engine/world"
	"github.com/nathoo/manorhunt/types"
)

// Snapshot is a point-in-time copy of the game.
type Snapshot struct {
	Session  string   `json:"session"`
	Manor    string   `json:"manor"`
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
	Turn     int      `json:"turn"`
	MaxTurns int      `json:"max_turns"`
	Status   string   `json:"status"`
	Winner   string   `json:"winner,omitempty"`
	Current  int      `json:"current"` // -1 when no players
	Queue    []int    `json:"queue"`
	Target   Target   `json:"target"`
	Pet      Pet      `json:"pet"`
	Rooms    []Room   `json:"rooms"`
	Players  []Player `json:"players"`
}

// Target is the pursued character.
type Target struct {
	Name   string `json:"name"`
	Room   int    `json:"room"`
	Health int    `json:"health"`
}

// Pet is the target's pet.
type Pet struct {
	Name string `json:"name"`
	Room int    `json:"room"`
}

// Item is an item in a room or an inventory.
type Item struct {
	Name   string `json:"name"`
	Damage int    `json:"damage"`
}

// Room is one room with its contents.
type Room struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Rect      types.Rect `json:"rect"`
	Items     []Item     `json:"items"`
	Occupants []int      `json:"occupants"`
	Neighbors []int      `json:"neighbors"`
}

// Player is one player and their inventory.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Room     int    `json:"room"`
	Capacity int    `json:"capacity"`
	Items    []Item `json:"items"`
}

// Meta carries the engine-owned state that the world does not hold.
type Meta struct {
	Session  string
	Turn     int
	MaxTurns int
	Outcome  types.Outcome
	Queue    []types.PlayerID
}

// Take copies the world. The result shares no memory with it.
func Take(w *world.World, m Meta) *Snapshot {
	s := &Snapshot{
		Session:  m.Session,
		Manor:    w.Name,
		Rows:     w.Rows,
		Cols:     w.Cols,
		Turn:     m.Turn,
		MaxTurns: m.MaxTurns,
		Status:   m.Outcome.Status.String(),
		Current:  -1,
		Queue:    make([]int, 0, len(m.Queue)),
		Target:   Target{Name: w.Target.Name, Room: w.Target.Room, Health: w.Target.Health},
		Pet:      Pet{Name: w.Pet.Name, Room: w.Pet.Room},
		Rooms:    make([]Room, 0, len(w.Rooms)),
		Players:  make([]Player, 0, len(w.Players)),
	}
	for _, id := range m.Queue {
		s.Queue = append(s.Queue, int(id))
	}
	if len(s.Queue) > 0 {
		s.Current = s.Queue[0]
	}
	if m.Outcome.Status == types.Won {
		if p, err := w.Player(m.Outcome.Winner); err == nil {
			s.Winner = p.Name
		}
	}

	for _, r := range w.Rooms {
		room := Room{
			ID:        r.ID,
			Name:      r.Name,
			Rect:      r.Rect,
			Items:     items(w, r.Items),
			Occupants: make([]int, 0, len(r.Occupants)),
			Neighbors: w.SortedNeighbors(r.ID),
		}
		for _, id := range r.Occupants {
			room.Occupants = append(room.Occupants, int(id))
		}
		s.Rooms = append(s.Rooms, room)
	}
	for _, p := range w.Players {
		s.Players = append(s.Players, Player{
			ID:       int(p.ID),
			Name:     p.Name,
			Kind:     p.Kind.String(),
			Room:     p.Room,
			Capacity: p.Capacity,
			Items:    items(w, p.Items),
		})
	}
	return s
}

func items(w *world.World, ids []int) []Item {
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, Item{Name: w.Items[id].Name, Damage: w.Items[id].Damage})
	}
	return out
}

// CurrentPlayer returns the player whose turn it is.
func (s *Snapshot) CurrentPlayer() (Player, bool) {
	if s.Current < 0 || s.Current >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.Current], true
}

// RoomName returns a room's name, or "" for an unknown id.
func (s *Snapshot) RoomName(id int) string {
	if id < 0 || id >= len(s.Rooms) {
		return ""
	}
	return s.Rooms[id].Name
}

// JSON serializes the snapshot for debugging output.
func (s *Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a snapshot produced by JSON.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Queue == nil {
		s.Queue = []int{}
	}
	return &s, nil
}

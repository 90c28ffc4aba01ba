// Package world owns the mutable manor state: rooms, items, players, the
// target and the pet. Rooms refer to players and neighbors by integer id only;
// the World slices are the single owners.
package world

import (
	"errors"
	"sort"
	"strings"

	"github.com/samber/oops"
	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/manorhunt/engine/geometry"
	"github.com/nathoo/manorhunt/types"
)

var (
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrInvalidAdjacency = errors.New("invalid adjacency")
	ErrInventoryFull    = errors.New("inventory full")
	ErrDuplicatePlayer  = errors.New("duplicate player")
)

// NoHolder marks an item that lies in a room.
const NoHolder types.PlayerID = -1

// Room is a space in the manor.
type Room struct {
	ID        int
	Name      string
	Rect      types.Rect
	Items     []int            // item ids, in load order
	Occupants []types.PlayerID // in arrival order
	Neighbors mapset.Set[int]
}

// Item is a weapon. Room is where it was placed at load time.
type Item struct {
	ID     int
	Name   string
	Damage int
	Room   int
	Holder types.PlayerID
	Used   bool // consumed by an attack, out of play
}

// Player is a human- or computer-controlled participant.
type Player struct {
	ID       types.PlayerID
	Name     string
	Kind     types.PlayerKind
	Room     int
	Capacity int
	Items    []int // pick order
}

// Full reports whether the player can carry nothing more.
func (p *Player) Full() bool {
	return len(p.Items) >= p.Capacity
}

// Target is the character being pursued.
type Target struct {
	Name   string
	Room   int
	Health int
}

// Pet suppresses visibility of the room it is in.
type Pet struct {
	Name  string
	Room  int
	route []int
}

// World is the complete mutable game world.
type World struct {
	Name    string
	Rows    int
	Cols    int
	Rooms   []*Room
	Items   []*Item
	Players []*Player
	Target  Target
	Pet     Pet
}

// New builds a world from a manor definition. The target and pet start in
// room 0; adjacency is derived once here.
func New(def *types.ManorDef) (*World, error) {
	if len(def.Rooms) == 0 {
		return nil, oops.In("world").Errorf("manor %q has no rooms", def.Name)
	}

	rects := make([]types.Rect, len(def.Rooms))
	for i, r := range def.Rooms {
		rects[i] = r.Rect
	}
	neighbors := geometry.Neighbors(rects)

	w := &World{
		Name:   def.Name,
		Rows:   def.Rows,
		Cols:   def.Cols,
		Target: Target{Name: def.Target.Name, Room: 0, Health: def.Target.Health},
		Pet:    Pet{Name: def.Pet.Name, Room: 0},
	}
	for i, r := range def.Rooms {
		w.Rooms = append(w.Rooms, &Room{
			ID:        i,
			Name:      r.Name,
			Rect:      r.Rect,
			Items:     []int{},
			Occupants: []types.PlayerID{},
			Neighbors: neighbors[i],
		})
	}
	for i, it := range def.Items {
		if it.Room < 0 || it.Room >= len(w.Rooms) {
			return nil, oops.In("world").With("item", it.Name).
				Wrapf(ErrOutOfBounds, "item %q placed in room %d", it.Name, it.Room)
		}
		w.Items = append(w.Items, &Item{
			ID:     i,
			Name:   it.Name,
			Damage: it.Damage,
			Room:   it.Room,
			Holder: NoHolder,
		})
		w.Rooms[it.Room].Items = append(w.Rooms[it.Room].Items, i)
	}
	w.Pet.route = w.petRoute(0)
	return w, nil
}

// Room returns the room with the given id.
func (w *World) Room(id int) (*Room, error) {
	if id < 0 || id >= len(w.Rooms) {
		return nil, oops.In("world").With("room", id).
			Wrapf(ErrOutOfBounds, "room %d (manor has %d rooms)", id, len(w.Rooms))
	}
	return w.Rooms[id], nil
}

// Player returns the player with the given id.
func (w *World) Player(id types.PlayerID) (*Player, error) {
	if id < 0 || int(id) >= len(w.Players) {
		return nil, oops.In("world").With("player", int(id)).
			Wrapf(ErrOutOfBounds, "player %d", id)
	}
	return w.Players[id], nil
}

// PlayerByName finds a player case-insensitively.
func (w *World) PlayerByName(name string) (*Player, bool) {
	for _, p := range w.Players {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// AddPlayer places a new player in a room. Names must be unique and the
// capacity positive.
func (w *World) AddPlayer(name string, room, capacity int, kind types.PlayerKind) (types.PlayerID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, oops.In("world").Errorf("player name is required")
	}
	if _, dup := w.PlayerByName(name); dup {
		return 0, oops.In("world").With("player", name).
			Wrapf(ErrDuplicatePlayer, "player %q", name)
	}
	if capacity < 1 {
		return 0, oops.In("world").With("capacity", capacity).
			Wrapf(ErrOutOfBounds, "capacity %d must be at least 1", capacity)
	}
	r, err := w.Room(room)
	if err != nil {
		return 0, err
	}

	id := types.PlayerID(len(w.Players))
	w.Players = append(w.Players, &Player{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Room:     room,
		Capacity: capacity,
		Items:    []int{},
	})
	r.Occupants = append(r.Occupants, id)
	return id, nil
}

// SortedNeighbors returns a room's neighbor ids in ascending order.
func (w *World) SortedNeighbors(room int) []int {
	if room < 0 || room >= len(w.Rooms) {
		return nil
	}
	ids := make([]int, 0, w.Rooms[room].Neighbors.Size())
	w.Rooms[room].Neighbors.Each(func(id int) {
		ids = append(ids, id)
	})
	sort.Ints(ids)
	return ids
}

// IsNeighbor reports whether two rooms share an edge.
func (w *World) IsNeighbor(a, b int) bool {
	if a < 0 || a >= len(w.Rooms) {
		return false
	}
	return w.Rooms[a].Neighbors.Has(b)
}

// AdvanceTarget moves the target one step along its cycle and returns the
// new room.
func (w *World) AdvanceTarget() int {
	if w.Target.Room >= len(w.Rooms)-1 {
		w.Target.Room = 0
	} else {
		w.Target.Room++
	}
	return w.Target.Room
}

// DamageTarget applies damage and returns the remaining health. Health may
// drop below zero.
func (w *World) DamageTarget(amount int) int {
	w.Target.Health -= amount
	return w.Target.Health
}

func removeID[T comparable](ids []T, id T) []T {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

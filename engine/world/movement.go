package world

import (
	"github.com/samber/oops"

	"github.com/nathoo/manorhunt/types"
)

// MovePlayer moves a player to an adjacent room. Nothing changes on error.
func (w *World) MovePlayer(pid types.PlayerID, room int) error {
	p, err := w.Player(pid)
	if err != nil {
		return err
	}
	to, err := w.Room(room)
	if err != nil {
		return err
	}
	if !w.IsNeighbor(p.Room, room) {
		return oops.In("world").With("from", p.Room).With("to", room).
			Wrapf(ErrInvalidAdjacency, "%s is not next to %s", to.Name, w.Rooms[p.Room].Name)
	}

	from := w.Rooms[p.Room]
	from.Occupants = removeID(from.Occupants, pid)
	to.Occupants = append(to.Occupants, pid)
	p.Room = room
	return nil
}

// MovePet places the pet in any room and restarts its wandering route there.
func (w *World) MovePet(room int) error {
	if _, err := w.Room(room); err != nil {
		return err
	}
	w.Pet.Room = room
	w.Pet.route = w.petRoute(room)
	return nil
}

// PickItem moves the item at index in the player's room into the player's
// inventory.
func (w *World) PickItem(pid types.PlayerID, index int) (*Item, error) {
	p, err := w.Player(pid)
	if err != nil {
		return nil, err
	}
	room := w.Rooms[p.Room]
	if index < 0 || index >= len(room.Items) {
		return nil, oops.In("world").With("index", index).
			Wrapf(ErrOutOfBounds, "item %d (%s has %d items)", index, room.Name, len(room.Items))
	}
	if p.Full() {
		return nil, oops.In("world").With("player", p.Name).
			Wrapf(ErrInventoryFull, "%s already carries %d items", p.Name, p.Capacity)
	}

	id := room.Items[index]
	room.Items = append(room.Items[:index], room.Items[index+1:]...)
	p.Items = append(p.Items, id)
	w.Items[id].Holder = pid
	return w.Items[id], nil
}

// HeldItem returns the item at index in the player's inventory.
func (w *World) HeldItem(pid types.PlayerID, index int) (*Item, error) {
	p, err := w.Player(pid)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Items) {
		return nil, oops.In("world").With("index", index).
			Wrapf(ErrOutOfBounds, "held item %d (%s carries %d)", index, p.Name, len(p.Items))
	}
	return w.Items[p.Items[index]], nil
}

// ConsumeItem removes a held item from play permanently.
func (w *World) ConsumeItem(pid types.PlayerID, index int) (*Item, error) {
	it, err := w.HeldItem(pid, index)
	if err != nil {
		return nil, err
	}
	p := w.Players[pid]
	p.Items = append(p.Items[:index], p.Items[index+1:]...)
	it.Holder = NoHolder
	it.Used = true
	return it, nil
}

// BestHeldItem returns the index of the player's highest-damage item, the
// earliest picked on ties, or -1 when empty-handed.
func (w *World) BestHeldItem(pid types.PlayerID) int {
	p, err := w.Player(pid)
	if err != nil {
		return -1
	}
	return bestIndex(w.Items, p.Items)
}

// BestRoomItem returns the index of the highest-damage item in a room, the
// lowest index on ties, or -1 when the room is empty.
func (w *World) BestRoomItem(room int) int {
	r, err := w.Room(room)
	if err != nil {
		return -1
	}
	return bestIndex(w.Items, r.Items)
}

func bestIndex(items []*Item, ids []int) int {
	best := -1
	for i, id := range ids {
		if best == -1 || items[id].Damage > items[ids[best]].Damage {
			best = i
		}
	}
	return best
}

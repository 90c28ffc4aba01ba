package world

import (
	"fmt"
	"strings"

	"github.com/nathoo/manorhunt/types"
)

// CanSee reports whether a player can see into a room: they are inside it,
// or next to it while the pet is not there.
func (w *World) CanSee(observer types.PlayerID, room int) bool {
	p, err := w.Player(observer)
	if err != nil {
		return false
	}
	if p.Room == room {
		return true
	}
	return w.IsNeighbor(p.Room, room) && w.Pet.Room != room
}

// Witnesses returns every other player who can see the given player's room.
func (w *World) Witnesses(pid types.PlayerID) []types.PlayerID {
	p, err := w.Player(pid)
	if err != nil {
		return nil
	}
	var seen []types.PlayerID
	for _, other := range w.Players {
		if other.ID == pid {
			continue
		}
		if w.CanSee(other.ID, p.Room) {
			seen = append(seen, other.ID)
		}
	}
	return seen
}

// LookAround describes the player's room and every neighboring room. The
// occupants of a neighbor holding the pet are obscured.
func (w *World) LookAround(pid types.PlayerID) (types.LookReport, error) {
	p, err := w.Player(pid)
	if err != nil {
		return types.LookReport{}, err
	}
	report := types.LookReport{Here: w.roomView(p.Room, pid, false)}
	for _, n := range w.SortedNeighbors(p.Room) {
		report.Neighbors = append(report.Neighbors, w.roomView(n, pid, w.Pet.Room == n))
	}
	return report, nil
}

// roomView renders one room as seen by viewer. The viewer is left out of the
// occupant list.
func (w *World) roomView(room int, viewer types.PlayerID, obscured bool) types.RoomView {
	r := w.Rooms[room]
	v := types.RoomView{
		ID:       r.ID,
		Name:     r.Name,
		Items:    w.itemViews(r.Items),
		HasPet:   w.Pet.Room == room,
		Obscured: obscured,
	}
	if obscured {
		return v
	}
	v.HasTarget = w.Target.Room == room
	for _, id := range r.Occupants {
		if id == viewer {
			continue
		}
		v.Occupants = append(v.Occupants, w.Players[id].Name)
	}
	return v
}

func (w *World) itemViews(ids []int) []types.ItemView {
	views := make([]types.ItemView, 0, len(ids))
	for _, id := range ids {
		views = append(views, types.ItemView{Name: w.Items[id].Name, Damage: w.Items[id].Damage})
	}
	return views
}

// DescribeRoom returns a free-standing description of a room, ignoring the
// pet. It is a map-level view, not a player's view.
func (w *World) DescribeRoom(room int) (string, error) {
	r, err := w.Room(room)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (room %d)", r.Name, r.ID)
	if len(r.Items) > 0 {
		b.WriteString(". Items: " + JoinItems(w.itemViews(r.Items)))
	}
	names := make([]string, 0, len(r.Occupants))
	for _, id := range r.Occupants {
		names = append(names, w.Players[id].Name)
	}
	if len(names) > 0 {
		b.WriteString(". Players: " + strings.Join(names, ", "))
	}
	neighbors := w.SortedNeighbors(room)
	if len(neighbors) > 0 {
		var ns []string
		for _, n := range neighbors {
			ns = append(ns, fmt.Sprintf("%s (%d)", w.Rooms[n].Name, n))
		}
		b.WriteString(". Neighbors: " + strings.Join(ns, ", "))
	}
	b.WriteString(".")
	return b.String(), nil
}

// DescribePlayer summarizes a player's location and inventory.
func (w *World) DescribePlayer(pid types.PlayerID) (string, error) {
	p, err := w.Player(pid)
	if err != nil {
		return "", err
	}
	carrying := "nothing"
	if len(p.Items) > 0 {
		carrying = JoinItems(w.itemViews(p.Items))
	}
	return fmt.Sprintf("%s (%s) is in %s carrying %s [%d/%d].",
		p.Name, p.Kind, w.Rooms[p.Room].Name, carrying, len(p.Items), p.Capacity), nil
}

// JoinItems formats items as "Name (damage), ...".
func JoinItems(items []types.ItemView) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s (%d)", it.Name, it.Damage)
	}
	return strings.Join(parts, ", ")
}

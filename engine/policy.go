package engine

import (
	"github.com/nathoo/manorhunt/engine/world"
	"github.com/nathoo/manorhunt/types"
)

// Decide chooses a computer player's action. In priority order:
//  1. attack when sharing the target's room unseen, with the strongest held
//     item or bare hands;
//  2. pick up the strongest item in the room while there is space to carry it;
//  3. look around or move to a random neighbor, one draw each from rng.
//
// The same world and the same rng sequence always produce the same intent.
func Decide(w *world.World, pid types.PlayerID, rng Source) types.Intent {
	p := w.Players[pid]

	if p.Room == w.Target.Room && len(w.Witnesses(pid)) == 0 {
		best := w.BestHeldItem(pid)
		if best < 0 {
			best = types.BareHands
		}
		return types.Attack(pid, best)
	}

	if idx := w.BestRoomItem(p.Room); idx >= 0 && !p.Full() {
		return types.Pick(pid, idx)
	}

	neighbors := w.SortedNeighbors(p.Room)
	if len(neighbors) == 0 || rng.Intn(2) == 0 {
		return types.Look(pid)
	}
	return types.Move(pid, neighbors[rng.Intn(len(neighbors))])
}

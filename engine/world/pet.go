package world

import "github.com/zyedidia/generic/mapset"

// petRoute returns a depth-first walk of the rooms reachable from start,
// neighbors taken in id order. Backtracking steps are included, so every
// step moves the pet to an adjacent room and the walk ends back at start.
func (w *World) petRoute(start int) []int {
	visited := mapset.New[int]()
	var route []int

	var walk func(room int)
	walk = func(room int) {
		visited.Put(room)
		for _, n := range w.SortedNeighbors(room) {
			if visited.Has(n) {
				continue
			}
			route = append(route, n)
			walk(n)
			route = append(route, room)
		}
	}
	walk(start)
	return route
}

// AdvancePet moves the pet one step along its route, starting a new walk
// from its current room once the route is used up. A pet in a room with no
// neighbors stays put.
func (w *World) AdvancePet() int {
	if len(w.Pet.route) == 0 {
		w.Pet.route = w.petRoute(w.Pet.Room)
	}
	if len(w.Pet.route) == 0 {
		return w.Pet.Room
	}
	w.Pet.Room = w.Pet.route[0]
	w.Pet.route = w.Pet.route[1:]
	return w.Pet.Room
}

// PetRoute returns a copy of the remaining route.
func (w *World) PetRoute() []int {
	return append([]int(nil), w.Pet.route...)
}

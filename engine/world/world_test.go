package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/manorhunt/types"
)

// sampleDef is the south-east corner of the classic mansion: Carriage House
// touches nothing, the other four form a connected block.
//
//	0 Armory: 1, 3, 4
//	1 Billiard Room: 0, 3
//	2 Carriage House: -
//	3 Dining Hall: 0, 1, 4
//	4 Drawing Room: 0, 3
func sampleDef() *types.ManorDef {
	return &types.ManorDef{
		Name:   "Doctor Lucky's Mansion",
		Rows:   36,
		Cols:   30,
		Target: types.TargetDef{Name: "Doctor Lucky", Health: 50},
		Pet:    types.PetDef{Name: "Fortune the Cat"},
		Rooms: []types.RoomDef{
			{Name: "Armory", Rect: types.Rect{RowStart: 22, ColStart: 19, RowEnd: 23, ColEnd: 26}},
			{Name: "Billiard Room", Rect: types.Rect{RowStart: 16, ColStart: 21, RowEnd: 21, ColEnd: 28}},
			{Name: "Carriage House", Rect: types.Rect{RowStart: 28, ColStart: 0, RowEnd: 35, ColEnd: 5}},
			{Name: "Dining Hall", Rect: types.Rect{RowStart: 12, ColStart: 11, RowEnd: 21, ColEnd: 20}},
			{Name: "Drawing Room", Rect: types.Rect{RowStart: 22, ColStart: 13, RowEnd: 25, ColEnd: 18}},
		},
		Items: []types.ItemDef{
			{Name: "Revolver", Damage: 3, Room: 0},
			{Name: "Billiard Cue", Damage: 2, Room: 1},
			{Name: "Letter Opener", Damage: 3, Room: 0},
			{Name: "Chain Saw", Damage: 4, Room: 2},
		},
	}
}

func newSample(t *testing.T) *World {
	t.Helper()
	w, err := New(sampleDef())
	require.NoError(t, err)
	return w
}

func TestNew(t *testing.T) {
	w := newSample(t)

	require.Len(t, w.Rooms, 5)
	assert.Equal(t, []int{0, 2}, w.Rooms[0].Items)
	assert.Equal(t, []int{3}, w.Rooms[2].Items)
	assert.Equal(t, 0, w.Target.Room)
	assert.Equal(t, 50, w.Target.Health)
	assert.Equal(t, 0, w.Pet.Room)
	assert.Equal(t, "Fortune the Cat", w.Pet.Name)
	assert.Equal(t, []int{1, 3, 4}, w.SortedNeighbors(0))
	assert.Empty(t, w.SortedNeighbors(2))
	for _, it := range w.Items {
		assert.Equal(t, NoHolder, it.Holder)
	}
}

func TestNew_NoRooms(t *testing.T) {
	def := sampleDef()
	def.Rooms = nil
	_, err := New(def)
	assert.Error(t, err)
}

func TestNew_ItemInMissingRoom(t *testing.T) {
	def := sampleDef()
	def.Items[0].Room = 9
	_, err := New(def)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestAddPlayer(t *testing.T) {
	w := newSample(t)

	a, err := w.AddPlayer("Alice", 0, 2, types.Human)
	require.NoError(t, err)
	b, err := w.AddPlayer("Bot", 3, 1, types.Computer)
	require.NoError(t, err)

	assert.Equal(t, types.PlayerID(0), a)
	assert.Equal(t, types.PlayerID(1), b)
	assert.Equal(t, []types.PlayerID{a}, w.Rooms[0].Occupants)
	assert.Equal(t, []types.PlayerID{b}, w.Rooms[3].Occupants)

	_, err = w.AddPlayer("alice", 1, 2, types.Human)
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
	_, err = w.AddPlayer("Carol", 7, 2, types.Human)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = w.AddPlayer("Dave", 0, 0, types.Human)
	assert.Error(t, err)
	_, err = w.AddPlayer("  ", 0, 1, types.Human)
	assert.Error(t, err)
	assert.Len(t, w.Players, 2)
}

func TestMovePlayer(t *testing.T) {
	w := newSample(t)
	a, _ := w.AddPlayer("Alice", 0, 2, types.Human)

	require.NoError(t, w.MovePlayer(a, 1))
	assert.Equal(t, 1, w.Players[a].Room)
	assert.Empty(t, w.Rooms[0].Occupants)
	assert.Equal(t, []types.PlayerID{a}, w.Rooms[1].Occupants)

	err := w.MovePlayer(a, 4)
	assert.ErrorIs(t, err, ErrInvalidAdjacency)
	assert.Equal(t, 1, w.Players[a].Room)

	err = w.MovePlayer(a, 12)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	err = w.MovePlayer(a, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, []types.PlayerID{a}, w.Rooms[1].Occupants)
}

func TestMovePet_AnyRoom(t *testing.T) {
	w := newSample(t)

	require.NoError(t, w.MovePet(2))
	assert.Equal(t, 2, w.Pet.Room)
	require.NoError(t, w.MovePet(4))
	assert.Equal(t, 4, w.Pet.Room)
	assert.ErrorIs(t, w.MovePet(5), ErrOutOfBounds)
	assert.Equal(t, 4, w.Pet.Room)
}

func TestPickItem(t *testing.T) {
	w := newSample(t)
	a, _ := w.AddPlayer("Alice", 0, 1, types.Human)

	it, err := w.PickItem(a, 1)
	require.NoError(t, err)
	assert.Equal(t, "Letter Opener", it.Name)
	assert.Equal(t, []int{0}, w.Rooms[0].Items)
	assert.Equal(t, []int{2}, w.Players[a].Items)
	assert.Equal(t, a, it.Holder)

	_, err = w.PickItem(a, 0)
	assert.ErrorIs(t, err, ErrInventoryFull)
	assert.Equal(t, []int{0}, w.Rooms[0].Items)

	_, err = w.PickItem(a, 3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestConsumeItem(t *testing.T) {
	w := newSample(t)
	a, _ := w.AddPlayer("Alice", 0, 3, types.Human)
	_, err := w.PickItem(a, 0)
	require.NoError(t, err)

	it, err := w.ConsumeItem(a, 0)
	require.NoError(t, err)
	assert.Equal(t, "Revolver", it.Name)
	assert.True(t, it.Used)
	assert.Empty(t, w.Players[a].Items)
	assert.Equal(t, []int{2}, w.Rooms[0].Items, "a used item never returns to a room")

	_, err = w.ConsumeItem(a, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestBestItems(t *testing.T) {
	w := newSample(t)
	a, _ := w.AddPlayer("Alice", 0, 3, types.Human)

	assert.Equal(t, 0, w.BestRoomItem(0), "ties go to the lowest index")
	assert.Equal(t, -1, w.BestRoomItem(3))
	assert.Equal(t, -1, w.BestHeldItem(a))

	_, _ = w.PickItem(a, 1) // Letter Opener (3)
	_, _ = w.PickItem(a, 0) // Revolver (3)
	assert.Equal(t, 0, w.BestHeldItem(a), "ties go to the earliest pick")
}

func TestAdvanceTarget_Cycle(t *testing.T) {
	w := newSample(t)

	seq := []int{w.Target.Room}
	for range len(w.Rooms) {
		seq = append(seq, w.AdvanceTarget())
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 0}, seq)
}

func TestDamageTarget_NoFloor(t *testing.T) {
	w := newSample(t)
	assert.Equal(t, 47, w.DamageTarget(3))
	assert.Equal(t, -3, w.DamageTarget(50))
}

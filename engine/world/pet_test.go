package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetRoute_DepthFirst(t *testing.T) {
	w := newSample(t)
	assert.Equal(t, []int{1, 3, 4, 3, 1, 0}, w.PetRoute())
}

func TestAdvancePet_StepsAreAdjacent(t *testing.T) {
	w := newSample(t)

	prev := w.Pet.Room
	var seen []int
	for range 8 {
		next := w.AdvancePet()
		assert.True(t, w.IsNeighbor(prev, next), "%d -> %d", prev, next)
		seen = append(seen, next)
		prev = next
	}
	assert.Equal(t, []int{1, 3, 4, 3, 1, 0, 1, 3}, seen)
}

func TestAdvancePet_RestartsAfterMove(t *testing.T) {
	w := newSample(t)
	require.NoError(t, w.MovePet(4))

	assert.Equal(t, []int{0, 1, 3, 1, 0, 4}, w.PetRoute())
	assert.Equal(t, 0, w.AdvancePet())
}

func TestAdvancePet_IsolatedRoom(t *testing.T) {
	w := newSample(t)
	require.NoError(t, w.MovePet(2))

	assert.Empty(t, w.PetRoute())
	assert.Equal(t, 2, w.AdvancePet())
	assert.Equal(t, 2, w.AdvancePet())
}

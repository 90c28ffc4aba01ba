package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/manorhunt/engine/events"
	"github.com/nathoo/manorhunt/types"
)

func TestAttack_Narration(t *testing.T) {
	tests := []struct {
		name      string
		health    int
		witness   bool
		wantLines []string
		wantEvent string
	}{
		{
			name:   "hit",
			health: 50,
			wantLines: []string{
				"Alice attacks Doctor Lucky with bare hands for 1 damage.",
				"Doctor Lucky has 49 health left.",
				"Doctor Lucky moves to Billiard Room.",
			},
			wantEvent: events.TargetHit,
		},
		{
			name:   "kill",
			health: 1,
			wantLines: []string{
				"Alice attacks Doctor Lucky with bare hands for 1 damage.",
				"Doctor Lucky is dead. Alice wins!",
			},
			wantEvent: events.TargetKilled,
		},
		{
			name:    "seen",
			health:  50,
			witness: true,
			wantLines: []string{
				"Alice's attack with bare hands was seen by Bob. Doctor Lucky is unharmed.",
				"Doctor Lucky moves to Billiard Room.",
			},
			wantEvent: events.AttackFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testDef()
			def.Target.Health = tt.health
			e := newEngine(t, def, staticConfig(20))
			a := addPlayer(t, e, "Alice", 0, types.Human)
			if tt.witness {
				addPlayer(t, e, "Bob", 0, types.Human)
			}

			r, err := e.Apply(types.Attack(a, types.BareHands))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLines, r.Output)
			require.NotEmpty(t, r.Events)
			assert.Equal(t, tt.wantEvent, r.Events[0].Type)
		})
	}
}

func TestAttack_NeighborWitnessBlockedByPet(t *testing.T) {
	e := newEngine(t, testDef(), staticConfig(20))
	a := addPlayer(t, e, "Alice", 0, types.Human)
	addPlayer(t, e, "Bob", 4, types.Human)

	// The pet starts in the Armory, so Bob next door cannot see in.
	r, err := e.Apply(types.Attack(a, types.BareHands))
	require.NoError(t, err)
	assert.True(t, r.Attack.Succeeded)
	assert.Equal(t, 49, r.Attack.Health)
}

func TestAttack_NeighborWitnessWithoutPet(t *testing.T) {
	e := newEngine(t, testDef(), staticConfig(20))
	a := addPlayer(t, e, "Alice", 0, types.Human)
	addPlayer(t, e, "Bob", 4, types.Human)

	_, err := e.Apply(types.MovePet(a, 2))
	require.NoError(t, err)
	// Alice acts on even turns; the target is back in the Armory at turn 10.
	for range 9 {
		cur, _ := e.CurrentPlayer()
		_, err = e.Apply(types.Look(cur))
		require.NoError(t, err)
	}
	cur, _ := e.CurrentPlayer()
	require.Equal(t, a, cur)
	require.Equal(t, 0, e.Snapshot().Target.Room)

	r, err := e.Apply(types.Attack(a, types.BareHands))
	require.NoError(t, err)
	assert.False(t, r.Attack.Succeeded)
	assert.Equal(t, []string{"Bob"}, r.Attack.Witnesses)
	assert.Equal(t, 50, e.Snapshot().Target.Health)
}

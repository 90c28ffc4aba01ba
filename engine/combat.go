package engine

import (
	"fmt"
	"strings"

	"github.com/samber/oops"

	"github.com/nathoo/manorhunt/engine/events"
	"github.com/nathoo/manorhunt/types"
)

// doAttack resolves an attempt on the target's life. The attacker must be in
// the target's room. Any witness stops the attempt: no damage, the item is
// kept, but the turn is spent. An unseen attempt deals the item's damage (or
// BareHandDamage) and uses the item up.
func (e *Engine) doAttack(r *types.TurnReport, in types.Intent) error {
	w := e.world
	p := w.Players[in.Player]
	if p.Room != w.Target.Room {
		return oops.In("engine").Code("not_with_target").
			With("room", p.Room).With("target_room", w.Target.Room).
			Wrapf(ErrNotWithTarget, "%s is not in %s", w.Target.Name, w.Rooms[p.Room].Name)
	}

	weapon, damage := "bare hands", BareHandDamage
	if in.Index != types.BareHands {
		it, err := w.HeldItem(in.Player, in.Index)
		if err != nil {
			return err
		}
		weapon, damage = it.Name, it.Damage
	}

	if seen := w.Witnesses(in.Player); len(seen) > 0 {
		names := make([]string, len(seen))
		for i, id := range seen {
			names[i] = w.Players[id].Name
		}
		r.Attack = &types.AttackReport{
			Weapon:    weapon,
			Witnesses: names,
			Health:    w.Target.Health,
		}
		r.Events = append(r.Events, events.New(events.AttackFailed,
			"player", p.Name, "weapon", weapon, "witnesses", names))
		r.Output = append(r.Output, fmt.Sprintf("%s's attack with %s was seen by %s. %s is unharmed.",
			p.Name, weapon, strings.Join(names, ", "), w.Target.Name))
		return nil
	}

	if in.Index != types.BareHands {
		if _, err := w.ConsumeItem(in.Player, in.Index); err != nil {
			return err
		}
	}
	health := w.DamageTarget(damage)
	r.Attack = &types.AttackReport{
		Weapon:    weapon,
		Damage:    damage,
		Succeeded: true,
		Health:    health,
	}
	r.Output = append(r.Output, fmt.Sprintf("%s attacks %s with %s for %d damage.",
		p.Name, w.Target.Name, weapon, damage))

	if health <= 0 {
		e.outcome = types.Outcome{Status: types.Won, Winner: in.Player}
		r.Events = append(r.Events, events.New(events.TargetKilled, "player", p.Name, "weapon", weapon))
		r.Output = append(r.Output, fmt.Sprintf("%s is dead. %s wins!", w.Target.Name, p.Name))
		return nil
	}
	r.Events = append(r.Events, events.New(events.TargetHit,
		"player", p.Name, "weapon", weapon, "damage", damage, "health", health))
	r.Output = append(r.Output, fmt.Sprintf("%s has %d health left.", w.Target.Name, health))
	return nil
}

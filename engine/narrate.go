package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/manorhunt/engine/world"
	"github.com/nathoo/manorhunt/types"
)

// narrateLook produces the standard look-around output.
func (e *Engine) narrateLook(player string, look types.LookReport) []string {
	var out []string
	out = append(out, e.describeView(player+" is in", look.Here)...)
	for _, n := range look.Neighbors {
		out = append(out, e.describeView(fmt.Sprintf("Next door (%d):", n.ID), n)...)
	}
	return out
}

func (e *Engine) describeView(prefix string, v types.RoomView) []string {
	out := []string{prefix + " " + v.Name + "."}
	if len(v.Items) > 0 {
		out = append(out, "  Items: "+world.JoinItems(v.Items)+".")
	}
	switch {
	case v.Obscured:
		out = append(out, "  Occupants are invisible due to "+e.world.Pet.Name+".")
	case len(v.Occupants) > 0:
		out = append(out, "  Players: "+strings.Join(v.Occupants, ", ")+".")
	}
	if v.HasTarget {
		out = append(out, "  "+e.world.Target.Name+" is here.")
	}
	if v.HasPet {
		out = append(out, "  "+e.world.Pet.Name+" is here.")
	}
	return out
}

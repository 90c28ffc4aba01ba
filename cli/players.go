package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/manorhunt/engine"
	"github.com/nathoo/manorhunt/engine/resolve"
	"github.com/nathoo/manorhunt/types"
)

// DefaultCapacity is how many items a player carries when not specified.
const DefaultCapacity = 3

// PlayerSpec describes a player to add: name[:room[:capacity[:computer]]].
type PlayerSpec struct {
	Name     string
	Room     string // room number or name; "" means room 0
	Capacity int
	Kind     types.PlayerKind
}

// ParsePlayerSpec parses "name[:room[:capacity[:computer]]]". The kind field
// accepts "computer", "cpu", "human" or nothing.
func ParsePlayerSpec(s string) (PlayerSpec, error) {
	parts := strings.Split(s, ":")
	spec := PlayerSpec{
		Name:     strings.TrimSpace(parts[0]),
		Capacity: DefaultCapacity,
		Kind:     types.Human,
	}
	if spec.Name == "" {
		return PlayerSpec{}, fmt.Errorf("player %q: name is required", s)
	}
	if len(parts) > 4 {
		return PlayerSpec{}, fmt.Errorf("player %q: expected name[:room[:capacity[:computer]]]", s)
	}
	if len(parts) > 1 {
		spec.Room = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || n < 1 {
			return PlayerSpec{}, fmt.Errorf("player %q: capacity must be a positive number", s)
		}
		spec.Capacity = n
	}
	if len(parts) > 3 {
		switch strings.ToLower(strings.TrimSpace(parts[3])) {
		case "computer", "cpu", "c":
			spec.Kind = types.Computer
		case "human", "h", "":
		default:
			return PlayerSpec{}, fmt.Errorf("player %q: kind must be computer or human", s)
		}
	}
	return spec, nil
}

// AddPlayer resolves the spec's room against the engine's manor and adds the
// player to the back of the turn queue.
func AddPlayer(eng *engine.Engine, spec PlayerSpec) (types.PlayerID, error) {
	room := 0
	if spec.Room != "" {
		r, err := resolve.Room(eng.Snapshot(), spec.Room)
		if err != nil {
			return 0, fmt.Errorf("player %s: %w", spec.Name, err)
		}
		room = r
	}
	return eng.AddPlayer(spec.Name, room, spec.Capacity, spec.Kind)
}

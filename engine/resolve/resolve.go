// Package resolve maps the arguments of parsed commands to room ids and item
// indices, producing engine intents.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/manorhunt/engine/parser"
	"github.com/nathoo/manorhunt/engine/snapshot"
	"github.com/nathoo/manorhunt/types"
)

// AmbiguityError indicates multiple rooms or items matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates nothing matched a name.
type NotFoundError struct {
	Name  string
	Where string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %q %s", e.Name, e.Where)
}

// MissingArgError indicates a verb that needs an argument got none.
type MissingArgError struct {
	Verb string
}

func (e *MissingArgError) Error() string {
	switch e.Verb {
	case parser.VerbMove, parser.VerbPet:
		return e.Verb + " where?"
	default:
		return e.Verb + " what?"
	}
}

// UnknownVerbError indicates a verb that is not a game action.
type UnknownVerbError struct {
	Verb string
}

func (e *UnknownVerbError) Error() string {
	return fmt.Sprintf("I don't know how to %q", e.Verb)
}

var bareHands = map[string]bool{
	"bare": true, "hands": true, "bare hands": true, "fists": true, "nothing": true,
}

// Intent turns a command into an intent for player pid. Numbers are passed
// through unchecked so the engine reports out-of-range ids itself.
func Intent(s *snapshot.Snapshot, pid types.PlayerID, cmd types.Command) (types.Intent, error) {
	switch cmd.Verb {
	case parser.VerbLook:
		return types.Look(pid), nil
	case parser.VerbMove, parser.VerbPet:
		if cmd.Arg == "" {
			return types.Intent{}, &MissingArgError{Verb: cmd.Verb}
		}
		room, err := Room(s, cmd.Arg)
		if err != nil {
			return types.Intent{}, err
		}
		if cmd.Verb == parser.VerbPet {
			return types.MovePet(pid, room), nil
		}
		return types.Move(pid, room), nil
	case parser.VerbPick:
		if cmd.Arg == "" {
			return types.Intent{}, &MissingArgError{Verb: cmd.Verb}
		}
		idx, err := RoomItem(s, pid, cmd.Arg)
		if err != nil {
			return types.Intent{}, err
		}
		return types.Pick(pid, idx), nil
	case parser.VerbAttack:
		idx, err := HeldItem(s, pid, cmd.Arg)
		if err != nil {
			return types.Intent{}, err
		}
		return types.Attack(pid, idx), nil
	default:
		return types.Intent{}, &UnknownVerbError{Verb: cmd.Verb}
	}
}

// Room resolves a room number or name.
func Room(s *snapshot.Snapshot, query string) (int, error) {
	if n, err := strconv.Atoi(query); err == nil {
		return n, nil
	}
	names := make([]string, len(s.Rooms))
	for i, r := range s.Rooms {
		names[i] = r.Name
	}
	return match(names, query, "in this manor")
}

// RoomItem resolves an item index or name among the items in the player's
// room.
func RoomItem(s *snapshot.Snapshot, pid types.PlayerID, query string) (int, error) {
	p, err := player(s, pid)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.Atoi(query); err == nil {
		return n, nil
	}
	room := s.Rooms[p.Room]
	return match(itemNames(room.Items), query, "in "+room.Name)
}

// HeldItem resolves an item index or name among the player's items. An empty
// query, or "bare hands", means types.BareHands.
func HeldItem(s *snapshot.Snapshot, pid types.PlayerID, query string) (int, error) {
	if query == "" || bareHands[query] {
		return types.BareHands, nil
	}
	p, err := player(s, pid)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.Atoi(query); err == nil {
		return n, nil
	}
	return match(itemNames(p.Items), query, "carried by "+p.Name)
}

func player(s *snapshot.Snapshot, pid types.PlayerID) (snapshot.Player, error) {
	if int(pid) < 0 || int(pid) >= len(s.Players) {
		return snapshot.Player{}, &NotFoundError{Name: strconv.Itoa(int(pid)), Where: "among players"}
	}
	return s.Players[pid], nil
}

func itemNames(items []snapshot.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

// match returns the index of the single name matching query. An exact
// (case-insensitive) match wins outright; otherwise the query may match one
// whole word of a name or be a prefix of it.
func match(names []string, query, where string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var partial []int
	for i, name := range names {
		lower := strings.ToLower(name)
		if lower == q {
			return i, nil
		}
		if strings.HasPrefix(lower, q) || hasWord(lower, q) {
			partial = append(partial, i)
		}
	}

	switch len(partial) {
	case 0:
		return 0, &NotFoundError{Name: query, Where: where}
	case 1:
		return partial[0], nil
	default:
		candidates := make([]string, len(partial))
		for i, idx := range partial {
			candidates[i] = names[idx]
		}
		return 0, &AmbiguityError{Name: query, Candidates: candidates}
	}
}

func hasWord(name, word string) bool {
	for _, w := range strings.Fields(name) {
		if w == word {
			return true
		}
	}
	return false
}

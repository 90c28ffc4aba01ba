// Package parser converts command strings into Command structs.
// Pattern matching only: the verb is normalized, the rest is kept as an
// argument for the resolver.
package parser

import (
	"strings"

	"github.com/nathoo/manorhunt/types"
)

// Canonical verbs.
const (
	VerbMove   = "move"
	VerbPet    = "pet"
	VerbLook   = "look"
	VerbPick   = "pick"
	VerbAttack = "attack"
	VerbInfo   = "info"
	VerbRoom   = "room"
	VerbHelp   = "help"
)

var verbAliases = map[string]string{
	// Movement
	"go":     VerbMove,
	"walk":   VerbMove,
	"run":    VerbMove,
	"head":   VerbMove,
	"enter":  VerbMove,
	"travel": VerbMove,
	"m":      VerbMove,

	// Pet
	"cat":  VerbPet,
	"shoo": VerbPet,
	"send": VerbPet,
	"p":    VerbPet,

	// Look
	"l":       VerbLook,
	"peek":    VerbLook,
	"observe": VerbLook,
	"search":  VerbLook,

	// Pick
	"take":  VerbPick,
	"get":   VerbPick,
	"grab":  VerbPick,
	"carry": VerbPick,

	// Attack
	"hit":    VerbAttack,
	"kill":   VerbAttack,
	"strike": VerbAttack,
	"stab":   VerbAttack,
	"a":      VerbAttack,

	// Describe
	"i":         VerbInfo,
	"inv":       VerbInfo,
	"inventory": VerbInfo,
	"me":        VerbInfo,
	"status":    VerbInfo,
	"describe":  VerbRoom,
	"where":     VerbRoom,
	"r":         VerbRoom,

	// Help
	"h": VerbHelp,
	"?": VerbHelp,
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "with": true, "into": true,
}

// Parse converts a raw command string into a Command. The verb is always
// canonical when known; unknown verbs are passed through lowercased.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(strings.ToLower(input))
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	return types.Command{
		Verb: words[0],
		Arg:  strings.Join(stripFillers(words[1:]), " "),
	}
}

// expandMultiWordVerbs handles "pick up", "look around", "move pet" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "pick", "take":
		if words[1] == "up" {
			return append([]string{VerbPick}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return append([]string{VerbLook}, words[2:]...)
		}
		if words[1] == "at" && len(words) > 2 {
			return append([]string{VerbRoom}, words[2:]...)
		}
	case "move", "go", "send":
		// Articles may sit between the verb and the animal: "send the cat".
		i := 1
		for i < len(words)-1 && fillers[words[i]] {
			i++
		}
		if words[i] == "pet" || words[i] == "cat" {
			return append([]string{VerbPet}, words[i+1:]...)
		}
	}

	return words
}

// stripFillers drops articles and connecting words. A lone "a" is kept when
// it is the only word, so single-letter names still resolve.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	if len(result) == 0 && len(words) == 1 {
		return words
	}
	return result
}

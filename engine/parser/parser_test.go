package parser

import (
	"testing"

	"github.com/nathoo/manorhunt/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Command{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Command{},
		},

		// Bare verbs
		{
			name:  "look",
			input: "look",
			want:  types.Command{Verb: VerbLook},
		},
		{
			name:  "l → look",
			input: "l",
			want:  types.Command{Verb: VerbLook},
		},
		{
			name:  "look around → look",
			input: "look around",
			want:  types.Command{Verb: VerbLook},
		},
		{
			name:  "i → info",
			input: "i",
			want:  types.Command{Verb: VerbInfo},
		},
		{
			name:  "? → help",
			input: "?",
			want:  types.Command{Verb: VerbHelp},
		},

		// Movement
		{
			name:  "move by number",
			input: "move 3",
			want:  types.Command{Verb: VerbMove, Arg: "3"},
		},
		{
			name:  "go to the dining hall",
			input: "go to the Dining Hall",
			want:  types.Command{Verb: VerbMove, Arg: "dining hall"},
		},
		{
			name:  "walk armory → move",
			input: "walk armory",
			want:  types.Command{Verb: VerbMove, Arg: "armory"},
		},

		// Pet
		{
			name:  "move pet to kitchen",
			input: "move pet to kitchen",
			want:  types.Command{Verb: VerbPet, Arg: "kitchen"},
		},
		{
			name:  "send the cat into the parlor",
			input: "send the cat into the parlor",
			want:  types.Command{Verb: VerbPet, Arg: "parlor"},
		},
		{
			name:  "move the pet to the drawing room",
			input: "move the pet to the drawing room",
			want:  types.Command{Verb: VerbPet, Arg: "drawing room"},
		},
		{
			name:  "pet 4",
			input: "pet 4",
			want:  types.Command{Verb: VerbPet, Arg: "4"},
		},

		// Pick
		{
			name:  "pick up the revolver",
			input: "pick up the revolver",
			want:  types.Command{Verb: VerbPick, Arg: "revolver"},
		},
		{
			name:  "take up letter opener",
			input: "take up letter opener",
			want:  types.Command{Verb: VerbPick, Arg: "letter opener"},
		},
		{
			name:  "grab 0",
			input: "grab 0",
			want:  types.Command{Verb: VerbPick, Arg: "0"},
		},

		// Attack
		{
			name:  "attack bare",
			input: "attack",
			want:  types.Command{Verb: VerbAttack},
		},
		{
			name:  "attack with the revolver",
			input: "attack with the revolver",
			want:  types.Command{Verb: VerbAttack, Arg: "revolver"},
		},
		{
			name:  "kill with chain saw",
			input: "KILL with Chain Saw",
			want:  types.Command{Verb: VerbAttack, Arg: "chain saw"},
		},

		// Describe
		{
			name:  "look at armory → room",
			input: "look at armory",
			want:  types.Command{Verb: VerbRoom, Arg: "armory"},
		},
		{
			name:  "look at alone stays look",
			input: "look at",
			want:  types.Command{Verb: VerbLook, Arg: "at"},
		},
		{
			name:  "describe 2 → room",
			input: "describe 2",
			want:  types.Command{Verb: VerbRoom, Arg: "2"},
		},
		{
			name:  "lone article kept",
			input: "move a",
			want:  types.Command{Verb: VerbMove, Arg: "a"},
		},

		// Unknown verb passes through
		{
			name:  "unknown verb",
			input: "dance",
			want:  types.Command{Verb: "dance"},
		},
		{
			name:  "unknown verb with argument",
			input: "Dance With Doctor",
			want:  types.Command{Verb: "dance", Arg: "doctor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

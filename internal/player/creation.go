package player

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/pixil98/go-mudserver/internal/display"
)

// CharacterStore is the collaborator that persists a finished character.
type CharacterStore interface {
	Save(name string, info map[string]string, attr map[string]int) error
}

type CreationState int

const (
	CreationNew CreationState = iota
	CreationRace
	CreationGender
	CreationType
	CreationSelection
	CreationDone
)

func (s CreationState) String() string {
	switch s {
	case CreationNew:
		return "new"
	case CreationRace:
		return "race"
	case CreationGender:
		return "gender"
	case CreationType:
		return "type"
	case CreationSelection:
		return "selection"
	case CreationDone:
		return "done"
	default:
		return "unknown"
	}
}

// Creator is the character-creation protocol snapshot carried by a
// connection. Like Logon, each ProcessCreation call consumes one line and
// returns the next snapshot.
type Creator struct {
	Username  string
	Character Character
	State     CreationState
	ReturnMsg string
}

// NewCreator starts a creation flow at the race prompt. The race prompt
// itself has already been sent as part of the logon hand-off.
func NewCreator(username string) Creator {
	return Creator{
		Username:  username,
		Character: NewCharacter(username),
		State:     CreationRace,
	}
}

// ProcessCreation advances the creation state machine by one line of input.
// Out-of-range input re-issues the current prompt and leaves the state
// unchanged.
func ProcessCreation(input string, c Creator, store CharacterStore) Creator {
	in := strings.TrimSpace(input)
	c.ReturnMsg = ""

	switch c.State {
	case CreationNew:
		c.ReturnMsg = raceSelection
		c.State = CreationRace

	case CreationRace:
		// Restarting at race regenerates both accumulators.
		c.Character.Info = defaultInfo()
		c.Character.Attr = defaultAttr()

		sel := parseSelection(1, 4, in)
		if sel <= 0 {
			c.ReturnMsg = raceSelection
			break
		}

		c.Character.Info["race"] = strconv.Itoa(sel)
		c.ReturnMsg = genderSelection
		c.State = CreationGender

	case CreationGender:
		if !isOneOf("m:f:u", in) {
			c.ReturnMsg = genderSelection
			break
		}

		c.Character.Info["gender"] = in
		c.ReturnMsg = typeSelection(c.race())
		c.State = CreationType

	case CreationType:
		sel := parseSelection(0, 4, in)
		if sel <= 0 {
			c.ReturnMsg = typeSelection(c.race())
			break
		}

		c.Character.Info["type"] = strconv.Itoa(sel)
		c.Character.Attr = rollAttributes(attrPointBudget, raceWeights(c.race()))

		c.ReturnMsg = attrSelection + listAttributes(c.Character.Attr)
		c.State = CreationSelection

	case CreationSelection:
		if in != "y" && in != "yes" {
			c.ReturnMsg = typeSelection(c.race())
			c.State = CreationType
			break
		}

		if err := store.Save(c.Username, c.Character.Info, c.Character.Attr); err != nil {
			slog.Error("saving character", "name", c.Username, "error", err)
			c.ReturnMsg = saveFailedMessage + typeSelection(c.race())
			c.State = CreationType
			break
		}

		c.ReturnMsg = creationSuccess
		c.State = CreationDone

	case CreationDone:
	}

	return c
}

func (c *Creator) race() int {
	r, err := strconv.Atoi(c.Character.Info["race"])
	if err != nil {
		return 0
	}
	return r
}

// parseSelection parses a numeric menu selection, returning 0 when the input
// is not a number in [min, max].
func parseSelection(min, max int, input string) int {
	sel, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0
	}
	if sel < min || sel > max {
		return 0
	}
	return sel
}

// isOneOf reports whether input matches one of the colon-separated choices.
func isOneOf(choices, input string) bool {
	for _, part := range strings.Split(choices, ":") {
		if strings.TrimSpace(input) == part {
			return true
		}
	}
	return false
}

// listAttributes renders the attribute map one per line in a stable order.
func listAttributes(attr map[string]int) string {
	keys := make([]string, 0, len(attr))
	for k := range attr {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%d\n", k, attr[k])
	}

	return display.Wrap(b.String())
}

package player

import (
	"fmt"
	"log/slog"
)

// Prompt text sent to clients during logon and character creation. Line
// endings are plain \n here; the listener layer converts to CRLF on the wire.
const (
	WelcomeMessage = "Welcome to the mud\nWhat's your name?\n"

	registerPrompt = "This appears to be your first time here,\nwould you like to visit us in the mud world?\n"

	enterPasswordPrompt   = "Please enter your pass code\n"
	registerPassword      = "Password please:\n"
	confirmPassword       = "Please confirm your password:\n"
	registerFailedMessage = "Something went wrong creating your account, please try again.\n"

	raceSelection = "What would you like to be?\n[1]Human\t\t[2]Elf\t\t[3]Dwarf\t\t[4]Dragon\n"

	createCharacter = "Let's build your character\n" + raceSelection

	genderSelection = "Gender[m/f/u]?\n"

	attrSelection = "Are you satisfied with the following attributes?\n"

	creationSuccess   = "Your character has been created\n"
	saveFailedMessage = "Something went wrong saving your character, please try again.\n"
)

// typeSelectionTmpl is expanded with the chosen race's display name.
const typeSelectionTmpl = "What kind of {{ .Race | title }} would you like to be?\n[1]Intelligent\t\t[2]Athletic\t\t[3]Average\n"

var raceNames = map[int]string{
	1: "human",
	2: "elf",
	3: "dwarf",
	4: "dragon",
}

// typeSelection renders the class prompt for the given race selection. An
// unknown race falls back to a generic prompt rather than failing the turn.
func typeSelection(race int) string {
	name, ok := raceNames[race]
	if !ok {
		name = "adventurer"
	}

	out, err := expandTemplate(typeSelectionTmpl, struct{ Race string }{Race: name})
	if err != nil {
		slog.Error("expanding type selection prompt", "race", race, "error", err)
		return fmt.Sprintf("What kind of %s would you like to be?\n", name)
	}

	return out
}

package session

import (
	"fmt"
	"strings"
)

// GameHandler receives play-phase input and returns the text to record in
// the message log. An empty result records nothing.
type GameHandler interface {
	Command(name, line string) string
}

// EchoHandler relays play input tagged with the speaker's name.
// TODO: replace with a real command dispatcher.
type EchoHandler struct{}

func (EchoHandler) Command(name, line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	return fmt.Sprintf("%s: %s", name, line)
}

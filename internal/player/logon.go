package player

import (
	"log/slog"
	"strings"
)

// PlayerStore is the account collaborator consulted during logon.
type PlayerStore interface {
	Exists(name string) bool
	Create(name, password string) error
}

type LogonState int

const (
	LogonNew LogonState = iota
	LogonUsername
	LogonPassword
	LogonRegisterNewUser
	LogonRegisterPassword
	LogonRegisterPasswordConfirm
	LogonRegisterCreation
	LogonDone
)

func (s LogonState) String() string {
	switch s {
	case LogonNew:
		return "new"
	case LogonUsername:
		return "username"
	case LogonPassword:
		return "password"
	case LogonRegisterNewUser:
		return "register-new-user"
	case LogonRegisterPassword:
		return "register-password"
	case LogonRegisterPasswordConfirm:
		return "register-password-confirm"
	case LogonRegisterCreation:
		return "register-creation"
	case LogonDone:
		return "done"
	default:
		return "unknown"
	}
}

// Logon is the logon protocol snapshot carried by a connection. Each call to
// ProcessLogon consumes one line of input and returns the next snapshot;
// ReturnMsg holds the reply for the current turn only.
type Logon struct {
	Username  string
	Password  string
	State     LogonState
	ReturnMsg string
}

func NewLogon() Logon {
	return Logon{State: LogonUsername}
}

// ProcessLogon advances the logon state machine by one line of input. It
// never fails the session: bad input re-prompts, and store errors report
// failure and retry.
func ProcessLogon(input string, l Logon, store PlayerStore) Logon {
	in := strings.TrimSpace(input)
	l.ReturnMsg = ""

	switch l.State {
	case LogonNew:
		l.State = LogonUsername

	case LogonUsername:
		l.Username = in
		if store.Exists(in) {
			l.ReturnMsg = enterPasswordPrompt
			l.State = LogonPassword
		} else {
			l.ReturnMsg = registerPrompt
			l.State = LogonRegisterNewUser
		}

	case LogonPassword:
		// TODO: verify the attempt against the stored record
		l.State = LogonDone

	case LogonRegisterNewUser:
		if in == "y" || in == "yes" {
			l.ReturnMsg = registerPassword
			l.State = LogonRegisterPassword
		} else {
			l.ReturnMsg = WelcomeMessage
			l.State = LogonNew
		}

	case LogonRegisterPassword:
		l.Password = in
		l.ReturnMsg = confirmPassword
		l.State = LogonRegisterPasswordConfirm

	case LogonRegisterPasswordConfirm:
		if in != l.Password {
			l.ReturnMsg = registerPassword
			l.State = LogonRegisterPassword
			break
		}

		if err := store.Create(l.Username, l.Password); err != nil {
			slog.Error("creating player", "name", l.Username, "error", err)
			l.ReturnMsg = registerFailedMessage + registerPassword
			l.State = LogonRegisterPassword
			break
		}

		l.ReturnMsg = createCharacter
		l.State = LogonRegisterCreation

	case LogonRegisterCreation:
		l.State = LogonDone

	case LogonDone:
	}

	return l
}

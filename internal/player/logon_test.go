package player

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockPlayerStore implements PlayerStore for testing the logon flow
type mockPlayerStore struct {
	known     map[string]bool
	createErr error

	created []string
}

func (s *mockPlayerStore) Exists(name string) bool {
	return s.known[name]
}

func (s *mockPlayerStore) Create(name, password string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, name+":"+password)
	return nil
}

func TestProcessLogon(t *testing.T) {
	tests := map[string]struct {
		input    string
		logon    Logon
		known    map[string]bool
		expState LogonState
		expMsg   string
	}{
		"new state ignores input": {
			input:    "whatever",
			logon:    Logon{State: LogonNew},
			expState: LogonUsername,
		},
		"unknown username routes to registration": {
			input:    "alice",
			logon:    NewLogon(),
			expState: LogonRegisterNewUser,
			expMsg:   "first time here",
		},
		"known username routes to password": {
			input:    "bob",
			logon:    NewLogon(),
			known:    map[string]bool{"bob": true},
			expState: LogonPassword,
			expMsg:   "pass code",
		},
		"username is trimmed": {
			input:    "  bob  ",
			logon:    NewLogon(),
			known:    map[string]bool{"bob": true},
			expState: LogonPassword,
		},
		"password attempt completes logon": {
			input:    "hunter2",
			logon:    Logon{Username: "bob", State: LogonPassword},
			expState: LogonDone,
		},
		"registration confirmed with y": {
			input:    "y",
			logon:    Logon{Username: "alice", State: LogonRegisterNewUser},
			expState: LogonRegisterPassword,
			expMsg:   "Password please",
		},
		"registration confirmed with yes": {
			input:    "yes",
			logon:    Logon{Username: "alice", State: LogonRegisterNewUser},
			expState: LogonRegisterPassword,
		},
		"registration confirm is case sensitive": {
			input:    "Y",
			logon:    Logon{Username: "alice", State: LogonRegisterNewUser},
			expState: LogonNew,
			expMsg:   "Welcome to the mud",
		},
		"registration declined restarts logon": {
			input:    "n",
			logon:    Logon{Username: "alice", State: LogonRegisterNewUser},
			expState: LogonNew,
			expMsg:   "Welcome to the mud",
		},
		"register password stored and confirm prompted": {
			input:    "secret",
			logon:    Logon{Username: "alice", State: LogonRegisterPassword},
			expState: LogonRegisterPasswordConfirm,
			expMsg:   "confirm your password",
		},
		"mismatched confirmation retries password": {
			input:    "wrong",
			logon:    Logon{Username: "alice", Password: "secret", State: LogonRegisterPasswordConfirm},
			expState: LogonRegisterPassword,
			expMsg:   "Password please",
		},
		"register creation advances to done": {
			input:    "",
			logon:    Logon{Username: "alice", State: LogonRegisterCreation},
			expState: LogonDone,
		},
		"done is terminal": {
			input:    "anything",
			logon:    Logon{Username: "alice", State: LogonDone},
			expState: LogonDone,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := &mockPlayerStore{known: tt.known}

			result := ProcessLogon(tt.input, tt.logon, store)

			testutil.AssertEqual(t, "state", result.State, tt.expState)
			if tt.expMsg != "" && !strings.Contains(result.ReturnMsg, tt.expMsg) {
				t.Errorf("expected message containing %q, got %q", tt.expMsg, result.ReturnMsg)
			}
		})
	}
}

func TestProcessLogon_MatchingConfirmationPersists(t *testing.T) {
	store := &mockPlayerStore{}
	l := Logon{Username: "alice", Password: "secret", State: LogonRegisterPasswordConfirm}

	result := ProcessLogon("secret", l, store)

	testutil.AssertEqual(t, "state", result.State, LogonRegisterCreation)
	testutil.AssertEqual(t, "created count", len(store.created), 1)
	testutil.AssertEqual(t, "created record", store.created[0], "alice:secret")
	if !strings.Contains(result.ReturnMsg, "build your character") {
		t.Errorf("expected creation hand-off message, got %q", result.ReturnMsg)
	}
}

func TestProcessLogon_MismatchedConfirmationDoesNotPersist(t *testing.T) {
	store := &mockPlayerStore{}
	l := Logon{Username: "alice", Password: "secret", State: LogonRegisterPasswordConfirm}

	result := ProcessLogon("sekret", l, store)

	testutil.AssertEqual(t, "state", result.State, LogonRegisterPassword)
	testutil.AssertEqual(t, "created count", len(store.created), 0)
}

func TestProcessLogon_CreateFailureRetries(t *testing.T) {
	store := &mockPlayerStore{createErr: fmt.Errorf("disk full")}
	l := Logon{Username: "alice", Password: "secret", State: LogonRegisterPasswordConfirm}

	result := ProcessLogon("secret", l, store)

	testutil.AssertEqual(t, "state", result.State, LogonRegisterPassword)
	if !strings.Contains(result.ReturnMsg, "went wrong") {
		t.Errorf("expected failure report, got %q", result.ReturnMsg)
	}
}

func TestProcessLogon_RegistrationSequence(t *testing.T) {
	store := &mockPlayerStore{}

	l := NewLogon()
	l = ProcessLogon("alice", l, store)
	testutil.AssertEqual(t, "state after username", l.State, LogonRegisterNewUser)

	l = ProcessLogon("yes", l, store)
	testutil.AssertEqual(t, "state after confirm", l.State, LogonRegisterPassword)

	l = ProcessLogon("secret", l, store)
	testutil.AssertEqual(t, "state after password", l.State, LogonRegisterPasswordConfirm)

	l = ProcessLogon("secret", l, store)
	testutil.AssertEqual(t, "state after matching confirm", l.State, LogonRegisterCreation)
	testutil.AssertEqual(t, "persisted players", len(store.created), 1)
}

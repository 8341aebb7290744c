package session

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-mudserver/internal/msglog"
	"github.com/pixil98/go-testutil"
)

// drainOutbound pops everything queued for delivery without running the
// write loop.
func drainOutbound(c *Connection) []string {
	var out []string
	for {
		select {
		case msg := <-c.outbound:
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

// lastQueued returns the most recently queued message, or "".
func lastQueued(c *Connection) string {
	msgs := drainOutbound(c)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func newTestConnection(log msglog.Log, players *fakePlayerStore, chars *fakeCharacterStore) *Connection {
	return newConnection(Token(0), &bytes.Buffer{}, deps{
		log:     log,
		players: players,
		chars:   chars,
		game:    EchoHandler{},
	})
}

func TestConnection_WelcomeOpensLogon(t *testing.T) {
	c := newTestConnection(&fakeLog{}, &fakePlayerStore{}, &fakeCharacterStore{})

	c.Welcome()

	testutil.AssertEqual(t, "phase", c.Phase(), PhaseLogon)
	msgs := drainOutbound(c)
	testutil.AssertEqual(t, "queued count", len(msgs), 1)
	if !strings.Contains(msgs[0], "Welcome to the mud") {
		t.Errorf("expected welcome banner, got %q", msgs[0])
	}
}

func TestConnection_NewPhaseFallsBackToWelcome(t *testing.T) {
	c := newTestConnection(&fakeLog{}, &fakePlayerStore{}, &fakeCharacterStore{})

	c.HandleLine("hello")

	testutil.AssertEqual(t, "phase", c.Phase(), PhaseLogon)
	if !strings.Contains(lastQueued(c), "Welcome to the mud") {
		t.Error("expected welcome banner on first input")
	}
}

func TestConnection_SendStampsAndSkipsEmpty(t *testing.T) {
	c := newTestConnection(&fakeLog{}, &fakePlayerStore{}, &fakeCharacterStore{})

	c.Send("")
	testutil.AssertEqual(t, "queued after empty send", len(drainOutbound(c)), 0)

	c.Send("hello\n")
	msg := lastQueued(c)
	if !strings.HasSuffix(msg, "]hello\n") {
		t.Errorf("expected stamped message, got %q", msg)
	}
	if !strings.HasPrefix(msg, "[") {
		t.Errorf("expected timestamp tag, got %q", msg)
	}
}

// Full registration walk-through: connect, register, create a character,
// and land in play.
func TestConnection_RegistrationScenario(t *testing.T) {
	log := &fakeLog{}
	players := &fakePlayerStore{}
	chars := &fakeCharacterStore{}
	c := newTestConnection(log, players, chars)

	c.Welcome()
	if !strings.Contains(lastQueued(c), "What's your name?") {
		t.Fatal("expected name prompt in banner")
	}

	steps := []struct {
		input    string
		expReply string
		expPhase Phase
	}{
		{"alice", "first time here", PhaseLogon},
		{"yes", "Password please", PhaseLogon},
		{"secret", "confirm your password", PhaseLogon},
		{"secret", "build your character", PhaseCharacterCreation},
		{"1", "Gender[m/f/u]?", PhaseCharacterCreation},
		{"m", "What kind of Human", PhaseCharacterCreation},
		{"2", "Are you satisfied", PhaseCharacterCreation},
		{"y", "has been created", PhasePlay},
	}

	for _, step := range steps {
		c.HandleLine(step.input)

		reply := lastQueued(c)
		if !strings.Contains(reply, step.expReply) {
			t.Fatalf("input %q: expected reply containing %q, got %q", step.input, step.expReply, reply)
		}
		testutil.AssertEqual(t, "phase after "+step.input, c.Phase(), step.expPhase)
	}

	testutil.AssertEqual(t, "players created", len(players.created), 1)
	testutil.AssertEqual(t, "players record", players.created[0], "alice:secret")
	testutil.AssertEqual(t, "characters saved", len(chars.saved), 1)
	testutil.AssertEqual(t, "character name", chars.saved[0], "alice")
}

func TestConnection_PlayInputIsLoggedNotEchoed(t *testing.T) {
	log := &fakeLog{}
	c := newTestConnection(log, &fakePlayerStore{}, &fakeCharacterStore{})
	c.mu.Lock()
	c.phase = PhasePlay
	c.logon.Username = "alice"
	c.mu.Unlock()

	c.HandleLine("look around")

	testutil.AssertEqual(t, "queued count", len(drainOutbound(c)), 0)
	testutil.AssertEqual(t, "logged count", len(log.recs), 1)
	testutil.AssertEqual(t, "logged message", log.recs[0].Message, "alice: look around")
}

func TestConnection_HeartbeatDeliversPastWatermark(t *testing.T) {
	log := &fakeLog{}
	c := newTestConnection(log, &fakePlayerStore{}, &fakeCharacterStore{})

	base := time.Now()
	log.recs = []msglog.Record{
		{ID: 1, Message: "old news\n", CreatedAt: base.Add(-time.Minute)},
		{ID: 2, Message: "first\n", CreatedAt: base.Add(time.Second)},
		{ID: 3, Message: "second\n", CreatedAt: base.Add(2 * time.Second)},
	}

	c.mu.Lock()
	c.phase = PhasePlay
	c.watermark = base
	c.mu.Unlock()

	c.Heartbeat()

	msgs := drainOutbound(c)
	testutil.AssertEqual(t, "delivered count", len(msgs), 2)
	if !strings.Contains(msgs[0], "first") || !strings.Contains(msgs[1], "second") {
		t.Errorf("expected ascending delivery, got %v", msgs)
	}

	c.mu.Lock()
	wm := c.watermark
	c.mu.Unlock()
	if !wm.Equal(base.Add(2 * time.Second)) {
		t.Errorf("expected watermark at last delivered record, got %v", wm)
	}

	// Nothing new: the next heartbeat delivers nothing and holds the mark
	c.Heartbeat()
	testutil.AssertEqual(t, "redelivered count", len(drainOutbound(c)), 0)
}

func TestConnection_HeartbeatIgnoresNonPlayPhases(t *testing.T) {
	log := &fakeLog{}
	log.Append("pending\n")

	c := newTestConnection(log, &fakePlayerStore{}, &fakeCharacterStore{})
	c.mu.Lock()
	c.watermark = time.Now().Add(-time.Hour)
	c.mu.Unlock()
	c.Welcome()
	drainOutbound(c)

	c.Heartbeat()

	testutil.AssertEqual(t, "delivered count", len(drainOutbound(c)), 0)
}

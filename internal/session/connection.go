package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pixil98/go-mudserver/internal/msglog"
	"github.com/pixil98/go-mudserver/internal/player"
)

const (
	// maxLineBytes bounds a single line of client input. Longer lines fail
	// the connection rather than being split.
	maxLineBytes = 2048

	// outboundQueueSize bounds the per-connection send queue. A full queue
	// drops the message with a warning; there is no further flow control.
	outboundQueueSize = 64
)

// deps are the collaborators every connection needs.
type deps struct {
	log     msglog.Log
	players player.PlayerStore
	chars   player.CharacterStore
	game    GameHandler
}

// Connection drives one client through logon, character creation, and play.
// The mutex serializes line handling against heartbeat delivery so the
// protocol snapshots are never touched concurrently.
type Connection struct {
	token Token
	sid   uuid.UUID
	rw    io.ReadWriter
	deps  deps

	mu        sync.Mutex
	phase     Phase
	logon     player.Logon
	creator   player.Creator
	watermark time.Time

	outbound  chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(token Token, rw io.ReadWriter, d deps) *Connection {
	return &Connection{
		token:     token,
		sid:       uuid.New(),
		rw:        rw,
		deps:      d,
		phase:     PhaseNew,
		logon:     player.NewLogon(),
		watermark: time.Now(),
		outbound:  make(chan []byte, outboundQueueSize),
		done:      make(chan struct{}),
	}
}

func (c *Connection) Token() Token {
	return c.token
}

func (c *Connection) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Welcome queues the banner and opens the logon phase.
func (c *Connection) Welcome() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enqueue([]byte(player.WelcomeMessage))
	c.phase = PhaseLogon
}

// Run reads client input until the connection drops, the context is
// canceled, or the session fails. It owns the write loop for its lifetime.
func (c *Connection) Run(ctx context.Context) error {
	defer c.close()
	go c.writeLoop(ctx)

	// Read input lines into a channel so the select below can also watch
	// for shutdown.
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.rw)
		scanner.Buffer(make([]byte, maxLineBytes), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-c.done:
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-c.done:
			// The write loop gave up on this client.
			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}

			if !utf8.ValidString(line) {
				return fmt.Errorf("invalid utf-8 from client")
			}

			c.HandleLine(line)
		}
	}
}

// HandleLine consumes one line of input according to the current phase.
func (c *Connection) HandleLine(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseNew:
		c.enqueue([]byte(player.WelcomeMessage))
		c.phase = PhaseLogon

	case PhaseLogon:
		c.logon = player.ProcessLogon(line, c.logon, c.deps.players)
		c.Send(c.logon.ReturnMsg)

		switch c.logon.State {
		case player.LogonRegisterCreation:
			c.creator = player.NewCreator(c.logon.Username)
			c.phase = PhaseCharacterCreation
		case player.LogonDone:
			c.phase = PhasePlay
		}

	case PhaseCharacterCreation:
		c.creator = player.ProcessCreation(line, c.creator, c.deps.chars)
		c.Send(c.creator.ReturnMsg)

		if c.creator.State == player.CreationDone {
			c.phase = PhasePlay
		}

	case PhasePlay:
		result := c.deps.game.Command(c.logon.Username, line)
		if result == "" {
			return
		}

		// The author sees their own result on the next heartbeat like
		// everyone else; nothing is echoed here.
		_, err := c.deps.log.Append(result)
		if err != nil {
			slog.Error("appending play message", "sid", c.sid, "error", err)
			c.Send("Something went wrong handling that command.\n")
		}
	}
}

// Heartbeat pushes every message logged past this connection's watermark.
// Only playing connections receive pushes.
func (c *Connection) Heartbeat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhasePlay {
		return
	}

	recs, err := c.deps.log.Since(c.watermark)
	if err != nil {
		slog.Error("polling message log", "sid", c.sid, "error", err)
		return
	}

	for _, rec := range recs {
		if !rec.CreatedAt.After(c.watermark) {
			continue
		}

		c.watermark = rec.CreatedAt
		c.Send(rec.Message)
	}
}

// Send stamps text with the wall-clock time and queues it for delivery.
// Empty text is a no-op.
func (c *Connection) Send(text string) {
	if text == "" {
		return
	}

	c.enqueue([]byte(fmt.Sprintf("[%s]%s", time.Now().Format("15:04:05"), text)))
}

func (c *Connection) enqueue(msg []byte) {
	select {
	case c.outbound <- msg:
	default:
		slog.Warn("outbound queue full, dropping message", "sid", c.sid, "token", c.token)
	}
}

func (c *Connection) writeLoop(ctx context.Context) {
	for {
		select {
		case <-c.done:
			return

		case <-ctx.Done():
			return

		case msg := <-c.outbound:
			err := c.writeAll(msg)
			if err != nil {
				slog.Warn("writing to client", "sid", c.sid, "token", c.token, "error", err)
				c.close()
				return
			}
		}
	}
}

func (c *Connection) writeAll(b []byte) error {
	for len(b) > 0 {
		n, err := c.rw.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}

	return nil
}

func (c *Connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

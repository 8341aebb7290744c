package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/pixil98/go-mudserver/internal/msglog"
	"github.com/pixil98/go-mudserver/internal/player"
)

// Token identifies a live connection within the table. Tokens are unique
// among live connections and reused only after the prior holder is removed.
type Token int

// DefaultMaxConnections bounds the table when no capacity is configured.
const DefaultMaxConnections = 128

var ErrTableFull = errors.New("connection table full")

// Table owns every live connection. Nothing else mutates the set; the
// listeners join and remove through it and the tick driver fans heartbeats
// out through it.
type Table struct {
	capacity int
	deps     deps

	mu    sync.Mutex
	conns map[Token]*Connection
}

type TableOpt func(*Table)

// WithCapacity overrides the maximum number of live connections.
func WithCapacity(n int) TableOpt {
	return func(t *Table) {
		t.capacity = n
	}
}

// WithGameHandler overrides the play-phase command handler.
func WithGameHandler(h GameHandler) TableOpt {
	return func(t *Table) {
		t.deps.game = h
	}
}

func NewTable(log msglog.Log, players player.PlayerStore, chars player.CharacterStore, opts ...TableOpt) *Table {
	t := &Table{
		capacity: DefaultMaxConnections,
		deps: deps{
			log:     log,
			players: players,
			chars:   chars,
			game:    EchoHandler{},
		},
		conns: map[Token]*Connection{},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Join allocates a token and inserts a new connection for rw. It returns
// ErrTableFull when the table is at capacity.
func (t *Table) Join(rw io.ReadWriter) (*Connection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.conns) >= t.capacity {
		return nil, ErrTableFull
	}

	token := t.freeToken()
	conn := newConnection(token, rw, t.deps)
	t.conns[token] = conn

	return conn, nil
}

// freeToken returns the lowest token not currently in use. Callers hold the
// lock.
func (t *Table) freeToken() Token {
	for i := 0; ; i++ {
		_, ok := t.conns[Token(i)]
		if !ok {
			return Token(i)
		}
	}
}

// Remove tears down the connection registered under token. Removing an
// absent or already-removed token is a no-op.
func (t *Table) Remove(token Token) {
	t.mu.Lock()
	conn, ok := t.conns[token]
	delete(t.conns, token)
	t.mu.Unlock()

	if ok {
		conn.close()
	}
}

// Get returns the live connection for token, or nil.
func (t *Table) Get(token Token) *Connection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conns[token]
}

// Len returns the number of live connections.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}

// Tick delivers one heartbeat to every live connection. Delivery enqueues
// and never blocks on a slow client.
func (t *Table) Tick(ctx context.Context) error {
	t.mu.Lock()
	conns := make([]*Connection, 0, len(t.conns))
	for _, c := range t.conns {
		conns = append(conns, c)
	}
	t.mu.Unlock()

	for _, c := range conns {
		c.Heartbeat()
	}

	return nil
}

package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/pixil98/go-mudserver/internal/session"
)

// ConnectionManager joins accepted sockets to the session table and runs
// them until they drop. It is shared by every listener.
type ConnectionManager struct {
	table *session.Table
}

func NewConnectionManager(table *session.Table) *ConnectionManager {
	return &ConnectionManager{
		table: table,
	}
}

// AcceptConnection runs one client session to completion. A full table
// drops the socket; any session error tears down only this connection.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, rw io.ReadWriter) {
	conn, err := m.table.Join(rw)
	if err != nil {
		if errors.Is(err, session.ErrTableFull) {
			slog.WarnContext(ctx, "connection table full, dropping connection")
			return
		}
		slog.ErrorContext(ctx, "joining connection table", "error", err)
		return
	}
	defer m.table.Remove(conn.Token())

	conn.Welcome()

	err = conn.Run(ctx)
	if err != nil {
		slog.WarnContext(ctx, "player session", "token", conn.Token(), "error", err)
	}
}

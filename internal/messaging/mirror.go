package messaging

import (
	"encoding/json"
	"log/slog"

	"github.com/pixil98/go-mudserver/internal/msglog"
)

// DefaultMirrorSubject carries every appended message record.
const DefaultMirrorSubject = "mud.messages"

// LogMirror republishes appended message-log records over NATS so external
// tooling can watch the stream without touching the database. It is fire and
// forget; a failed publish is logged and the record is still delivered to
// clients through the heartbeat path.
type LogMirror struct {
	server  *NatsServer
	subject string
}

func NewLogMirror(server *NatsServer, subject string) *LogMirror {
	if subject == "" {
		subject = DefaultMirrorSubject
	}

	return &LogMirror{
		server:  server,
		subject: subject,
	}
}

// Notify is wired into the message log's append hook.
func (m *LogMirror) Notify(rec msglog.Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		slog.Error("marshalling message record", "id", rec.ID, "error", err)
		return
	}

	err = m.server.Publish(m.subject, data)
	if err != nil {
		slog.Warn("mirroring message record", "id", rec.ID, "error", err)
	}
}

package command

import (
	"fmt"

	"github.com/pixil98/go-mudserver/internal/driver"
	"github.com/pixil98/go-mudserver/internal/listener"
	"github.com/pixil98/go-mudserver/internal/messaging"
	"github.com/pixil98/go-mudserver/internal/msglog"
	"github.com/pixil98/go-mudserver/internal/session"
	"github.com/pixil98/go-mudserver/internal/storage"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Open the shared database and build the stores
	db, err := cfg.Storage.OpenDatabase()
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	players, err := storage.NewPlayerStore(db)
	if err != nil {
		return nil, fmt.Errorf("creating player store: %w", err)
	}

	chars, err := storage.NewCharacterStore(db)
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}

	// The embedded nats server mirrors the message log for external tooling
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	mirror := messaging.NewLogMirror(natsServer, messaging.DefaultMirrorSubject)

	msgs, err := msglog.NewStore(db, msglog.WithNotify(mirror.Notify))
	if err != nil {
		return nil, fmt.Errorf("creating message log: %w", err)
	}

	// Session table and connection manager
	var tableOpts []session.TableOpt
	if cfg.Sessions.MaxConnections > 0 {
		tableOpts = append(tableOpts, session.WithCapacity(cfg.Sessions.MaxConnections))
	}
	table := session.NewTable(msgs, players, chars, tableOpts...)
	cm := listener.NewConnectionManager(table)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// The tick driver fans heartbeats out to every live connection
	heartbeat := driver.NewDriver(
		[]driver.Manager{table},
		driver.WithTickLength(cfg.tickLength()),
	)

	return service.WorkerList{
		"nats":      natsServer,
		"heartbeat": heartbeat,
		"listeners": &listeners,
	}, nil
}

package msglog

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Record is one immutable row in the append-only message log. Target is
// reserved for per-recipient routing; every record currently fans out to all
// playing connections.
type Record struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Target    string    `json:"target"`
}

func (Record) TableName() string {
	return "messages"
}

// TargetAll is the only routing target in use today.
const TargetAll = "all"

// Log is what the session layer polls on each heartbeat.
type Log interface {
	Append(text string) (Record, error)
	Since(t time.Time) ([]Record, error)
}

// Store is a sqlite-backed Log. Appends are serialized so creation
// timestamps stay non-decreasing in insertion order; reads only need a
// consistent snapshot and go straight to the database.
type Store struct {
	db     *gorm.DB
	notify func(Record)

	mu sync.Mutex
}

type StoreOpt func(*Store)

// WithNotify registers a hook invoked after every successful append. The
// hook must not block; delivery to clients never depends on it.
func WithNotify(fn func(Record)) StoreOpt {
	return func(s *Store) {
		s.notify = fn
	}
}

func NewStore(db *gorm.DB, opts ...StoreOpt) (*Store, error) {
	s := &Store{db: db}

	for _, opt := range opts {
		opt(s)
	}

	err := db.AutoMigrate(&Record{})
	if err != nil {
		return nil, fmt.Errorf("migrating messages table: %w", err)
	}

	return s, nil
}

// Append assigns the next id and the current time, persists the record, and
// returns it as stored.
func (s *Store) Append(text string) (Record, error) {
	s.mu.Lock()
	rec := Record{
		Message:   text,
		CreatedAt: time.Now(),
		Target:    TargetAll,
	}
	err := s.db.Create(&rec).Error
	s.mu.Unlock()

	if err != nil {
		return Record{}, fmt.Errorf("inserting message: %w", err)
	}

	if s.notify != nil {
		s.notify(rec)
	}

	return rec, nil
}

// Since returns every record with a creation timestamp strictly greater than
// t, ascending.
func (s *Store) Since(t time.Time) ([]Record, error) {
	var recs []Record
	err := s.db.Where("created_at > ?", t).Order("created_at asc").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}

	return recs, nil
}

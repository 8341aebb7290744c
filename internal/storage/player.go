package storage

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// PlayerRecord is one registered account.
type PlayerRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;not null"`
	Password string //TODO make this okay to save
	Stage    string
}

func (PlayerRecord) TableName() string {
	return "players"
}

// PlayerStore persists accounts created during logon registration.
type PlayerStore struct {
	db *gorm.DB
}

func NewPlayerStore(db *gorm.DB) (*PlayerStore, error) {
	err := db.AutoMigrate(&PlayerRecord{})
	if err != nil {
		return nil, fmt.Errorf("migrating players table: %w", err)
	}

	return &PlayerStore{db: db}, nil
}

// Exists reports whether an account with the given name is registered.
// Lookup failures are logged and treated as unknown names; the logon flow
// will route the client into registration, which then fails loudly if the
// store really is down.
func (s *PlayerStore) Exists(name string) bool {
	var count int64
	err := s.db.Model(&PlayerRecord{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		slog.Error("looking up player", "name", name, "error", err)
		return false
	}

	return count > 0
}

// Create registers a new account, leaving it staged for character creation.
func (s *PlayerStore) Create(name, password string) error {
	rec := PlayerRecord{
		Name:     name,
		Password: password,
		Stage:    "creation",
	}

	err := s.db.Create(&rec).Error
	if err != nil {
		return fmt.Errorf("creating player %q: %w", name, err)
	}

	return nil
}

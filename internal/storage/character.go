package storage

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CharacterSheet is the persisted form of a finished character. The info and
// attribute maps are stored as JSON blobs so new keys don't need schema
// changes.
type CharacterSheet struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
	Info string
	Attr string
}

func (CharacterSheet) TableName() string {
	return "character_sheets"
}

// CharacterStore persists characters confirmed at the end of creation.
type CharacterStore struct {
	db *gorm.DB
}

func NewCharacterStore(db *gorm.DB) (*CharacterStore, error) {
	err := db.AutoMigrate(&CharacterSheet{})
	if err != nil {
		return nil, fmt.Errorf("migrating character_sheets table: %w", err)
	}

	return &CharacterStore{db: db}, nil
}

// Save upserts the character sheet for the given account name.
func (s *CharacterStore) Save(name string, info map[string]string, attr map[string]int) error {
	infoData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshalling info: %w", err)
	}

	attrData, err := json.Marshal(attr)
	if err != nil {
		return fmt.Errorf("marshalling attributes: %w", err)
	}

	sheet := CharacterSheet{
		Name: name,
		Info: string(infoData),
		Attr: string(attrData),
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"info", "attr"}),
	}).Create(&sheet).Error
	if err != nil {
		return fmt.Errorf("saving character %q: %w", name, err)
	}

	return nil
}

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/gorm"
)

// MemoryStore keeps the state in memory only.
type MemoryStore struct {
	mu    sync.Mutex
	state *State
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return State{}, ErrNoSession
	}
	return *m.state, nil
}

func (m *MemoryStore) Save(st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &st
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}

// FileStore keeps the state as JSON in a single file, keyed by StorageKey.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (f *FileStore) Load() (State, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, ErrNoSession
	}
	if err != nil {
		return State{}, err
	}
	var doc map[string]State
	if err := json.Unmarshal(b, &doc); err != nil {
		return State{}, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	st, ok := doc[StorageKey]
	if !ok {
		return State{}, ErrNoSession
	}
	return st, nil
}

func (f *FileStore) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(map[string]State{StorageKey: st}, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// SessionRecord is the key/value row used by DBStore.
type SessionRecord struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// DBStore keeps the state in a key/value table through GORM, typically a
// local SQLite file shared with other tools.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore migrates the session table and returns a store.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate session table: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (d *DBStore) Load() (State, error) {
	var rec SessionRecord
	err := d.db.Where("key = ?", StorageKey).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return State{}, ErrNoSession
	}
	if err != nil {
		return State{}, err
	}
	var st State
	if err := json.Unmarshal([]byte(rec.Value), &st); err != nil {
		return State{}, fmt.Errorf("decode session row: %w", err)
	}
	return st, nil
}

func (d *DBStore) Save(st State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return d.db.Save(&SessionRecord{Key: StorageKey, Value: string(b)}).Error
}

func (d *DBStore) Clear() error {
	return d.db.Where("key = ?", StorageKey).Delete(&SessionRecord{}).Error
}

package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/markusressel/boost2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSettings = "settings"
)

// Settings is a persistent string key/value store
type Settings interface {
	// Get returns the value of the given key, or defaultValue if it does not exist
	Get(key string, defaultValue string) string
	Set(key string, value string) error
	Contains(key string) bool
	Remove(key string) error
	// Keys returns all keys in no particular order
	Keys() ([]string, error)
}

// BoltSettings stores settings in a bolt database.
// The database is only opened for the duration of a single operation,
// so the cli can inspect it while the daemon is running.
type BoltSettings struct {
	dbPath string
}

func NewBoltSettings(dbPath string) *BoltSettings {
	return &BoltSettings{
		dbPath: dbPath,
	}
}

func (p BoltSettings) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p BoltSettings) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (p BoltSettings) Get(key string, defaultValue string) string {
	value, err := p.load(key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ui.Warning("Unable to read setting %s: %v", key, err)
		}
		return defaultValue
	}
	return value
}

func (p BoltSettings) Contains(key string) bool {
	_, err := p.load(key)
	return err == nil
}

func (p BoltSettings) load(key string) (string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return "", err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSettings))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(key))
		if v == nil {
			return os.ErrNotExist
		}
		result = string(v)
		return nil
	})
	return result, err
}

func (p BoltSettings) Set(key string, value string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSettings))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(key), []byte(value))
	})
}

func (p BoltSettings) Remove(key string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSettings))
		if b == nil {
			// no settings bucket yet
			return nil
		}
		return b.Delete([]byte(key))
	})
}

func (p BoltSettings) Keys() ([]string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSettings))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			result = append(result, string(k))
			return nil
		})
	})
	return result, err
}

// MemorySettings keeps settings in memory only
type MemorySettings struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySettings() *MemorySettings {
	return &MemorySettings{
		values: map[string]string{},
	}
}

func (m *MemorySettings) Get(key string, defaultValue string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value, ok := m.values[key]; ok {
		return value
	}
	return defaultValue
}

func (m *MemorySettings) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemorySettings) Contains(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

func (m *MemorySettings) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemorySettings) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, 0, len(m.values))
	for key := range m.values {
		result = append(result, key)
	}
	return result, nil
}

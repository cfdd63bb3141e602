// Package store is the persistent key/value storage used by the store
// plugin. It is backed by a bbolt database file.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Lantharos/flick/pkg/logutil"
	. "github.com/Lantharos/flick/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Functions run when a database is opened, keyed by description.
var initDB = map[string](func(*bolt.Tx) error){}

// dbStore is the permanent storage backend.
type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file, creating it if needed.
func NewStore(dbname string) (Store, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (Store, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	logger.Println("closing store")
	return s.db.Close()
}

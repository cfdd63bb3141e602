package store

import (
	bolt "go.etcd.io/bbolt"

	. "github.com/Lantharos/flick/pkg/store/storedefs"
)

const bucketKV = "kv"

func init() {
	initDB["initialize key/value table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketKV))
		return err
	}
}

// Get gets the value of a key.
func (s *dbStore) Get(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKV))
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoKey
		}
		value = string(v)
		return nil
	})
	return value, err
}

// Put sets the value of a key.
func (s *dbStore) Put(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKV))
		return b.Put([]byte(key), []byte(value))
	})
}

// Delete deletes a key. Deleting a key that does not exist is not an error.
func (s *dbStore) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKV))
		return b.Delete([]byte(key))
	})
}

// Keys lists all keys in byte order.
func (s *dbStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketKV)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

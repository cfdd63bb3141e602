// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoKey is returned by Store.Get when there is no such key.
var ErrNoKey = errors.New("no such key")

// Store is an interface satisfied by the storage service: a persistent map
// from string keys to string values.
type Store interface {
	Get(key string) (string, error)
	Put(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

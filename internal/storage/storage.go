package storage

import "errors"

// ErrNotFound is returned by Get for keys that have never been set or have
// been removed.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistent key-value port behind the cart and session stores.
// Keys and values are strings; writes are durable once Set returns. There
// are no transactions — callers own read-modify-write consistency.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

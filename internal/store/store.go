// Package store implements the persistence boundary: a JSON document adapter
// over a pluggable key-value backend. Everything above this package is
// insulated from serialization and disk concerns.
package store

import "errors"

// ErrNotFound is returned by KV backends when a key has never been written.
var ErrNotFound = errors.New("store: not found")

// Fixed namespaces for the persisted state.
const (
	KeyAccounts = "accounts"
	KeySession  = "session"
	KeyAudits   = "audits"
)

// KV is the raw byte-level backend contract. Implementations: filekv (one
// JSON document per key on a filesystem) and sqlitekv (embedded SQLite).
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
}

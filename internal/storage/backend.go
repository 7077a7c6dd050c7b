// Package storage persists whole documents under fixed keys.
//
// Every record is read and written as a single document; callers do a
// read-modify-write and never update a record incrementally. Three
// backends are available: a SQLite file (pure-Go modernc.org/sqlite), the
// platform's per-user app data directory (gdata) and process memory.
package storage

import (
	"errors"
	"fmt"
	"sync"
)

// ErrWriteFailed is returned by Memory when write failures are simulated.
var ErrWriteFailed = errors.New("storage: write failed")

// Backend is a key/value store of whole documents.
type Backend interface {
	// Load returns the document under key. ok is false when the key has
	// never been written.
	Load(key string) (data []byte, ok bool, err error)
	// Save replaces the document under key.
	Save(key string, data []byte) error
	// Close releases the backend.
	Close() error
}

// Kind names a backend implementation.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindGdata  Kind = "gdata"
	KindMemory Kind = "memory"
)

// Kinds lists every backend kind.
var Kinds = []Kind{KindSQLite, KindGdata, KindMemory}

// Options selects and configures a backend for OpenBackend.
type Options struct {
	Kind    Kind
	DBPath  string // SQLite file, ~ is expanded
	AppName string // gdata application name
}

// OpenBackend opens the backend named by opts.Kind.
func OpenBackend(opts Options) (Backend, error) {
	switch opts.Kind {
	case KindSQLite, "":
		return Open(opts.DBPath)
	case KindGdata:
		return OpenGdata(opts.AppName)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Kind)
	}
}

// Memory keeps documents in process memory. It is the fallback when no
// persistent backend can be opened, and the test double for the others.
type Memory struct {
	mu        sync.Mutex
	docs      map[string][]byte
	failWrite bool
}

// NewMemory creates an empty memory backend.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Load implements Backend.
func (m *Memory) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Save implements Backend.
func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return ErrWriteFailed
	}
	m.docs[key] = append([]byte(nil), data...)
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error {
	return nil
}

// FailWrites makes every following Save fail with ErrWriteFailed.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	m.failWrite = fail
	m.mu.Unlock()
}

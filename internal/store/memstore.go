package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"chain-reaction/internal/shared"
)

var (
	// ErrNotFound indicates the requested room does not exist.
	ErrNotFound = errors.New("room not found")
	// ErrConflict indicates another writer committed first.
	ErrConflict = errors.New("room version conflict")
)

type record struct {
	doc     []byte
	version int64
}

// MemoryStore keeps rooms as encoded documents, so every read hands out a
// fresh value that shares nothing with the stored copy.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]record{},
	}
}

func (m *MemoryStore) GetRoom(ctx context.Context, id string) (shared.Room, error) {
	if err := ctx.Err(); err != nil {
		return shared.Room{}, err
	}
	m.mu.RLock()
	rec, ok := m.rooms[id]
	m.mu.RUnlock()
	if !ok {
		return shared.Room{}, ErrNotFound
	}
	return decodeRoom(rec.doc, rec.version)
}

// CreateRoom stores a new room at version 1.
func (m *MemoryStore) CreateRoom(ctx context.Context, r shared.Room) (shared.Room, error) {
	if err := ctx.Err(); err != nil {
		return shared.Room{}, err
	}
	r.Version = 1
	doc, err := encodeRoom(r)
	if err != nil {
		return shared.Room{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.rooms[r.ID]; exists {
		return shared.Room{}, ErrConflict
	}
	m.rooms[r.ID] = record{doc: doc, version: r.Version}
	return decodeRoom(doc, r.Version)
}

// SaveRoomIfVersion replaces the room only if its stored version still
// equals expectedVersion, and returns the committed room.
func (m *MemoryStore) SaveRoomIfVersion(ctx context.Context, r shared.Room, expectedVersion int64) (shared.Room, error) {
	if err := ctx.Err(); err != nil {
		return shared.Room{}, err
	}
	r.Version = expectedVersion + 1
	doc, err := encodeRoom(r)
	if err != nil {
		return shared.Room{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rooms[r.ID]
	if !ok {
		return shared.Room{}, ErrNotFound
	}
	if rec.version != expectedVersion {
		return shared.Room{}, ErrConflict
	}
	m.rooms[r.ID] = record{doc: doc, version: r.Version}
	return decodeRoom(doc, r.Version)
}

func encodeRoom(r shared.Room) ([]byte, error) {
	doc, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode room %s: %w", r.ID, err)
	}
	return doc, nil
}

func decodeRoom(doc []byte, version int64) (shared.Room, error) {
	var r shared.Room
	if err := json.Unmarshal(doc, &r); err != nil {
		return shared.Room{}, fmt.Errorf("decode room: %w", err)
	}
	r.Version = version
	return r, nil
}

// EncodeRoom and DecodeRoom expose the document codec to other backends.
func EncodeRoom(r shared.Room) ([]byte, error) { return encodeRoom(r) }

func DecodeRoom(doc []byte, version int64) (shared.Room, error) { return decodeRoom(doc, version) }

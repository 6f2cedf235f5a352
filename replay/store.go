package replay

import (
	"errors"
	"fmt"
	"slices"

	"github.com/quasilyte/gdata"
)

var ErrNotFound = errors.New("replay not found")

const indexKey = "replays"

// Backend is the key/value store replays are kept in. *gdata.Manager
// satisfies it.
type Backend interface {
	SaveItem(key string, data []byte) error
	LoadItem(key string) ([]byte, error)
}

type Store struct {
	backend Backend
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open replay store: %w", err)
	}
	return NewStore(m), nil
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

func itemKey(id string) string { return "replay_" + id }

func (s *Store) Save(r *Replay) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}
	if err := s.backend.SaveItem(itemKey(r.ID), data); err != nil {
		return fmt.Errorf("save replay %s: %w", r.ID, err)
	}

	ids, err := s.List()
	if err != nil {
		return err
	}
	if slices.Contains(ids, r.ID) {
		return nil
	}
	ids = append(ids, r.ID)
	idx, err := encodeIndex(ids)
	if err != nil {
		return err
	}
	if err := s.backend.SaveItem(indexKey, idx); err != nil {
		return fmt.Errorf("save replay index: %w", err)
	}
	return nil
}

func (s *Store) Load(id string) (*Replay, error) {
	data, err := s.backend.LoadItem(itemKey(id))
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", id, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return Decode(data)
}

// List returns stored replay ids, oldest first.
func (s *Store) List() ([]string, error) {
	data, err := s.backend.LoadItem(indexKey)
	if err != nil {
		return nil, fmt.Errorf("load replay index: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return decodeIndex(data)
}

func encodeIndex(ids []string) ([]byte, error) {
	var out []byte
	if err := codecEncodeBytes(&out, ids); err != nil {
		return nil, fmt.Errorf("encode replay index: %w", err)
	}
	return out, nil
}

func decodeIndex(data []byte) ([]string, error) {
	var ids []string
	if err := codecDecodeBytes(data, &ids); err != nil {
		return nil, fmt.Errorf("decode replay index: %w", err)
	}
	return ids, nil
}

// MemoryBackend keeps items in a map. LoadItem returns nil for unknown keys,
// like gdata does.
type MemoryBackend map[string][]byte

func (m MemoryBackend) SaveItem(key string, data []byte) error {
	m[key] = slices.Clone(data)
	return nil
}

func (m MemoryBackend) LoadItem(key string) ([]byte, error) {
	return m[key], nil
}

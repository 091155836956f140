package main

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// store is a string map persisted as a JSON file, used for the per-user
// Readeck tokens and Telegraph access tokens. Every mutation writes the
// file back so credentials survive restarts. A missing or corrupt file
// starts the store empty rather than failing.
type store struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

func openStore(path string) *store {
	s := &store{
		path: path,
		data: map[string]string{},
	}

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(fileBytes, &s.data); err != nil {
		s.data = map[string]string{}
	}
	return s
}

func (s *store) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *store) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

func (s *store) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.save()
}

// save must be called with the lock held.
func (s *store) save() error {
	fileBytes, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode store")
	}
	if err := os.WriteFile(s.path, fileBytes, 0o600); err != nil {
		return errors.Wrap(err, "could not write store")
	}
	return nil
}

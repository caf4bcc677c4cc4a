package settings

import (
	"sort"
	"sync"
)

// MemorySource keeps settings in-memory and guards access with a RWMutex.
type MemorySource struct {
	mu          sync.RWMutex
	values      map[string]string
	connections map[string]ConnectionRecord
}

// NewMemorySource initialises an empty source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		values:      make(map[string]string),
		connections: make(map[string]ConnectionRecord),
	}
}

// Get returns the raw value stored under key.
func (s *MemorySource) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok
}

// ConnectionRecord returns the raw connection record stored under name.
func (s *MemorySource) ConnectionRecord(name string) (ConnectionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.connections[name]
	return record, ok
}

// SetValue stores value under key, replacing any previous value.
func (s *MemorySource) SetValue(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

// DeleteValue removes key. Deleting an unknown key is a no-op.
func (s *MemorySource) DeleteValue(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// SetConnection stores a connection record under name.
func (s *MemorySource) SetConnection(name string, record ConnectionRecord) {
	s.mu.Lock()
	s.connections[name] = record
	s.mu.Unlock()
}

// DeleteConnection removes the connection record stored under name.
func (s *MemorySource) DeleteConnection(name string) {
	s.mu.Lock()
	delete(s.connections, name)
	s.mu.Unlock()
}

// ConnectionNames returns the sorted names of all stored connection records.
func (s *MemorySource) ConnectionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.connections))
	for name := range s.connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

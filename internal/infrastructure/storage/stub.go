package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	boardapp "github.com/taskboard/backend/internal/application/board"
)

// Ensure StubObjectStorage implements boardapp.ObjectStorage
var _ boardapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps objects in memory. Used in development and tests
// where no S3-compatible service is available.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]stubObject
}

type stubObject struct {
	data        []byte
	contentType string
}

// NewStubObjectStorage creates an empty in-memory storage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{objects: make(map[string]stubObject)}
}

func (s *StubObjectStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return fmt.Errorf("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = stubObject{data: stored, contentType: contentType}
	return nil
}

func (s *StubObjectStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *StubObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *StubObjectStorage) DownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", time.Time{}, fmt.Errorf("object %q not found", key)
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return s.ObjectURL(key), time.Now().Add(expiresIn), nil
}

func (s *StubObjectStorage) ObjectURL(key string) string {
	return "stub://attachments/" + key
}

// Object returns a stored object's bytes, for test assertions
func (s *StubObjectStorage) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.data, ok
}

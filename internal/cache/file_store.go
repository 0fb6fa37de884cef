package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps one JSON envelope file per domain key under a root
// directory.
type FileStore struct {
	rootDir string
}

// NewFileStore creates a FileStore rooted at rootDir. The directory is
// created on the first write.
func NewFileStore(rootDir string) *FileStore {
	return &FileStore{
		rootDir: rootDir,
	}
}

type fileEnvelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

func (s *FileStore) filePath(key string) string {
	return filepath.Join(s.rootDir, key+".json")
}

// Read returns the cached entry for key, or (nil, nil) when no file exists.
func (s *FileStore) Read(_ context.Context, key string) (*Entry, error) {
	contents, err := os.ReadFile(s.filePath(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(contents, &envelope); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return &Entry{
		Key:       key,
		Payload:   envelope.Payload,
		FetchedAt: envelope.FetchedAt,
	}, nil
}

// Write overwrites the entry for key.
func (s *FileStore) Write(_ context.Context, key string, payload []byte, fetchedAt time.Time) error {
	if err := os.MkdirAll(s.rootDir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}

	contents, err := json.Marshal(fileEnvelope{
		FetchedAt: fetchedAt,
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := os.WriteFile(s.filePath(key), contents, 0644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	return nil
}

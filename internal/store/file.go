package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumeaudit/internal/types"
)

// FileStore keeps one JSON document per slot in a directory
type FileStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewFileStore creates dir if needed
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, "resume-"+slot+".json")
}

func (s *FileStore) read(slot string) (*Entry, error) {
	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return &entry, nil
}

// write replaces the slot file atomically
func (s *FileStore) write(entry *Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", entry.Slot, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".resume-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), s.path(entry.Slot))
}

func (s *FileStore) Save(ctx context.Context, slot string, r types.ResumeRecord) (*Entry, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(slot)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	entry, err := prepareSave(slot, r, existing, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.write(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FileStore) Get(ctx context.Context, slot string) (*Entry, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(slot)
}

// List returns stored entries in slot order
func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []Entry{}
	for _, slot := range Slots() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := s.read(slot)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func (s *FileStore) Delete(ctx context.Context, slot string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *FileStore) RecordBias(ctx context.Context, slot string, score, issues int) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.read(slot)
	if err != nil {
		return err
	}
	entry.BiasScore = intPtr(score)
	entry.BiasIssues = intPtr(issues)
	entry.UpdatedAt = s.now().UTC()
	return s.write(entry)
}

func (s *FileStore) Close() error { return nil }

package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	dErrors "tenderai/pkg/domain-errors"
	"tenderai/pkg/secrets"
)

// FileStore keeps credentials in a single passphrase-sealed JSON file.
// Every write replaces the file atomically.
type FileStore struct {
	mu         sync.Mutex
	path       string
	passphrase string
}

func NewFileStore(path, passphrase string) (*FileStore, error) {
	if path == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "credentials file path cannot be empty")
	}
	if passphrase == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "credentials passphrase cannot be empty")
	}
	return &FileStore{path: path, passphrase: passphrase}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStore) load() (map[string]string, error) {
	sealed, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "read credentials file")
	}
	plain, err := secrets.Open(s.passphrase, sealed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "open credentials file")
	}
	values := make(map[string]string)
	if err := json.Unmarshal(plain, &values); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "decode credentials file")
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	plain, err := json.Marshal(values)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "encode credentials")
	}
	sealed, err := secrets.Seal(s.passphrase, plain)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, sealed); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "write credentials file")
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err == nil {
		return nil
	}

	defer os.Remove(tmp)

	if runtime.GOOS == "windows" {
		_ = os.Remove(path)
	}
	return os.Rename(tmp, path)
}

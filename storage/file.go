package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// ErrLocked is returned when reading an encrypted value without a passphrase.
var ErrLocked = errors.New("value is encrypted; a passphrase is required")

// ErrWrongPassphrase is returned when an encrypted value cannot be decrypted.
var ErrWrongPassphrase = errors.New("incorrect passphrase")

// FileStore keeps each key in its own file, "<key>.json", under a base
// directory. Writes go through a temporary file and a rename.
type FileStore struct {
	dir       string
	identity  *age.ScryptIdentity
	recipient *age.ScryptRecipient
}

// FileOption configures a FileStore.
type FileOption func(*FileStore) error

// WithPassphrase encrypts written values with age scrypt and decrypts
// encrypted values on read.
func WithPassphrase(passphrase string) FileOption {
	return func(s *FileStore) error {
		if passphrase == "" {
			return nil
		}
		recipient, err := age.NewScryptRecipient(passphrase)
		if err != nil {
			return fmt.Errorf("create recipient: %w", err)
		}
		identity, err := age.NewScryptIdentity(passphrase)
		if err != nil {
			return fmt.Errorf("create identity: %w", err)
		}
		s.recipient = recipient
		s.identity = identity
		return nil
	}
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on first write.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{dir: dir}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dir returns the base directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Encrypted reports whether values are written encrypted.
func (s *FileStore) Encrypted() bool {
	return s.recipient != nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !isEncrypted(data) {
		return data, nil
	}
	if s.identity == nil {
		return nil, ErrLocked
	}
	plain, err := decrypt(data, s.identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
	}
	return plain, nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.recipient != nil {
		encrypted, err := encrypt(value, s.recipient)
		if err != nil {
			return fmt.Errorf("encrypt %s: %w", key, err)
		}
		value = encrypted
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

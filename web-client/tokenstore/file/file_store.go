package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arunvm123/bookingportal/web-client/tokenstore"
)

// FileTokenStore writes the token to <dir>/event_jwt with owner-only permissions.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(stateDir string) (*FileTokenStore, error) {
	if stateDir == "" {
		dir, err := DefaultStateDir()
		if err != nil {
			return nil, err
		}
		stateDir = dir
	}
	return &FileTokenStore{path: filepath.Join(stateDir, tokenstore.TokenKey)}, nil
}

// DefaultStateDir returns $XDG_CONFIG_HOME/bookingportal, falling back to
// ~/.config/bookingportal.
func DefaultStateDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "bookingportal"), nil
}

func (f *FileTokenStore) Path() string {
	return f.path
}

func (f *FileTokenStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file %s: %w", f.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(ctx context.Context, token string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating state directory %s: %w", dir, err)
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token file %s: %w", f.path, err)
	}
	return nil
}

func (f *FileTokenStore) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token file %s: %w", f.path, err)
	}
	return nil
}

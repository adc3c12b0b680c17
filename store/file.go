package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	papertrade "github.com/etnz/papertrade"
)

// Dir persists one JSON file per user under a directory. Writes go through
// a temp file and a rename so a crash mid-save never truncates a portfolio.
type Dir struct {
	path string
}

// NewDir creates the directory if needed and returns a store over it.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("could not create store directory %q: %w", path, err)
	}
	return &Dir{path: path}, nil
}

// userFile maps a user ID to its file path. IDs are restricted to a safe
// character set so an ID can never escape the store directory.
func (s *Dir) userFile(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("empty user id")
	}
	for _, r := range userID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_@.", r) && !strings.Contains(userID, ".."):
		default:
			return "", fmt.Errorf("invalid user id %q", userID)
		}
	}
	return filepath.Join(s.path, userID+".json"), nil
}

func (s *Dir) Load(userID string) (*papertrade.Portfolio, bool, error) {
	path, err := s.userFile(userID)
	if err != nil {
		return nil, false, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not open portfolio file %q: %w", path, err)
	}
	defer f.Close()

	p, err := papertrade.DecodePortfolio(f)
	if err != nil {
		return nil, false, fmt.Errorf("could not decode portfolio file %q: %w", path, err)
	}
	return p, true, nil
}

func (s *Dir) Save(userID string, p *papertrade.Portfolio) error {
	path, err := s.userFile(userID)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.path, userID+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temp file in %q: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if err := papertrade.EncodePortfolio(tmp, p); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp file %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace portfolio file %q: %w", path, err)
	}
	return nil
}

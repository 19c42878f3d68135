// Package emu persists battery backed cartridge RAM between runs.
package emu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
)

// save file naming convention:
// <title>.<xxhash64 of rom>.sav
//
// the hash keeps ROMs that share a title (or have none) apart.

// Saves is a folder of save files.
type Saves struct {
	Folder string
}

// NewSaves returns Saves rooted at folder, creating it if needed.
func NewSaves(folder string) (*Saves, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, err
	}
	return &Saves{Folder: folder}, nil
}

// Path returns the save file path for the given cartridge.
func (s *Saves) Path(title string, rom []byte) string {
	return filepath.Join(s.Folder, fmt.Sprintf("%s.%016x.sav", sanitise(title), xxhash.Sum64(rom)))
}

// Load returns the saved RAM for the given cartridge, or nil if
// it has never been saved.
func (s *Saves) Load(title string, rom []byte) ([]byte, error) {
	b, err := os.ReadFile(s.Path(title, rom))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

// Save writes ram for the given cartridge. The data is written to a
// temporary file first and renamed over the save, so a crash never
// leaves a truncated save behind.
func (s *Saves) Save(title string, rom, ram []byte) error {
	path := s.Path(title, rom)
	f, err := os.CreateTemp(s.Folder, filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := f.Write(ram); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write to temporary save file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

func sanitise(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "untitled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, title)
}

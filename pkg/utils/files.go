// Package utils holds helpers shared by the host programs.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no ROM image.
var ErrEmptyArchive = errors.New("utils: archive contains no rom")

// romExtensions are the extensions picked out of an archive when it
// holds more than one file.
var romExtensions = []string{".gb", ".gbc", ".sgb"}

// LoadFile loads the given file and performs decompression if necessary.
// Zip and 7z archives yield the first ROM image they contain, or their
// first file if none has a ROM extension.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", filename, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", filename, err)
		}
		files := make([]archived, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		return readArchive(files)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", filename, err)
		}
		files := make([]archived, len(r.File))
		for i, f := range r.File {
			files[i] = f
		}
		return readArchive(files)
	default:
		// return the data as is
		return data, nil
	}
}

// archived is the part of a zip.File and sevenzip.File that LoadFile needs.
type archived interface {
	FileInfo() os.FileInfo
	Open() (io.ReadCloser, error)
}

func readArchive(files []archived) ([]byte, error) {
	var pick archived
	for _, f := range files {
		info := f.FileInfo()
		if info.IsDir() {
			continue
		}
		if pick == nil {
			pick = f
		}
		if isROM(info.Name()) {
			pick = f
			break
		}
	}
	if pick == nil {
		return nil, ErrEmptyArchive
	}

	rc, err := pick.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func isROM(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range romExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

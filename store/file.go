package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const maxRotatingBackups = 10

// FileKV keeps each key in its own JSON file inside a directory.
// Every write is atomic and keeps a latest backup (.bak) plus a rotating
// timestamped backup set.
type FileKV struct {
	dir string
}

// NewFileKV returns a FileKV rooted at dir. The directory is created on the
// first write.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Path returns the file that holds key.
func (f *FileKV) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileKV) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes safely using temporary file + atomic rename.
func (f *FileKV) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := f.Path(key)
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	if err := backup(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Restore moves the current file aside and puts back the newest backup that
// valid accepts.
func (f *FileKV) Restore(key string, valid func([]byte) bool) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	path := f.Path(key)

	data, source, err := latestValidBackup(path, valid)
	if err != nil {
		return "", err
	}
	if _, err := moveCorruptFile(path); err != nil {
		return "", fmt.Errorf("move corrupt file: %w", err)
	}
	if err := f.Set(key, data); err != nil {
		return "", fmt.Errorf("restore backup: %w", err)
	}
	return source, nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return err
	}

	timestamp := time.Now().UTC().Format("20060102-150405.000000000")
	rotatingPath := fmt.Sprintf("%s.bak.%s", path, timestamp)
	if err := os.WriteFile(rotatingPath, data, 0o644); err != nil {
		return err
	}

	return pruneRotatingBackups(path)
}

func pruneRotatingBackups(path string) error {
	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}
	if len(files) <= maxRotatingBackups {
		return nil
	}

	sort.Strings(files)
	for _, old := range files[:len(files)-maxRotatingBackups] {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// latestValidBackup walks rotating backups newest first, then the plain
// .bak file. Rotating names sort by time, so no stat is needed.
func latestValidBackup(path string, valid func([]byte) bool) ([]byte, string, error) {
	rotating, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return nil, "", err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(rotating)))
	candidates := append(rotating, path+".bak")

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if valid != nil && !valid(data) {
			continue
		}
		return data, candidate, nil
	}
	return nil, "", ErrNoValidBackup
}

func moveCorruptFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	timestamp := time.Now().UTC().Format("20060102-150405")
	corruptPath := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s.corrupt-%s%s", name, timestamp, ext))
	if err := os.Rename(path, corruptPath); err != nil {
		return "", err
	}
	return corruptPath, nil
}

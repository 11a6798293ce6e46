package settings

import (
	"bytes"         // In-memory encoding of the cache file
	"encoding/json" // Token-level decoding keeps key order
	"errors"        // Sentinel errors
	"fmt"           // Error wrapping
	"io"            // io.EOF after the closing brace
	"os"            // File access and atomic rename
	"path/filepath" // Cache location and temp file naming

	"project-setup/internal/logger" // Colored logging
)

// FileName is the name of the cache file kept next to the executable.
const FileName = "options_cache.json"

// Keys written by the tool itself. The store accepts any other key too.
const (
	KeyFirstSetup   = "first_setup"
	KeyOSName       = "os_name"
	KeyPlatformName = "platform_name"
	KeyReleaseName  = "release_name"
	KeyVcpkgRoot    = "vcpkg_root"
	KeyBuildType    = "build_type"
)

// ErrCorrupt is returned by every read of a cache file that cannot be parsed.
// The only recovery is deleting and regenerating the file.
var ErrCorrupt = errors.New("corrupt cache")

// Entry is one cached key/value pair.
type Entry struct {
	Key   string // Setting name, e.g. "build_type"
	Value string // Always a string; other JSON types are rejected
}

// Store persists a flat, insertion-ordered string mapping as a JSON object.
// Every operation reads the file afresh; nothing is cached in memory.
type Store struct {
	path string // Backing JSON file
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the cache location next to the running executable,
// so the cache does not depend on the current working directory.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureExists creates the backing file with an empty mapping when it is absent.
// It reports whether the file already existed and never rewrites an existing one.
func (s *Store) EnsureExists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		logger.Debug("[DEBUG] Cache found at %s\n", s.path)
		return true, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat cache %s: %w", s.path, err)
	}

	logger.Info("[INFO] Cache not found! Creating new cache file %s\n", s.path)
	if err := s.save(nil); err != nil {
		return false, err
	}
	return false, nil
}

// Get returns the value stored under key. A missing key (or a missing file)
// yields ok == false and no error.
func (s *Store) Get(key string) (string, bool, error) {
	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true, nil
		}
	}
	return "", false, nil
}

// Set upserts key and rewrites the whole file atomically.
// An existing key keeps its position in the mapping.
func (s *Store) Set(key, value string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = upsert(entries, key, value)
	logger.Debug("[DEBUG] Cache set %s = %q\n", key, value)
	return s.save(entries)
}

// Reset deletes the backing file and recreates it empty.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache %s: %w", s.path, err)
	}
	logger.Warn("[WARN] Cache %s deleted\n", s.path)
	_, err := s.EnsureExists()
	return err
}

// List returns all entries in insertion order.
func (s *Store) List() ([]Entry, error) {
	return s.load()
}

// load reads and decodes the whole file. A missing file reads as an empty
// mapping; anything that does not decode is wrapped in ErrCorrupt.
func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", s.path, err)
	}
	entries, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v (delete it and regenerate)", ErrCorrupt, s.path, err)
	}
	return entries, nil
}

// save replaces the file with entries in their current order.
func (s *Store) save(entries []Entry) error {
	data, err := encode(entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("write cache %s: %w", s.path, err)
	}
	return nil
}

func upsert(entries []Entry, key, value string) []Entry {
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = value
			return entries
		}
	}
	return append(entries, Entry{Key: key, Value: value})
}

// decode walks the JSON object token by token so key order survives.
// Duplicate keys keep their first position and their last value.
func decode(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("top-level value is not an object")
	}

	// Each member is a string key followed by a string value.
	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		entries = upsert(entries, key, value)
	}

	// Closing brace, then nothing but whitespace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after object")
	}
	return entries, nil
}

// encode writes one member per line with two-space indentation.
// json.Marshal on each string handles escaping.
func encode(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return []byte("{}\n"), nil
	}
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range entries {
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temp file in the target directory and renames
// it over path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// The temp file must share the target's directory for Rename to be atomic.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	// Remove the temp file on any failure below.
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	// Flush to disk before the rename makes the content visible.
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

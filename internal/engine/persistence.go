package engine

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// MetadataFileName is the file, inside the git directory, holding the store
const MetadataFileName = "zyra-metadata.json"

// MetadataPath returns the metadata location for a git directory
func MetadataPath(gitDir string) string {
	return filepath.Join(gitDir, MetadataFileName)
}

// Load reads the store from path. A missing file yields an empty store at
// the current version; unreadable or corrupt content is a storage error.
func Load(path string, head HeadReader, opts ...StoreOption) (*Store, error) {
	s := NewStore(path, head, opts...)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, zyraerrors.NewStorageError(path, "read", err)
	}

	normalized, err := normalizeLegacy(data)
	if err != nil {
		return nil, zyraerrors.NewStorageError(path, "decode", err)
	}

	var meta Metadata
	if err := json.Unmarshal(normalized, &meta); err != nil {
		return nil, zyraerrors.NewStorageError(path, "decode", err)
	}
	if meta.Stacks == nil {
		meta.Stacks = []Stack{}
	}
	if meta.Version == "" {
		meta.Version = CurrentVersion
	}
	s.meta = meta
	return s, nil
}

// Save overwrites the metadata file with the full store
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		return zyraerrors.NewStorageError(s.path, "encode", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return zyraerrors.NewStorageError(s.path, "write", err)
	}
	return nil
}

// Reload replaces the in-memory state with what is on disk
func (s *Store) Reload() error {
	fresh, err := Load(s.path, s.head, WithClock(s.now))
	if err != nil {
		return err
	}
	s.meta = fresh.meta
	return nil
}

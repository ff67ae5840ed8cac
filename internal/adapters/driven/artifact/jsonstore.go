// Package artifact persists the canonical directory dataset as a
// deterministic JSON document with an atomic write discipline.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/core/ports/driven"
)

// Ensure JSONStore implements the interface.
var _ driven.ArtifactStore = (*JSONStore)(nil)

// JSONStore writes the dataset to a single JSON file. Region and
// category keys serialize in ascending order, so repeated runs over
// unchanged data produce byte-identical output.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store writing to the given file path.
// If path is empty, defaults to ~/.townpages/data/directory.json.
func NewJSONStore(path string) (*JSONStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".townpages", "data", "directory.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}

	return &JSONStore{path: path}, nil
}

// Save writes the dataset to a temporary file in the same directory
// and renames it into place. A concurrent reader observes either the
// previous artifact or the new one; on any failure the previous
// artifact is left intact.
func (s *JSONStore) Save(ctx context.Context, dataset domain.DirectoryDataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".directory-*.json")
	if err != nil {
		return fmt.Errorf("creating temp artifact: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp artifact: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing artifact: %w", err)
	}

	return nil
}

// Load reads the current artifact.
func (s *JSONStore) Load(ctx context.Context) (domain.DirectoryDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoArtifact
		}
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	var dataset domain.DirectoryDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("decoding artifact: %w", err)
	}
	return dataset, nil
}

// Path returns the artifact file path.
func (s *JSONStore) Path() string {
	return s.path
}

package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"servedc-be/models"
)

// FileSnapshot stores the state as one JSON file, rewritten wholesale on
// every save.
type FileSnapshot struct {
	Path string
}

func NewFileSnapshot(path string) (*FileSnapshot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &FileSnapshot{Path: path}, nil
}

// Load returns (nil, nil) when no snapshot file exists yet; the caller
// seeds in that case.
func (f *FileSnapshot) Load() (*models.AppState, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var state models.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (f *FileSnapshot) Save(state *models.AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0644)
}

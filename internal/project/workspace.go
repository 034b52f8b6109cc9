package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/piwi3910/GlassCut/internal/model"
)

// DefaultWorkspacePath returns ~/.glasscut/workspace.json.
func DefaultWorkspacePath() string {
	return filepath.Join(DefaultConfigDir(), "workspace.json")
}

// SaveWorkspace writes the workspace to the specified JSON file.
func SaveWorkspace(path string, ws model.Workspace) error {
	return writeJSON(path, ws)
}

// LoadWorkspace reads the workspace from the specified JSON file.
// A missing file yields an empty workspace.
func LoadWorkspace(path string) (model.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewWorkspace(), nil
		}
		return model.Workspace{}, fmt.Errorf("failed to read workspace: %w", err)
	}
	ws := model.NewWorkspace()
	if err := json.Unmarshal(data, &ws); err != nil {
		return model.Workspace{}, fmt.Errorf("failed to parse workspace %s: %w", path, err)
	}
	if ws.Inventory == nil {
		ws.Inventory = []model.Scrap{}
	}
	if ws.Orders == nil {
		ws.Orders = []model.Order{}
	}
	return ws, nil
}

// Store serializes workspace reads and writes against one file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store backed by the given workspace file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current workspace.
func (s *Store) Load() (model.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LoadWorkspace(s.path)
}

// Update loads the workspace, applies fn and saves the result. Nothing is
// written when fn returns an error.
func (s *Store) Update(fn func(ws *model.Workspace) error) (model.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := LoadWorkspace(s.path)
	if err != nil {
		return model.Workspace{}, err
	}
	if err := fn(&ws); err != nil {
		return model.Workspace{}, err
	}
	if err := SaveWorkspace(s.path, ws); err != nil {
		return model.Workspace{}, err
	}
	return ws, nil
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/procsched/procsched/sim"
)

// AppID keys this application's entry in the settings file.
const AppID = "procsched"

// AppState is the state remembered between launches.
type AppState struct {
	JobCount     uint16 `yaml:"job_count"`
	Policy       string `yaml:"policy"`
	ViewportOpen bool   `yaml:"viewport_open"`
}

// DefaultAppState is used when nothing has been saved yet.
func DefaultAppState() AppState {
	return AppState{JobCount: 2}
}

// settingsFile maps application identifiers to their saved state.
// Entries of other applications are kept as raw nodes and written back unchanged.
type settingsFile map[string]yaml.Node

// defaultStatePath returns the per-user settings location, or "" if the
// platform has no config directory.
func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		logrus.Warnf("No user config directory, settings will not persist: %v", err)
		return ""
	}
	return filepath.Join(dir, AppID, "state.yaml")
}

// readSettings reads the settings file. Only I/O failures are errors: a file
// that does not parse is logged and treated as empty.
func readSettings(path string) (settingsFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settingsFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	var sf settingsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		logrus.Warnf("Ignoring unreadable settings file %s: %v", path, err)
		return settingsFile{}, nil
	}
	if sf == nil {
		sf = settingsFile{}
	}
	return sf, nil
}

// LoadAppState returns the saved state for AppID.
// A missing file, a file without an AppID entry, or an entry that does not
// decode yields DefaultAppState. Fields absent from the entry keep their
// defaults and unknown fields are ignored. A remembered policy that no longer
// resolves is forgotten. An empty path disables persistence.
func LoadAppState(path string) (AppState, error) {
	if path == "" {
		return DefaultAppState(), nil
	}
	sf, err := readSettings(path)
	if err != nil {
		return AppState{}, err
	}
	node, ok := sf[AppID]
	if !ok {
		return DefaultAppState(), nil
	}
	st := DefaultAppState()
	if err := node.Decode(&st); err != nil {
		logrus.Warnf("Ignoring saved %s settings: %v", AppID, err)
		return DefaultAppState(), nil
	}
	if st.Policy != "" && !sim.IsValidPolicy(st.Policy) {
		logrus.Warnf("Ignoring unknown remembered policy %q", st.Policy)
		st.Policy = ""
	}
	return st, nil
}

// SaveAppState stores st under AppID, replacing the file atomically.
// An empty path disables persistence.
func SaveAppState(path string, st AppState) error {
	if path == "" {
		return nil
	}
	sf, err := readSettings(path)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := node.Encode(st); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	sf[AppID] = node

	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing settings: %w", err)
	}
	return nil
}

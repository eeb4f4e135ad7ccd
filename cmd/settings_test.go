package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadAppState_MissingFile_Defaults(t *testing.T) {
	st, err := LoadAppState(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppState(), st)
	assert.Equal(t, uint16(2), st.JobCount)
}

func TestLoadAppState_EmptyPath_Defaults(t *testing.T) {
	st, err := LoadAppState("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAppState(), st)
	assert.NoError(t, SaveAppState("", AppState{Policy: "x"}))
}

func TestSaveAppState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	want := AppState{JobCount: 65535, Policy: "Round Robin", ViewportOpen: true}

	require.NoError(t, SaveAppState(path, want))
	got, err := LoadAppState(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")
}

func TestSaveAppState_PreservesOtherApplications(t *testing.T) {
	// GIVEN a settings file shared with another application
	path := filepath.Join(t.TempDir(), "state.yaml")
	initial := "other-app:\n  job_count: 7\n  policy: Shortest Job Next (SJN)\n  viewport_open: false\n"
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))

	// WHEN this application saves its state
	require.NoError(t, SaveAppState(path, AppState{JobCount: 3, Policy: "Round Robin"}))

	// THEN the other entry is untouched
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var sf map[string]AppState
	require.NoError(t, yaml.Unmarshal(data, &sf))
	assert.Equal(t, AppState{JobCount: 7, Policy: "Shortest Job Next (SJN)"}, sf["other-app"])
	assert.Equal(t, "Round Robin", sf[AppID].Policy)
}

func TestLoadAppState_UnknownField_Ignored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("procsched:\n  policy: Round Robin\n  theme: dark\n"), 0o644))

	st, err := LoadAppState(path)
	require.NoError(t, err)
	assert.Equal(t, AppState{JobCount: 2, Policy: "Round Robin"}, st, "absent fields keep their defaults")
}

func TestLoadAppState_JobCountOutOfRange_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("procsched:\n  job_count: 70000\n  policy: Round Robin\n"), 0o644))

	st, err := LoadAppState(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppState(), st)
}

func TestLoadAppState_UnknownPolicy_Forgotten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("procsched:\n  job_count: 5\n  policy: Lottery\n"), 0o644))

	st, err := LoadAppState(path)
	require.NoError(t, err)
	assert.Equal(t, AppState{JobCount: 5}, st)
}

func TestLoadAppState_MalformedFile_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a mapping\n"), 0o644))

	st, err := LoadAppState(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppState(), st)
}

func TestSettings_ForeignEntryWithOwnSchema(t *testing.T) {
	// GIVEN another application's entry with fields this one does not know
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("otherapp:\n  window: 3\n  tabs: [a, b]\n"), 0o644))

	// WHEN this application loads and saves
	st, err := LoadAppState(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppState(), st)
	require.NoError(t, SaveAppState(path, AppState{JobCount: 4, Policy: "Round Robin"}))

	// THEN the foreign entry survives with its own fields
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var sf map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &sf))
	assert.Equal(t, map[string]any{"window": 3, "tabs": []any{"a", "b"}}, sf["otherapp"])

	got, err := LoadAppState(path)
	require.NoError(t, err)
	assert.Equal(t, AppState{JobCount: 4, Policy: "Round Robin"}, got)
}

func TestLoadAppState_EmptyFile_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	st, err := LoadAppState(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppState(), st)
}

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/nt/internal/storage"
)

func TestLoadConfig_CreatesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nt", "config.yaml")

	cfg, err := storage.LoadConfig(path)

	assert.NilError(t, err)
	assert.Equal(t, cfg.Backend, storage.BackendSQLite)
	assert.Equal(t, cfg.Orphans, storage.OrphansDrop)
	assert.Equal(t, filepath.Base(cfg.DataPath), "notes.db")

	_, err = os.Stat(path)
	assert.NilError(t, err, "config file should be written with defaults")
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "backend: json\ndataPath: /tmp/elsewhere.json\norphans: promote\n"
	assert.NilError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := storage.LoadConfig(path)

	assert.NilError(t, err)
	assert.Equal(t, cfg.Backend, storage.BackendJSON)
	assert.Equal(t, cfg.DataPath, "/tmp/elsewhere.json")
	assert.Equal(t, cfg.Orphans, storage.OrphansPromote)
	assert.Equal(t, cfg.Icon, "📄")
}

func TestLoadConfig_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"backend", "backend: postgres\n", "invalid backend"},
		{"orphans", "orphans: adopt\n", "invalid orphans mode"},
		{"syntax", "backend: [\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			assert.NilError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := storage.LoadConfig(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.yaml")
	want := storage.Config{Backend: storage.BackendJSON, DataPath: "/data/n.json", Orphans: storage.OrphansPromote, Icon: "📝"}

	assert.NilError(t, storage.SaveConfig(path, &want))
	got, err := storage.LoadConfig(path)

	assert.NilError(t, err)
	assert.DeepEqual(t, *got, want)
}

func TestDefaultDataPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	jsonPath, err := storage.DefaultDataPath(storage.BackendJSON)
	assert.NilError(t, err)
	assert.Equal(t, jsonPath, filepath.Join("/home/test", ".config", "nt", "notes.json"))

	dbPath, err := storage.DefaultDataPath(storage.BackendSQLite)
	assert.NilError(t, err)
	assert.Equal(t, dbPath, filepath.Join("/home/test", ".config", "nt", "notes.db"))
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/logicrules/internal/rules"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "logic_results.csv", cfg.Store.Path)
	assert.Equal(t, "csv", cfg.Store.Backend)
	assert.Equal(t, rules.DefaultPolicy(), cfg.RulesPolicy())
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
store:
  backend: sqlite
  path: grades.db
policy:
  passing_grade: 60
log_level: debug
`), "test.yaml")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "grades.db", cfg.Store.Path)
	assert.Equal(t, 60.0, cfg.Policy.PassingGrade)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5.0, cfg.Policy.ParticipationBonus)
	assert.Equal(t, "admin123", cfg.Policy.Password)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_EmptyIsDefault(t *testing.T) {
	cfg, err := Parse(strings.NewReader("\n"), "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown backend", "store:\n  backend: xlsx\n"},
		{"grade above range", "policy:\n  passing_grade: 120\n"},
		{"negative bonus", "policy:\n  participation_bonus: -1\n"},
		{"empty password", "policy:\n  password: \"\"\n"},
		{"empty path", "store:\n  path: \"\"\n"},
		{"bad log level", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml), "bad.yaml")
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, "bad.yaml", ve.Source)
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("stroe:\n  path: x.csv\n"), "typo.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo.yaml")
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logicrules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy:\n  password: hunter2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Policy.Password)
}

func TestLoad_ImplicitMissingIsDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_BackendPicksDefaultPath(t *testing.T) {
	cfg, err := Parse(strings.NewReader("store:\n  backend: sqlite\n"), "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, "logic_results.db", cfg.Store.Path)

	cfg, err = Parse(strings.NewReader("policy:\n  passing_grade: 60\n"), "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, "logic_results.csv", cfg.Store.Path)
}

func TestUseBackend(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"default path follows backend", "", "logic_results.db"},
		{"path from file is kept", "store:\n  path: grades.csv\n", "grades.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.yaml), "test.yaml")
			require.NoError(t, err)

			cfg.UseBackend("sqlite")
			assert.Equal(t, "sqlite", cfg.Store.Backend)
			assert.Equal(t, tt.want, cfg.Store.Path)
			require.NoError(t, cfg.Validate())
		})
	}
}

func TestUsePath_SurvivesBackendSwitch(t *testing.T) {
	cfg := Default()
	cfg.UsePath("custom.db")
	cfg.UseBackend("sqlite")
	assert.Equal(t, "custom.db", cfg.Store.Path)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		AppConfig = nil
	})
	return home
}

func TestInitializeCreatesDefaults(t *testing.T) {
	home := setupHome(t)

	require.NoError(t, Initialize())

	_, err := os.Stat(filepath.Join(home, ".cvgen", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2.0, AppConfig.Scale)
	assert.Equal(t, 0.95, AppConfig.Quality)
	assert.Equal(t, "a4", AppConfig.PageFormat)
	assert.Equal(t, "primary", AppConfig.Strategy)
	assert.Equal(t, 2*time.Second, AppConfig.ConvergeTimeout)
	assert.Equal(t, 30*time.Second, AppConfig.FallbackLoadTimeout)
	assert.Equal(t, filepath.Join(home, ".cvgen", "history.db"), AppConfig.HistoryDB)
}

func TestSetPersistsValue(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, Initialize())

	require.NoError(t, Set("page_format", "letter"))
	assert.Equal(t, "letter", AppConfig.PageFormat)

	data, err := os.ReadFile(filepath.Join(home, ".cvgen", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "letter")
}

func TestSetRejectsUnknownKey(t *testing.T) {
	setupHome(t)
	require.NoError(t, Initialize())

	assert.Error(t, Set("openai_key", "x"))
}

func TestIsValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"scale", true},
		{"history_db", true},
		{"ai_provider", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidKey(tt.key); got != tt.want {
			t.Errorf("IsValidKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

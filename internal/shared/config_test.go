package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./marquee.db" {
			t.Errorf("expected database path ./marquee.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.TMDB.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("expected TMDB base URL, got %s", config.TMDB.BaseURL)
		}

		if config.TMDB.Language != "en-US" {
			t.Errorf("expected language en-US, got %s", config.TMDB.Language)
		}

		if config.Store.Collection != "favorites" {
			t.Errorf("expected favorites collection, got %s", config.Store.Collection)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[tmdb]
api_key = "abc123"
base_url = "https://api.themoviedb.org/3"
language = "fr-FR"

[identity]
base_url = "https://identity.example.com/v1"
token_url = "https://token.example.com/v1/token"
api_key = "id-key"

[store]
base_url = "https://store.example.com/v1/documents"
collection = "watchlist"

[database]
path = "/tmp/test.db"
max_open_conns = 5
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.TMDB.APIKey != "abc123" {
			t.Errorf("expected TMDB api key abc123, got %s", config.TMDB.APIKey)
		}

		if config.TMDB.Language != "fr-FR" {
			t.Errorf("expected language fr-FR, got %s", config.TMDB.Language)
		}

		if config.Store.Collection != "watchlist" {
			t.Errorf("expected watchlist collection, got %s", config.Store.Collection)
		}

		if config.Database.MaxOpenConns != 5 {
			t.Errorf("expected 5 max open conns, got %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("loading a missing config file should fail")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("loading invalid TOML should fail")
		}
	})
}

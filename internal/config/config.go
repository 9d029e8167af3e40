package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/drawerd/internal/model"
)

const envConfigPath = "DRAWERD_CONFIG"

// DefaultPath resolves the settings file location, honoring DRAWERD_CONFIG.
func DefaultPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(envConfigPath)); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "drawerd", "config.yaml"), nil
}

// Load reads settings from path. A missing file yields defaults, not an
// error. Invalid enum values fall back to their defaults so a hand-edited
// file cannot wedge startup.
func Load(path string) (model.Settings, error) {
	settings := model.DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(settings), nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return settings, fmt.Errorf("parse config: %w", err)
	}
	if !settings.Theme.IsValid() {
		settings.Theme = model.DefaultSettings().Theme
	}
	if !settings.DrawerSide.IsValid() {
		settings.DrawerSide = model.DefaultSettings().DrawerSide
	}
	return applyEnv(settings), nil
}

// Save writes settings atomically (tmp file + rename), creating the parent
// directory if needed.
func Save(path string, settings model.Settings) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	payload, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}

// Env vars override the file so credentials can stay out of it entirely.
func applyEnv(settings model.Settings) model.Settings {
	if v := strings.TrimSpace(os.Getenv("DRAWERD_NOTION_KEY")); v != "" {
		settings.NotionKey = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAWERD_NOTION_TASKS_DB")); v != "" {
		settings.TasksDatabaseID = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAWERD_NOTION_NOTES_DB")); v != "" {
		settings.NotesDatabaseID = v
	}
	return settings
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/sandeepkv93/drawerd/internal/config"
	"github.com/sandeepkv93/drawerd/internal/model"
	"github.com/sandeepkv93/drawerd/internal/notion"
	"github.com/sandeepkv93/drawerd/internal/storage"
	"github.com/sandeepkv93/drawerd/internal/store"
	"github.com/sandeepkv93/drawerd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "drawerd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env can carry the Notion credentials; missing is fine.
	_ = godotenv.Load()

	configPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	dbPath, err := databasePath()
	if err != nil {
		return err
	}
	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	syncer := &liveSyncer{}
	st := store.New(repo, syncer, settings)
	syncer.settings = st.Settings
	if err := st.LoadAll(context.Background()); err != nil {
		return err
	}

	program := tea.NewProgram(
		update.NewModel(st, update.Options{ConfigPath: configPath}),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return err
	}

	// Let in-flight remote syncs settle before the process exits.
	st.Wait()
	return nil
}

// liveSyncer builds a client per call so token edits in the settings screen
// take effect without a restart.
type liveSyncer struct {
	settings func() model.Settings
}

func (s *liveSyncer) CreatePage(ctx context.Context, databaseID string, props notion.Properties) (string, error) {
	return notion.NewClient(s.settings().NotionKey).CreatePage(ctx, databaseID, props)
}

func (s *liveSyncer) UpdatePage(ctx context.Context, pageID string, patch notion.PagePatch) error {
	return notion.NewClient(s.settings().NotionKey).UpdatePage(ctx, pageID, patch)
}

func databasePath() (string, error) {
	if override := strings.TrimSpace(os.Getenv("DRAWERD_DATA_DIR")); override != "" {
		if err := os.MkdirAll(override, 0o755); err != nil {
			return "", fmt.Errorf("create data dir: %w", err)
		}
		return filepath.Join(override, "drawerd.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".local", "share", "drawerd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dir, "drawerd.db"), nil
}

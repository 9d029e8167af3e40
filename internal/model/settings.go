package model

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

type DrawerSide string

const (
	DrawerLeft  DrawerSide = "left"
	DrawerRight DrawerSide = "right"
)

func (s DrawerSide) IsValid() bool {
	switch s {
	case DrawerLeft, DrawerRight:
		return true
	default:
		return false
	}
}

// Settings is the persisted application configuration. NotionKey together
// with a non-empty database id enables the best-effort remote mirror.
type Settings struct {
	Theme           Theme      `yaml:"theme"`
	DrawerSide      DrawerSide `yaml:"drawer_side"`
	NotionKey       string     `yaml:"notion_key"`
	TasksDatabaseID string     `yaml:"notion_tasks_database_id"`
	NotesDatabaseID string     `yaml:"notion_notes_database_id"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:      ThemeDark,
		DrawerSide: DrawerRight,
	}
}

package update

type GlobalKeyMap struct {
	Drawer   string
	Board    string
	Notes    string
	Settings string
	Palette  string
	Help     string
	Quit     string
}

func DefaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Drawer:   "1",
		Board:    "2",
		Notes:    "3",
		Settings: "4",
		Palette:  "/",
		Help:     "?",
		Quit:     "q",
	}
}

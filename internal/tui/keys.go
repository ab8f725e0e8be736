package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Tab   key.Binding
	Prev  key.Binding
	Next  key.Binding

	// Screens
	OpenList    key.Binding
	OpenGallery key.Binding
	Resume      key.Binding

	// List actions
	Filter     key.Binding
	Sort       key.Binding
	Direction  key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	FocusInput key.Binding

	// Details actions
	Trailer  key.Binding
	IMDb     key.Binding
	Homepage key.Binding
	Poster   key.Binding

	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Prev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),

		OpenList: key.NewBinding(
			key.WithKeys("1", "/"),
			key.WithHelp("1", "search list"),
		),
		OpenGallery: key.NewBinding(
			key.WithKeys("2", "b"),
			key.WithHelp("2", "genre gallery"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),

		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "reverse"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev page"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit query"),
		),

		Trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trailer"),
		),
		IMDb: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "imdb"),
		),
		Homepage: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "homepage"),
		),
		Poster: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "poster"),
		),

		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// screenHelp adapts the key map to bubbles/help for one screen
type screenHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h screenHelp) ShortHelp() []key.Binding  { return h.short }
func (h screenHelp) FullHelp() [][]key.Binding { return h.full }

// helpFor returns the bindings shown in the footer for screen
func (k KeyMap) helpFor(screen Screen) screenHelp {
	switch screen {
	case ScreenList:
		return screenHelp{
			short: []key.Binding{k.Tab, k.Enter, k.Filter, k.Sort, k.NextPage, k.Back, k.Help},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Tab, k.Enter},
				{k.Filter, k.Sort, k.Direction, k.FocusInput},
				{k.NextPage, k.PrevPage, k.Reload},
				{k.Back, k.Quit},
			},
		}
	case ScreenGallery:
		return screenHelp{
			short: []key.Binding{k.Tab, k.Enter, k.NextPage, k.Back, k.Help},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Tab, k.Enter},
				{k.NextPage, k.PrevPage, k.Filter},
				{k.Reload, k.Back, k.Quit},
			},
		}
	case ScreenDetails:
		return screenHelp{
			short: []key.Binding{k.Prev, k.Next, k.Trailer, k.IMDb, k.Homepage, k.Back, k.Help},
			full: [][]key.Binding{
				{k.Prev, k.Next, k.Back},
				{k.Trailer, k.IMDb, k.Homepage, k.Poster},
				{k.Reload, k.Quit},
			},
		}
	default:
		return screenHelp{
			short: []key.Binding{k.Enter, k.OpenList, k.OpenGallery, k.Resume, k.Quit, k.Help},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Enter},
				{k.OpenList, k.OpenGallery, k.Resume},
				{k.Reload, k.Quit},
			},
		}
	}
}

// Package-level key map instance
var Keys = DefaultKeyMap()

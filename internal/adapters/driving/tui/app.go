package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	searchView     *search.View
	docContentView *doccontent.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// feedID and changes are the change feed subscription, set by Init.
	feedID  string
	changes <-chan domain.ChangeMessage

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	searchView := search.NewView(s, km, ports.Search)
	searchView.SetTitle(ports.Document.SiteInfo().Title)

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		searchView:     searchView,
		docContentView: doccontent.NewView(s, km, ports.Document),
		currentView:    messages.ViewSearch,
	}, nil
}

// WithContext sets the context for searches, loads and the feed.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.docContentView.WithContext(ctx)
	return a
}

// Init implements tea.Model. It subscribes to the change feed when one
// is wired.
func (a *App) Init() tea.Cmd {
	title := "docwatch"
	if t := a.ports.Document.SiteInfo().Title; t != "" {
		title = t + " - docwatch"
	}

	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle(title),
		a.searchView.Init(),
	}
	if a.ports.Feed != nil && a.changes == nil {
		a.feedID, a.changes = a.ports.Feed.Subscribe(a.ctx)
		cmds = append(cmds, waitForChange(a.changes))
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks until the next file change. Keep-alives are
// skipped; they only matter to network transports.
func waitForChange(ch <-chan domain.ChangeMessage) tea.Cmd {
	return func() tea.Msg {
		for msg := range ch {
			if msg.Kind == domain.MessageFileChanged {
				return messages.DocumentsChanged{Timestamp: msg.Timestamp}
			}
		}
		return messages.FeedClosed{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}

	case messages.Quit:
		return a, a.quit()

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocContent
		return a, a.docContentView.SetDocument(msg.Document)

	case messages.DocumentContentLoaded:
		a.docContentView, cmd = a.docContentView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.DocumentsChanged:
		a.searchView.MarkUpdated(msg.Timestamp)
		cmds := []tea.Cmd{a.searchView.Refresh()}
		if a.changes != nil {
			cmds = append(cmds, waitForChange(a.changes))
		}
		if a.currentView == messages.ViewDocContent {
			cmds = append(cmds, a.docContentView.Reload())
		}
		return a, tea.Batch(cmds...)

	case messages.FeedClosed:
		a.feedID, a.changes = "", nil
		return a, nil
	}

	switch a.currentView {
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	default:
		a.searchView, cmd = a.searchView.Update(msg)
	}
	return a, cmd
}

// quit drops the feed subscription and stops the program.
func (a *App) quit() tea.Cmd {
	a.unsubscribe()
	return tea.Quit
}

func (a *App) unsubscribe() {
	if a.feedID != "" && a.ports.Feed != nil {
		a.ports.Feed.Unsubscribe(a.feedID)
	}
	a.feedID, a.changes = "", nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewDocContent {
		return a.docContentView.View()
	}
	return a.searchView.View()
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func (a *App) Run() error {
	defer a.unsubscribe()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the text in the query box.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error from the active view.
func (a *App) Err() error {
	if a.currentView == messages.ViewDocContent {
		return a.docContentView.Err()
	}
	return a.searchView.Err()
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// Subscribed reports whether the app is listening to the change feed.
func (a *App) Subscribed() bool {
	return a.changes != nil
}

// SetDimensions sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.docContentView.SetDimensions(width, height)
}

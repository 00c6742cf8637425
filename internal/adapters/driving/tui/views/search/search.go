// Package search provides the query and result view for the TUI.
package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
)

// DefaultLimit caps the number of results shown.
const DefaultLimit = 50

// View is the search view: query box, result list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	title      string
	lastQuery  string
	limit      int
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true while typing, false while browsing results
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		title:         "docwatch",
		limit:         DefaultLimit,
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context searches run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetTitle sets the header, normally the site title.
func (v *View) SetTitle(title string) {
	if title != "" {
		v.title = title
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // remaining keys go to the text input
	switch msg.Type {
	case tea.KeyEnter:
		query := v.input.Value()
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query, false)
	case tea.KeyEsc:
		if v.list.IsEmpty() {
			return v, func() tea.Msg { return messages.Quit{} }
		}
		v.focusInput = false
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Open):
		result := v.list.SelectedResult()
		if result == nil {
			return v, nil
		}
		doc := result.Document
		return v, func() tea.Msg { return messages.DocumentSelected{Document: doc} }

	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Back):
		v.focusInput = true
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// Refresh re-runs the last submitted query. It returns nil when nothing
// has been searched yet.
func (v *View) Refresh() tea.Cmd {
	if v.lastQuery == "" {
		return nil
	}
	return v.performSearch(v.lastQuery, true)
}

// MarkUpdated records a change notification in the status bar.
func (v *View) MarkUpdated(unixSeconds int64) {
	v.statusbar.SetUpdated(time.Unix(unixSeconds, 0))
}

func (v *View) performSearch(query string, refresh bool) tea.Cmd {
	v.lastQuery = query
	ctx, svc, limit := v.ctx, v.searchService, v.limit
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, domain.SearchOptions{Limit: limit})
		return messages.SearchCompleted{Query: query, Results: results, Refresh: refresh, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Query != "" && msg.Query != v.lastQuery {
		// A newer query superseded this one.
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	if msg.Refresh {
		v.list.ReplaceResults(msg.Results)
	} else {
		v.list.SetResults(msg.Results)
		v.focusInput = false
		v.input.Blur()
	}
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	if err != nil {
		v.statusbar.SetMessage(err.Error())
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 9)
	sections = append(sections, v.styles.Title.Render(v.title), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	// header, input box, spacers and status bar
	listHeight := height - 9
	if listHeight < 3 {
		listHeight = 3
	}
	v.list.SetDimensions(width, listHeight)
	v.statusbar.SetWidth(width)
}

// Reset clears the query and results and focuses the input.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
	v.list.SetResults(nil)
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetResultCount(0)
	v.lastQuery = ""
	v.err = nil
	v.focusInput = true
}

// Query returns the text in the query box.
func (v *View) Query() string {
	return v.input.Value()
}

// LastQuery returns the last submitted query.
func (v *View) LastQuery() string {
	return v.lastQuery
}

// Results returns the current results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the selected result index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// InputFocused reports whether the query box has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Ready reports whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// Package doccontent provides the document reader view for the TUI.
package doccontent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
)

// reservedLines is the chrome around the body: title, location, link,
// separator, scroll indicator and help.
const reservedLines = 8

// View renders one document and scrolls through its body.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	document     *domain.Document
	content      string
	link         string
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new document reader.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context used to load content.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDocument shows doc and returns the command that loads its body.
func (v *View) SetDocument(doc domain.Document) tea.Cmd {
	v.document = &doc
	v.content = ""
	v.link = ""
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.loadContent()
}

// Reload fetches the current document again, keeping the scroll position.
func (v *View) Reload() tea.Cmd {
	if v.document == nil {
		return nil
	}
	return v.loadContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) loadContent() tea.Cmd {
	svc, ctx := v.documentService, v.ctx
	var id domain.DocumentID
	if v.document != nil {
		id = v.document.ID
	}
	return func() tea.Msg {
		if svc == nil || id == "" {
			return messages.DocumentContentLoaded{DocumentID: id, Err: ErrNoDocumentService}
		}
		content, err := svc.GetContent(ctx, id)
		if err != nil {
			return messages.DocumentContentLoaded{DocumentID: id, Err: err}
		}
		link, err := svc.SourceLink(ctx, id)
		return messages.DocumentContentLoaded{DocumentID: id, Content: content, Link: link, Err: err}
	}
}

// Update handles messages for the reader.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentContentLoaded:
		v.handleContentLoaded(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleContentLoaded(msg messages.DocumentContentLoaded) {
	if v.document == nil || msg.DocumentID != v.document.ID {
		return
	}
	v.loading = false
	if msg.Err != nil {
		v.err = msg.Err
		return
	}
	v.err = nil
	v.content = msg.Content
	v.link = msg.Link
	v.wrapContent()
	if last := v.maxScrollOffset(); v.scrollOffset > last {
		v.scrollOffset = last
	}
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case keymap.Matches(keyStr, v.keymap.PageUp):
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case keymap.Matches(keyStr, v.keymap.PageDown):
		v.scrollOffset += v.visibleLines()
		if last := v.maxScrollOffset(); v.scrollOffset > last {
			v.scrollOffset = last
		}
	case keymap.Matches(keyStr, v.keymap.Top):
		v.scrollOffset = 0
	case keymap.Matches(keyStr, v.keymap.Bottom):
		v.scrollOffset = v.maxScrollOffset()
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

// wrapContent splits the body into lines no wider than the view.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	width := v.width - 4
	if width < 20 {
		width = 20
	}

	raw := strings.Split(v.content, "\n")
	v.lines = make([]string, 0, len(raw))
	for _, line := range raw {
		runes := []rune(line)
		for len(runes) > width {
			v.lines = append(v.lines, string(runes[:width]))
			runes = runes[width:]
		}
		v.lines = append(v.lines, string(runes))
	}
}

func (v *View) visibleLines() int {
	available := v.height - reservedLines - len(metadataLines(v.document))
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the reader.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.document != nil {
		title = v.document.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	if v.document != nil {
		src := v.document.Source
		b.WriteString(v.styles.Location.Render(fmt.Sprintf("%s:%d", src.Path, src.Line)))
		b.WriteString(v.styles.Muted.Render("  " + string(src.Kind)))
		b.WriteString("\n")
		if v.link != "" {
			b.WriteString(v.styles.Link.Render(v.link))
			b.WriteString("\n")
		}
		for _, line := range metadataLines(v.document) {
			b.WriteString(v.styles.Muted.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading content..."))
	case v.err != nil:
		if domain.IsNotFound(v.err) {
			b.WriteString(v.styles.Warning.Render("This document no longer exists."))
		} else {
			b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		}
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
	default:
		b.WriteString(v.renderBody())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back  [q] quit"))

	return b.String()
}

func (v *View) renderBody() string {
	var b strings.Builder
	visible := v.visibleLines()
	end := minInt(v.scrollOffset+visible, len(v.lines))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		percentage := 0
		if last := v.maxScrollOffset(); last > 0 {
			percentage = v.scrollOffset * 100 / last
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, v.scrollOffset+1, end, len(v.lines))))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// metadataLines renders doc's metadata as "key: value" lines sorted by key.
func metadataLines(doc *domain.Document) []string {
	if doc == nil || len(doc.Metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(doc.Metadata))
	for k := range doc.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+doc.Metadata[k])
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Document returns the current document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Content returns the loaded body.
func (v *View) Content() string {
	return v.content
}

// Link returns the source link, if any.
func (v *View) Link() string {
	return v.link
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Loading reports whether content is being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	GetContentFunc func(ctx context.Context, id domain.DocumentID) (string, error)
	Link           string
	LinkErr        error
}

func (m *MockDocumentService) Get(context.Context, domain.DocumentID) (*domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) List(context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) ListBySource(context.Context, string) ([]domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) GetContent(ctx context.Context, id domain.DocumentID) (string, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, id)
	}
	return "", nil
}

func (m *MockDocumentService) SourceLink(context.Context, domain.DocumentID) (string, error) {
	return m.Link, m.LinkErr
}

func (m *MockDocumentService) SiteInfo() domain.SiteInfo {
	return domain.SiteInfo{Title: "Test"}
}

func testDocument() domain.Document {
	return domain.Document{
		ID:    "why-use-arc",
		Title: "Why use Arc?",
		Source: domain.Source{
			Kind: domain.SourceCodeComment,
			Path: "src/lib.rs",
			Line: 12,
		},
		Metadata: domain.Metadata{"tags": "sync", "author": "jo"},
	}
}

func longContent(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

// load sets doc on v and feeds the load result back in.
func load(t *testing.T, v *View, doc domain.Document) messages.DocumentContentLoaded {
	t.Helper()
	cmd := v.SetDocument(doc)
	require.NotNil(t, cmd)
	assert.True(t, v.Loading())
	msg, ok := cmd().(messages.DocumentContentLoaded)
	require.True(t, ok)
	v.Update(msg)
	return msg
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockDocumentService{})

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.Nil(t, view.Document())
	assert.Nil(t, view.Reload())
	assert.Nil(t, view.Init())
}

func TestView_SetDocument(t *testing.T) {
	mock := &MockDocumentService{
		GetContentFunc: func(_ context.Context, id domain.DocumentID) (string, error) {
			assert.Equal(t, domain.DocumentID("why-use-arc"), id)
			return "Shared ownership across threads.", nil
		},
		Link: "https://example.com/src/lib.rs#L12",
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(100, 30)

	msg := load(t, view, testDocument())

	assert.NoError(t, msg.Err)
	assert.False(t, view.Loading())
	assert.Equal(t, "Shared ownership across threads.", view.Content())
	assert.Equal(t, "https://example.com/src/lib.rs#L12", view.Link())

	out := view.View()
	assert.Contains(t, out, "Why use Arc?")
	assert.Contains(t, out, "src/lib.rs:12")
	assert.Contains(t, out, "code_comment")
	assert.Contains(t, out, "https://example.com/src/lib.rs#L12")
	assert.Contains(t, out, "Shared ownership across threads.")
	assert.Less(t, strings.Index(out, "author: jo"), strings.Index(out, "tags: sync"))
}

func TestView_LoadError(t *testing.T) {
	mock := &MockDocumentService{
		GetContentFunc: func(context.Context, domain.DocumentID) (string, error) {
			return "", errors.New("disk on fire")
		},
	}
	view := NewView(nil, nil, mock)

	load(t, view, testDocument())

	require.Error(t, view.Err())
	assert.Contains(t, view.View(), "Error: disk on fire")
}

func TestView_DocumentRemoved(t *testing.T) {
	mock := &MockDocumentService{
		GetContentFunc: func(_ context.Context, id domain.DocumentID) (string, error) {
			return "", domain.DocumentNotFound(id)
		},
	}
	view := NewView(nil, nil, mock)

	load(t, view, testDocument())

	assert.Contains(t, view.View(), "This document no longer exists.")
}

func TestView_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := load(t, view, testDocument())

	assert.ErrorIs(t, msg.Err, ErrNoDocumentService)
}

func TestView_EmptyContent(t *testing.T) {
	view := NewView(nil, nil, &MockDocumentService{})

	load(t, view, testDocument())

	assert.Contains(t, view.View(), "(No content)")
}

func TestView_IgnoresOtherDocuments(t *testing.T) {
	view := NewView(nil, nil, &MockDocumentService{})
	view.SetDocument(testDocument())

	view.Update(messages.DocumentContentLoaded{DocumentID: "intro", Content: "wrong"})

	assert.Empty(t, view.Content())
	assert.True(t, view.Loading())
}

func TestView_Scrolling(t *testing.T) {
	mock := &MockDocumentService{
		GetContentFunc: func(context.Context, domain.DocumentID) (string, error) {
			return longContent(100), nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(80, 30)
	doc := testDocument()
	doc.Metadata = nil
	load(t, view, doc)

	visible := view.visibleLines()
	require.Equal(t, 30-reservedLines, visible)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 1+visible, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	view.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 0, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 100-visible, view.ScrollOffset())
	assert.Contains(t, view.View(), "[100%]")
	assert.Contains(t, view.View(), "of 100")

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, view.ScrollOffset())
}

func TestView_ReloadKeepsScrollWithinBounds(t *testing.T) {
	n := 100
	mock := &MockDocumentService{
		GetContentFunc: func(context.Context, domain.DocumentID) (string, error) {
			return longContent(n), nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(80, 30)
	doc := testDocument()
	doc.Metadata = nil
	load(t, view, doc)
	view.Update(tea.KeyMsg{Type: tea.KeyEnd})
	require.Positive(t, view.ScrollOffset())

	n = 5
	cmd := view.Reload()
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.Equal(t, 0, view.ScrollOffset())
	assert.Equal(t, longContent(5), view.Content())
}

func TestView_WrapsLongLines(t *testing.T) {
	mock := &MockDocumentService{
		GetContentFunc: func(context.Context, domain.DocumentID) (string, error) {
			return strings.Repeat("é", 50), nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(24, 30)

	load(t, view, testDocument())

	require.Len(t, view.lines, 3)
	assert.Equal(t, strings.Repeat("é", 20), view.lines[0])
	assert.Equal(t, strings.Repeat("é", 10), view.lines[2])
}

func TestView_BackAndQuit(t *testing.T) {
	view := NewView(nil, nil, &MockDocumentService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil, &MockDocumentService{})

	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, view.Err(), "boom")
}

func TestView_WindowSize(t *testing.T) {
	view := NewView(nil, nil, &MockDocumentService{})

	view.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.True(t, view.ready)
	assert.Equal(t, 120, view.width)
}

package fzf

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/markup"
)

var ErrNoSelection = errors.New("no note selected")

// Finder is the fuzzy finder entry point, swapped in tests.
type Finder func(slice interface{}, itemFunc func(i int) string, opts ...fuzzyfinder.Option) (int, error)

// NoteFinder picks one note by title with a rendered preview of its content.
type NoteFinder struct {
	Header   string
	notes    []api.Note
	renderer *markup.Renderer
	find     Finder
}

func NewNoteFinder(notes []api.Note, renderer *markup.Renderer, header string) *NoteFinder {
	return &NoteFinder{
		Header:   header,
		notes:    notes,
		renderer: renderer,
		find:     fuzzyfinder.Find,
	}
}

// WithFinder replaces the interactive finder.
func (f *NoteFinder) WithFinder(find Finder) *NoteFinder {
	f.find = find
	return f
}

// Run returns the chosen note. Aborting the finder returns ErrNoSelection.
func (f *NoteFinder) Run(query string) (api.Note, error) {
	if len(f.notes) == 0 {
		return api.Note{}, errors.New("there are no notes to pick from")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.notes, f.label, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return api.Note{}, ErrNoSelection
	}
	if err != nil {
		return api.Note{}, fmt.Errorf("error selecting note: %w", err)
	}
	if idx < 0 || idx >= len(f.notes) {
		return api.Note{}, ErrNoSelection
	}

	return f.notes[idx], nil
}

func (f *NoteFinder) label(i int) string {
	n := f.notes[i]
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%s [%s]", title, n.ID)
}

func (f *NoteFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}
	return f.renderer.Render(f.notes[i].Content, w)
}

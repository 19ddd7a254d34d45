// Package tui is the interactive front end: a file picker, an upload key and
// a pane showing the latest response.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DailyInvestors/Network-Repairs/internal/upload"
)

// FileSelectedMsg selects the file at Path, as if picked in the browser.
type FileSelectedMsg struct {
	Path string
}

// uploadSettledMsg reports that one upload attempt finished.
type uploadSettledMsg struct{}

// Model hosts an upload.Component in a bubbletea program.
type Model struct {
	ctx       context.Context
	component *upload.Component

	picker  filepicker.Model
	spinner spinner.Model
	styles  Styles

	inFlight int
	err      error
	quitting bool
}

// New creates a model browsing startDir.
func New(ctx context.Context, component *upload.Component, startDir string) Model {
	fp := filepicker.New()
	if startDir != "" {
		fp.CurrentDirectory = startDir
	}
	fp.ShowHidden = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := DefaultStyles()
	sp.Style = styles.Spinner

	return Model{
		ctx:       ctx,
		component: component,
		picker:    fp,
		spinner:   sp,
		styles:    styles,
	}
}

// Init starts reading the directory and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.spinner.Tick)
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "u":
			return m.startUpload()
		}

	case FileSelectedMsg:
		m.selectPath(msg.Path)
		return m, nil

	case uploadSettledMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		// Leave room for the header, selection line and response pane.
		if h := msg.Height - 12; h > 3 {
			m.picker.Height = h
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.selectPath(path)
	}

	return m, cmd
}

// startUpload fires one upload. Without a selection it does nothing.
func (m Model) startUpload() (tea.Model, tea.Cmd) {
	if _, ok := m.component.SelectedFile(); !ok {
		return m, nil
	}

	m.inFlight++
	c, ctx := m.component, m.ctx
	return m, func() tea.Msg {
		c.Upload(ctx)
		return uploadSettledMsg{}
	}
}

func (m *Model) selectPath(path string) {
	if err := m.component.SelectPath(path); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

// View renders the picker, the selection and the latest response.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Upload Function"))
	b.WriteString("\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")

	if f, ok := m.component.SelectedFile(); ok {
		b.WriteString(m.styles.Selected.Render(fmt.Sprintf("Selected: %s (%d bytes)", f.Name, f.Size)))
	} else {
		b.WriteString(m.styles.Hint.Render("No file selected"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if m.inFlight > 0 {
		b.WriteString(fmt.Sprintf("%s uploading...\n", m.spinner.View()))
	}

	if text := m.component.Response().Render(); text != "" {
		b.WriteString(m.styles.Response.Render(text))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Hint.Render("enter: select  u: upload  q: quit"))
	return b.String()
}

// Run starts the program on the terminal and blocks until it exits.
func Run(ctx context.Context, component *upload.Component, startDir string) error {
	p := tea.NewProgram(New(ctx, component, startDir), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

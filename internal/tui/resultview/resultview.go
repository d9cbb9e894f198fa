// Package resultview displays post-processed tool output in a scrollable
// viewport. Structured results are rendered through glamour as a fenced JSON
// block; fallback output (raw lines the scraper could not decode) is shown
// verbatim with a badge so the user knows the format heuristic gave up.
package resultview

import (
	"fmt"
	"strings"

	"ytmenu/internal/logging"
	"ytmenu/internal/tui/helpers"
	"ytmenu/internal/tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

type Model struct {
	toolName   string
	content    string // post-processed output
	structured bool   // true when the scraper extracted JSON

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	logger   *logging.AppLogger
}

func NewModel(ctx helpers.UIContext, toolName, content string, structured bool) *Model {
	m := &Model{
		toolName:   toolName,
		content:    content,
		structured: structured,
		logger:     ctx.Logger,
	}

	if ctx.HasValidDimensions() {
		m.resize(ctx.Width, ctx.Height)
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			m.logger.LogUserAction("resultview_close", m.toolName)
			return m, func() tea.Msg { return helpers.NavigateToMainMenuMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 4
	footerHeight := 2
	vpHeight := height - headerHeight - footerHeight
	if vpHeight < 5 {
		vpHeight = 5
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	m.viewport.SetContent(m.renderContent())
}

// renderContent prepares the viewport body. Glamour rendering is best-effort:
// when it fails the plain text is shown instead.
func (m *Model) renderContent() string {
	if !m.structured {
		return m.content
	}

	width := m.width - 4
	if width < 40 {
		width = 40
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Warn("Failed to create markdown renderer", "error", err)
		return m.content
	}

	rendered, err := renderer.Render("```json\n" + m.content + "\n```")
	if err != nil {
		m.logger.Warn("Failed to render result", "error", err)
		return m.content
	}

	return rendered
}

func (m *Model) View() string {
	if !m.ready {
		return "Loading result..."
	}

	var header strings.Builder
	header.WriteString(styles.TitleStyle.Render("📋 Result: " + m.toolName))
	if !m.structured {
		header.WriteString("  ")
		header.WriteString(styles.RawBadgeStyle.Render("[raw output]"))
	}
	header.WriteString("\n")
	header.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)))

	footer := styles.HelpStyle.Render("↑/↓ to scroll • Esc to return to menu • Ctrl+C to quit")

	return header.String() + "\n" + m.viewport.View() + "\n" + footer
}

// Content returns the displayed text, mainly for tests.
func (m *Model) Content() string { return m.content }

// Structured reports whether the scraper extracted a JSON result.
func (m *Model) Structured() bool { return m.structured }

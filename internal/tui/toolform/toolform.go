// Package toolform implements the parameter prompt flow for a single catalog
// tool. Parameters are asked one at a time with a shared text input; Enter
// accepts the current value, Esc steps back (and out of the form from the
// first parameter). Once every parameter has been answered the collected
// keyword arguments are emitted for invocation.
package toolform

import (
	"fmt"
	"strings"

	"ytmenu/internal/catalog"
	"ytmenu/internal/logging"
	"ytmenu/internal/tui/components"
	"ytmenu/internal/tui/helpers"
	"ytmenu/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model prompts for the parameters of one tool.
type Model struct {
	tool   catalog.Tool
	index  int            // current parameter position
	values map[string]any // collected typed values
	raw    []string       // raw input per parameter, kept for back navigation

	textInput textinput.Model
	layout    components.LayoutModel
	logger    *logging.AppLogger
}

func NewModel(ctx helpers.UIContext, tool catalog.Tool) *Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 1024

	layout := components.NewLayout(components.LayoutConfig{
		MarginX:  2,
		MarginY:  1,
		MaxWidth: 100,
	})

	if ctx.HasValidDimensions() {
		windowMsg := tea.WindowSizeMsg{Width: ctx.Width, Height: ctx.Height}
		layout, _ = layout.Update(windowMsg)
		ti.Width = layout.InputWidth()
	}

	m := &Model{
		tool:      tool,
		values:    make(map[string]any, len(tool.Params)),
		raw:       make([]string, len(tool.Params)),
		textInput: ti,
		layout:    layout,
		logger:    ctx.Logger,
	}
	m.prepareInput(ctx)
	return m
}

// prepareInput seeds the text input for the current parameter: previous
// answer when stepping back, configured default project for project fields,
// the catalog default otherwise.
func (m *Model) prepareInput(ctx helpers.UIContext) {
	if m.index >= len(m.tool.Params) {
		return
	}
	p := m.tool.Params[m.index]

	value := m.raw[m.index]
	if value == "" {
		value = p.Default
	}
	if value == "" && ctx.Config != nil && isProjectParam(p.Name) {
		value = ctx.Config.DefaultProject
	}

	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
	m.textInput.Placeholder = p.Description
}

func isProjectParam(name string) bool {
	return name == "project" || name == "project_id"
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.layout, _ = m.layout.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textInput.Width = m.layout.InputWidth()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Tools without parameters submit straight away on any confirm key.
	if len(m.tool.Params) == 0 {
		switch msg.String() {
		case "enter", " ":
			return m, m.submit()
		case "esc":
			return m, backToMenu()
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.acceptCurrent()

	case "esc":
		if m.index == 0 {
			m.logger.LogUserAction("toolform_cancel", m.tool.Name)
			return m, backToMenu()
		}
		m.index--
		m.textInput.SetValue(m.raw[m.index])
		m.textInput.CursorEnd()
		m.textInput.Placeholder = m.tool.Params[m.index].Description
		m.layout = m.layout.ClearError()
		return m, nil

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		if m.layout.GetError() != nil {
			m.layout = m.layout.ClearError()
		}
		return m, cmd
	}
}

// acceptCurrent validates the current answer, records it and advances.
func (m *Model) acceptCurrent() (tea.Model, tea.Cmd) {
	p := m.tool.Params[m.index]
	raw := m.textInput.Value()

	value, present, err := p.ParseValue(raw)
	if err != nil {
		m.layout = m.layout.SetError(err)
		return m, nil
	}
	if !present && p.Required {
		m.layout = m.layout.SetError(fmt.Errorf("%s is required", p.Prompt))
		return m, nil
	}

	m.raw[m.index] = raw
	if present {
		m.values[p.Name] = value
	} else {
		delete(m.values, p.Name)
	}

	m.index++
	if m.index >= len(m.tool.Params) {
		return m, m.submit()
	}

	next := m.tool.Params[m.index]
	seed := m.raw[m.index]
	if seed == "" {
		seed = next.Default
	}
	m.textInput.SetValue(seed)
	m.textInput.CursorEnd()
	m.textInput.Placeholder = next.Description
	return m, nil
}

func (m *Model) submit() tea.Cmd {
	m.logger.LogUserAction("toolform_submit", m.tool.Name)
	tool, values := m.tool, m.values
	return func() tea.Msg {
		return helpers.ToolSubmittedMsg{Tool: tool, Kwargs: values}
	}
}

func backToMenu() tea.Cmd {
	return func() tea.Msg { return helpers.NavigateToMainMenuMsg{} }
}

func (m *Model) View() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "🛠  " + m.tool.Name,
		Subtitle: m.tool.Description,
		HelpText: "Enter to accept • Esc to go back • Ctrl+C to quit",
	})

	var content strings.Builder

	if len(m.tool.Params) == 0 {
		content.WriteString("This tool takes no parameters.\n\n")
		content.WriteString("Press Enter to run it.")
		return m.layout.Render(content.String())
	}

	p := m.tool.Params[m.index]

	content.WriteString(styles.MutedStyle.Render(fmt.Sprintf("Parameter %d of %d", m.index+1, len(m.tool.Params))))
	content.WriteString("\n\n")

	label := p.Prompt
	if p.Required {
		label += " (required)"
	} else {
		label += " (optional, Enter to skip)"
	}
	content.WriteString(label + ":\n")
	content.WriteString(styles.InputStyle.Render(m.textInput.View()))

	if p.Kind == catalog.KindList {
		content.WriteString("\n\n")
		content.WriteString(styles.MutedStyle.Render("💡 Separate multiple values with commas."))
	}
	if p.Kind == catalog.KindJSON {
		content.WriteString("\n\n")
		content.WriteString(styles.MutedStyle.Render(`💡 Enter a JSON object, e.g. {"Priority": "Critical"}.`))
	}

	if m.tool.Example != "" {
		content.WriteString("\n\n")
		content.WriteString(styles.MutedStyle.Render("Example: " + m.tool.Example))
	}

	return m.layout.Render(content.String())
}

// Tool returns the catalog entry this form is prompting for.
func (m *Model) Tool() catalog.Tool { return m.tool }

// Values returns the keyword arguments collected so far.
func (m *Model) Values() map[string]any { return m.values }

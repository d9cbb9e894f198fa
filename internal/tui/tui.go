// Package tui provides the interactive terminal interface for ytmenu.
//
// The interface is a single filterable menu of the YouTrack tool catalog.
// Selecting a tool opens a parameter form; submitting the form spawns the
// external MCP client and, when it finishes, the post-processed output is
// shown in a scrollable result view.
//
// The package follows a state-based architecture: MainModel owns an AppState
// enum and delegates to specialized submodels (toolform, resultview,
// settingsmenu) that implement the tea.Model interface. Transitions happen
// through custom message types.
package tui

import (
	"context"
	"fmt"

	"ytmenu/internal/catalog"
	"ytmenu/internal/config"
	"ytmenu/internal/credentials"
	"ytmenu/internal/invoke"
	"ytmenu/internal/logging"
	"ytmenu/internal/render"
	"ytmenu/internal/tui/components"
	"ytmenu/internal/tui/helpers"
	"ytmenu/internal/tui/resultview"
	"ytmenu/internal/tui/settingsmenu"
	"ytmenu/internal/tui/toolform"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// AppState represents the current state of the TUI application.
type AppState int

const (
	StateMenu AppState = iota
	StateToolForm
	StateRunning
	StateResult
	StateSettings
	StateError
	StateQuitting
)

// Custom messages for internal state transitions
type (
	ErrorMsg struct {
		Err error
	}

	// invokeResultMsg carries the raw captured client output back into the
	// event loop once the child process has exited.
	invokeResultMsg struct {
		toolName string
		output   string
		err      error
	}
)

// Invoker runs one catalog tool and returns the captured client output.
// Satisfied by *invoke.Runner; tests substitute a stub.
type Invoker interface {
	Invoke(ctx context.Context, tool catalog.Tool, args string, kwargs map[string]any) (string, error)
}

// item adapts a catalog entry (or the settings action) to the bubbles list.
type item struct {
	title       string
	description string
	tool        catalog.Tool
	settings    bool
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.description }
func (i item) FilterValue() string { return i.title + " " + i.tool.Name + " " + i.tool.Category }

// MainModel is the root model for the TUI application. It coordinates the
// menu, the active submodel and the invocation lifecycle.
type MainModel struct {
	config    *config.Config
	logger    *logging.AppLogger
	invoker   Invoker
	state     AppState
	prevState AppState // For returning from error states

	// Main menu list
	menu list.Model

	// Current active model (always fresh, no caching)
	activeModel tea.Model

	// Spinner shown while the external client runs
	spinner     spinner.Model
	runningTool string

	// Layout for consistent UI
	layout components.LayoutModel

	// Window dimensions for creating submodels
	windowWidth  int
	windowHeight int

	err error
}

func NewMainModel(cfg *config.Config, logger *logging.AppLogger) *MainModel {
	runner := invoke.NewRunner(cfg, credentials.NewManager(), logger)
	return NewMainModelWithInvoker(cfg, logger, runner)
}

// NewMainModelWithInvoker lets tests supply a stub invoker.
func NewMainModelWithInvoker(cfg *config.Config, logger *logging.AppLogger, inv Invoker) *MainModel {
	items := make([]list.Item, 0, len(catalog.All())+1)
	for _, tool := range catalog.All() {
		items = append(items, item{
			title:       fmt.Sprintf("%s · %s", tool.Category, tool.Name),
			description: tool.Description,
			tool:        tool,
		})
	}
	items = append(items, item{
		title:       "⚙️  Settings",
		description: "Client binary, config path, MCP name, credentials",
		settings:    true,
	})

	menuList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menuList.SetShowTitle(false)
	menuList.SetShowStatusBar(false)
	menuList.SetFilteringEnabled(true)
	menuList.SetShowHelp(false) // We'll use the layout for help

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	layout := components.NewLayout(components.LayoutConfig{
		MarginX:  2,
		MarginY:  1,
		MaxWidth: 100,
	})

	return &MainModel{
		config:    cfg,
		logger:    logger,
		invoker:   inv,
		state:     StateMenu,
		prevState: StateMenu,
		menu:      menuList,
		spinner:   sp,
		layout:    layout,
	}
}

func (m *MainModel) Init() tea.Cmd {
	m.logger.Info("MainModel initialized", "tools", len(catalog.All()))
	return nil
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	m.layout, _ = m.layout.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height

		if msg.Width > 0 && msg.Height > 0 {
			v := 12 // header/footer margins
			m.menu.SetSize(msg.Width-4, msg.Height-v)

			if m.activeModel != nil {
				m.activeModel, cmd = m.activeModel.Update(msg)
				if cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		} else {
			m.logger.Warn("Invalid window dimensions received", "width", msg.Width, "height", msg.Height)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.state = StateQuitting
			return m, tea.Quit
		}

		switch m.state {
		case StateMenu:
			switch msg.String() {
			case "q":
				// Quit only when not filtering
				if m.menu.FilterState() != list.Filtering {
					m.state = StateQuitting
					return m, tea.Quit
				}
				m.menu, cmd = m.menu.Update(msg)
				return m, cmd
			case "enter":
				if m.menu.FilterState() != list.Filtering {
					if selected, ok := m.menu.SelectedItem().(item); ok {
						m.logger.LogUserAction("menu_selection", selected.title)
						return m.handleMenuSelection(selected)
					}
					return m, func() tea.Msg { return ErrorMsg{Err: fmt.Errorf("invalid menu selection")} }
				}
				m.menu, cmd = m.menu.Update(msg)
				return m, cmd
			default:
				m.menu, cmd = m.menu.Update(msg)
				return m, cmd
			}

		case StateRunning:
			// The child process cannot be interacted with; only quit works.
			return m, nil

		case StateError:
			if msg.String() == "esc" {
				m.state = m.prevState
				m.err = nil
				m.layout = m.layout.ClearError()
				return m, nil
			}

		case StateToolForm, StateResult, StateSettings:
			if m.activeModel != nil {
				m.activeModel, cmd = m.activeModel.Update(msg)
				return m, cmd
			}
		}

	case list.FilterMatchesMsg:
		if m.state == StateMenu {
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if m.state == StateRunning {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case helpers.ToolSubmittedMsg:
		return m.startInvocation(msg)

	case invokeResultMsg:
		return m.finishInvocation(msg)

	case helpers.NavigateToMainMenuMsg:
		m.logger.LogStateTransition("MainModel", "submodel", "StateMenu")
		return m.returnToMenu(), nil

	case ErrorMsg:
		m.logger.Error("Application error occurred", "error", msg.Err)
		m.err = msg.Err
		m.prevState = StateMenu
		m.state = StateError
		m.layout = m.layout.SetError(msg.Err)
		return m, nil

	default:
		if m.activeModel != nil {
			m.activeModel, cmd = m.activeModel.Update(msg)
			return m, cmd
		}
	}

	return m, tea.Batch(cmds...)
}

// handleMenuSelection opens the submodel for the selected entry.
func (m *MainModel) handleMenuSelection(selected item) (tea.Model, tea.Cmd) {
	ctx := m.uiContext()

	if selected.settings {
		model := settingsmenu.NewSettingsModel(ctx)
		m.activeModel = model
		m.state = StateSettings
		return m, model.Init()
	}

	model := toolform.NewModel(ctx, selected.tool)
	m.activeModel = model
	m.state = StateToolForm
	return m, model.Init()
}

// startInvocation spawns the external client in the background and switches
// to the spinner state.
func (m *MainModel) startInvocation(msg helpers.ToolSubmittedMsg) (tea.Model, tea.Cmd) {
	m.state = StateRunning
	m.runningTool = msg.Tool.Name
	m.activeModel = nil

	invoker := m.invoker
	tool, kwargs := msg.Tool, msg.Kwargs

	run := func() tea.Msg {
		output, err := invoker.Invoke(context.Background(), tool, "", kwargs)
		return invokeResultMsg{toolName: tool.Name, output: output, err: err}
	}

	return m, tea.Batch(m.spinner.Tick, run)
}

// finishInvocation post-processes the captured output and shows the result.
func (m *MainModel) finishInvocation(msg invokeResultMsg) (tea.Model, tea.Cmd) {
	m.runningTool = ""

	if msg.err != nil {
		return m, func() tea.Msg { return ErrorMsg{Err: msg.err} }
	}

	pretty, structured := render.PostProcess(msg.output)
	model := resultview.NewModel(m.uiContext(), msg.toolName, pretty, structured)
	m.activeModel = model
	m.state = StateResult
	return m, model.Init()
}

func (m *MainModel) uiContext() helpers.UIContext {
	return helpers.NewUIContext(m.windowWidth, m.windowHeight, m.config, m.logger)
}

// returnToMenu safely returns to the main menu and cleans up state
func (m *MainModel) returnToMenu() tea.Model {
	m.state = StateMenu
	m.activeModel = nil
	m.err = nil
	m.layout = m.layout.ClearError()
	return m
}

func (m *MainModel) View() string {
	switch m.state {
	case StateQuitting:
		m.layout = m.layout.SetConfig(components.LayoutConfig{
			Title: "👋 Goodbye!",
		})
		return m.layout.Render("Thank you for using ytmenu!")

	case StateMenu:
		return m.viewMenu()

	case StateRunning:
		return m.viewRunning()

	case StateError:
		return m.viewError()

	default:
		if m.activeModel != nil {
			return m.activeModel.View()
		}
		return m.viewMenu()
	}
}

func (m *MainModel) viewMenu() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "🔧 ytmenu - YouTrack Tool Console",
		Subtitle: fmt.Sprintf("MCP server %q via %s", m.config.MCPName, m.config.ClientBin),
		HelpText: "↑/↓ to navigate • Enter to select • / to filter • q to quit • Ctrl+C to force quit",
	})

	return m.layout.Render(m.menu.View())
}

func (m *MainModel) viewRunning() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "⏳ Running " + m.runningTool,
		Subtitle: "Waiting for the external MCP client to finish",
		HelpText: "Ctrl+C to force quit",
	})

	return m.layout.Render(m.spinner.View() + " invoking...")
}

func (m *MainModel) viewError() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "❌ Error",
		Subtitle: "Something went wrong",
		HelpText: "Press Esc to return • Ctrl+C to quit",
	})

	errorContent := ""
	if m.err != nil {
		errorContent = m.err.Error()
	}

	return m.layout.Render(errorContent)
}

// State exposes the current application state for tests.
func (m *MainModel) State() AppState { return m.state }

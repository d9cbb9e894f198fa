// Package setupmenu provides the first-time setup flow for the ytmenu TUI.
//
// The wizard walks through the handful of values ytmenu needs before it can
// invoke anything: the external MCP client binary, the client's own config
// file, the MCP server name inside that config, an optional default project,
// and an optional YouTrack permanent token which goes to the OS keyring
// (never to the config file).
//
// States:
//   - Welcome: introduction
//   - ClientBin / ClientConfig / MCPName / DefaultProject: text inputs
//   - Token: password-masked input, Enter with empty value skips
//   - Confirmation: review and confirm
//   - Complete/Cancelled: final state
package setupmenu

import (
	"fmt"
	"strings"

	"ytmenu/internal/config"
	"ytmenu/internal/credentials"
	"ytmenu/internal/logging"
	"ytmenu/internal/tui/components"
	"ytmenu/internal/tui/helpers"
	"ytmenu/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SetupState represents the current state of the setup process
type SetupState int

const (
	SetupStateWelcome SetupState = iota
	SetupStateClientBin
	SetupStateClientConfig
	SetupStateMCPName
	SetupStateDefaultProject
	SetupStateToken
	SetupStateConfirmation
	SetupStateComplete
	SetupStateCancelled
)

// Custom messages for internal state transitions
type (
	setupErrorMsg    struct{ err error }
	setupCompleteMsg struct{}
)

// SetupModel manages the first-time setup wizard state and user interactions.
// Pointer receivers are used throughout so state changes propagate across the
// event loop.
type SetupModel struct {
	state SetupState

	// Collected values
	ClientBin      string
	ClientConfig   string
	MCPName        string
	DefaultProject string
	token          string // held in memory until final confirmation only

	// Flow control
	Cancelled bool
	logger    *logging.AppLogger

	creds credentials.Store

	textInput textinput.Model
	layout    components.LayoutModel
}

// NewSetupModel creates a new setup wizard model with initial state and UI components.
func NewSetupModel(ctx helpers.UIContext) *SetupModel {
	return newSetupModel(ctx, credentials.NewManager())
}

// newSetupModel lets tests inject a credential store.
func newSetupModel(ctx helpers.UIContext, creds credentials.Store) *SetupModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 512

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

	return &SetupModel{
		state:     SetupStateWelcome,
		textInput: ti,
		layout:    layout,
		logger:    ctx.Logger,
		creds:     creds,
	}
}

func (m *SetupModel) Init() tea.Cmd {
	m.logger.Info("Setup model initialized")
	return textinput.Blink
}

func (m *SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logger.LogMessage(msg)

	m.layout, _ = m.layout.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textInput.Width = m.layout.InputWidth()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case setupErrorMsg:
		m.layout = m.layout.SetError(msg.err)
		return m, nil

	case setupCompleteMsg:
		m.state = SetupStateComplete
		m.layout = m.layout.ClearError()
		return m, nil
	}

	return m, nil
}

func (m *SetupModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.handleQuit()
	}

	switch m.state {
	case SetupStateWelcome:
		return m.handleWelcomeKeys(msg)
	case SetupStateClientBin, SetupStateClientConfig, SetupStateMCPName, SetupStateDefaultProject, SetupStateToken:
		return m.handleInputKeys(msg)
	case SetupStateConfirmation:
		return m.handleConfirmationKeys(msg)
	case SetupStateComplete, SetupStateCancelled:
		return m, tea.Quit
	default:
		return m, tea.Quit
	}
}

func (m *SetupModel) handleWelcomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		m.resetInputForState(SetupStateClientBin)
		return m, nil
	case "esc", "q":
		return m.handleQuit()
	}
	return m, nil
}

// handleInputKeys drives all five text input screens. Enter validates and
// advances, Esc steps back one screen.
func (m *SetupModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.textInput.Value())
		if err := m.acceptValue(value); err != nil {
			m.logger.Warn("Setup input rejected", "state", m.state, "error", err)
			return m, func() tea.Msg { return setupErrorMsg{err} }
		}
		m.advance()
		return m, nil

	case "esc":
		m.stepBack()
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

// acceptValue validates and stores the value for the current input state.
func (m *SetupModel) acceptValue(value string) error {
	switch m.state {
	case SetupStateClientBin:
		if value == "" {
			return fmt.Errorf("client binary cannot be empty")
		}
		m.ClientBin = value
	case SetupStateClientConfig:
		if value == "" {
			return fmt.Errorf("client config path cannot be empty")
		}
		m.ClientConfig = value
	case SetupStateMCPName:
		if value == "" {
			return fmt.Errorf("MCP server name cannot be empty")
		}
		m.MCPName = value
	case SetupStateDefaultProject:
		// Optional; empty means no pre-filled project in prompts.
		m.DefaultProject = value
	case SetupStateToken:
		if value != "" {
			if err := credentials.ValidateTokenFormat(value); err != nil {
				return err
			}
		}
		m.token = value
	}
	return nil
}

func (m *SetupModel) advance() {
	switch m.state {
	case SetupStateClientBin:
		m.resetInputForState(SetupStateClientConfig)
	case SetupStateClientConfig:
		m.resetInputForState(SetupStateMCPName)
	case SetupStateMCPName:
		m.resetInputForState(SetupStateDefaultProject)
	case SetupStateDefaultProject:
		m.resetInputForState(SetupStateToken)
	case SetupStateToken:
		m.state = SetupStateConfirmation
		m.layout = m.layout.ClearError()
	}
}

func (m *SetupModel) stepBack() {
	switch m.state {
	case SetupStateClientBin:
		m.state = SetupStateWelcome
	case SetupStateClientConfig:
		m.resetInputForState(SetupStateClientBin)
	case SetupStateMCPName:
		m.resetInputForState(SetupStateClientConfig)
	case SetupStateDefaultProject:
		m.resetInputForState(SetupStateMCPName)
	case SetupStateToken:
		m.resetInputForState(SetupStateDefaultProject)
	}
	m.layout = m.layout.ClearError()
}

// resetInputForState re-seeds the shared text input for the given state.
func (m *SetupModel) resetInputForState(state SetupState) {
	m.state = state
	m.layout = m.layout.ClearError()
	m.textInput.EchoMode = textinput.EchoNormal

	switch state {
	case SetupStateClientBin:
		m.textInput.SetValue(m.orDefault(m.ClientBin, config.DefaultClientBin))
		m.textInput.Placeholder = config.DefaultClientBin
	case SetupStateClientConfig:
		m.textInput.SetValue(m.ClientConfig)
		m.textInput.Placeholder = "/path/to/mcp-client-config.json"
	case SetupStateMCPName:
		m.textInput.SetValue(m.orDefault(m.MCPName, config.DefaultMCPName))
		m.textInput.Placeholder = config.DefaultMCPName
	case SetupStateDefaultProject:
		m.textInput.SetValue(m.DefaultProject)
		m.textInput.Placeholder = "DEMO"
	case SetupStateToken:
		m.textInput.SetValue("")
		m.textInput.Placeholder = "perm:..."
		m.textInput.EchoMode = textinput.EchoPassword
	}
	m.textInput.CursorEnd()
}

func (m *SetupModel) orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (m *SetupModel) handleConfirmationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		m.logger.LogUserAction("setup_confirm", "user confirmed configuration")
		return m, m.saveConfiguration()
	case "esc", "n":
		m.resetInputForState(SetupStateToken)
		return m, nil
	case "q":
		return m.handleQuit()
	}
	return m, nil
}

// saveConfiguration persists the config file and, when a token was entered,
// stores it in the OS keyring.
func (m *SetupModel) saveConfiguration() tea.Cmd {
	return func() tea.Msg {
		cfg := config.DefaultConfig()
		cfg.ClientBin = m.ClientBin
		cfg.ClientConfig = m.ClientConfig
		cfg.MCPName = m.MCPName
		cfg.DefaultProject = m.DefaultProject

		if err := cfg.Save(); err != nil {
			return setupErrorMsg{fmt.Errorf("failed to save configuration: %w", err)}
		}

		if m.token != "" {
			if err := m.creds.StoreToken(m.token); err != nil {
				return setupErrorMsg{fmt.Errorf("configuration saved but token storage failed: %w", err)}
			}
			m.token = ""
		}

		m.logger.Info("First-time setup completed")
		return setupCompleteMsg{}
	}
}

func (m *SetupModel) handleQuit() (tea.Model, tea.Cmd) {
	m.Cancelled = true
	m.state = SetupStateCancelled
	return m, tea.Quit
}

// Views

func (m *SetupModel) View() string {
	switch m.state {
	case SetupStateWelcome:
		return m.viewWelcome()
	case SetupStateClientBin:
		return m.viewInput("🔧 MCP Client Binary", "Name or path of the external MCP client executable", "")
	case SetupStateClientConfig:
		return m.viewInput("📄 Client Config File", "Path to the MCP client's config file (passed as --config)", "")
	case SetupStateMCPName:
		return m.viewInput("🏷  MCP Server Name", "Server entry inside the client config (passed as --mcp-name)", "")
	case SetupStateDefaultProject:
		return m.viewInput("📁 Default Project", "YouTrack project short name to pre-fill in prompts", "Leave empty to skip.")
	case SetupStateToken:
		return m.viewInput("🔑 YouTrack Token", "Permanent token, stored in the OS keyring only", "Leave empty to rely on the client's own credentials.")
	case SetupStateConfirmation:
		return m.viewConfirmation()
	case SetupStateComplete:
		return m.viewComplete()
	case SetupStateCancelled:
		return m.viewCancelled()
	}
	return ""
}

func (m *SetupModel) viewWelcome() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "👋 Welcome to ytmenu",
		Subtitle: "Interactive console for your YouTrack MCP server",
		HelpText: "Enter to begin • Esc/q to quit",
	})

	content := "ytmenu invokes YouTrack tools through an external MCP client.\n\n" +
		"This one-time setup collects the client binary, its config file,\n" +
		"the MCP server name and a couple of optional defaults."

	return m.layout.Render(content)
}

func (m *SetupModel) viewInput(title, subtitle, hint string) string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    title,
		Subtitle: subtitle,
		HelpText: "Enter to continue • Esc to go back • Ctrl+C to quit",
	})

	var content strings.Builder
	content.WriteString(styles.InputStyle.Render(m.textInput.View()))
	if hint != "" {
		content.WriteString("\n\n")
		content.WriteString(styles.MutedStyle.Render("💡 " + hint))
	}

	return m.layout.Render(content.String())
}

func (m *SetupModel) viewConfirmation() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "✅ Confirm Configuration",
		Subtitle: "Review your settings",
		HelpText: "Enter/y to confirm • Esc/n to go back • q to quit",
	})

	var content strings.Builder
	content.WriteString(fmt.Sprintf("Client binary:  %s\n", styles.HighlightStyle.Render(m.ClientBin)))
	content.WriteString(fmt.Sprintf("Client config:  %s\n", styles.HighlightStyle.Render(m.ClientConfig)))
	content.WriteString(fmt.Sprintf("MCP name:       %s\n", styles.HighlightStyle.Render(m.MCPName)))

	project := m.DefaultProject
	if project == "" {
		project = "(none)"
	}
	content.WriteString(fmt.Sprintf("Default project: %s\n", styles.MutedStyle.Render(project)))

	token := "(not set)"
	if m.token != "" {
		token = "(will be stored in OS keyring)"
	}
	content.WriteString(fmt.Sprintf("YouTrack token:  %s\n", styles.MutedStyle.Render(token)))

	return m.layout.Render(content.String())
}

func (m *SetupModel) viewComplete() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "🎉 Setup Complete",
		Subtitle: "ytmenu is ready to use",
		HelpText: "Press any key to exit setup",
	})

	return m.layout.Render(styles.SuccessStyle.Render("Configuration saved.") +
		"\n\nPress any key to open the tool menu.")
}

func (m *SetupModel) viewCancelled() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title: "Setup Cancelled",
	})
	return m.layout.Render("No configuration was saved.")
}

// State exposes the current wizard state for tests.
func (m *SetupModel) State() SetupState { return m.state }

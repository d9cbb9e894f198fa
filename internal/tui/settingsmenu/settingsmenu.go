// Package settingsmenu provides the settings modification flow for the ytmenu TUI.
//
// It edits the invocation config (client binary, client config path, MCP
// server name, default project, YouTrack URL, timeout) and manages the
// YouTrack token in the OS keyring (rotate, delete).
package settingsmenu

import (
	"fmt"
	"strconv"
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

// SettingsState represents the current state of the settings flow
type SettingsState int

const (
	SettingsStateList SettingsState = iota
	SettingsStateEdit
	SettingsStateDeleteTokenConfirm
	SettingsStateDone
)

// settingsOption is one editable entry in the settings list.
type settingsOption int

const (
	OptionClientBin settingsOption = iota
	OptionClientConfig
	OptionMCPName
	OptionDefaultProject
	OptionYouTrackURL
	OptionTimeout
	OptionUpdateToken
	OptionDeleteToken

	optionCount
)

type (
	settingsSavedMsg struct{}
	settingsErrorMsg struct{ err error }
)

// SettingsModel manages the settings flow state and user interactions.
type SettingsModel struct {
	state  SettingsState
	cursor settingsOption
	option settingsOption // option currently being edited

	cfg    *config.Config
	creds  credentials.Store
	logger *logging.AppLogger

	textInput textinput.Model
	layout    components.LayoutModel
	status    string // confirmation line after a successful save
}

func NewSettingsModel(ctx helpers.UIContext) *SettingsModel {
	return newSettingsModel(ctx, credentials.NewManager())
}

func newSettingsModel(ctx helpers.UIContext, creds credentials.Store) *SettingsModel {
	ti := textinput.New()
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

	return &SettingsModel{
		state:     SettingsStateList,
		cfg:       ctx.Config,
		creds:     creds,
		logger:    ctx.Logger,
		textInput: ti,
		layout:    layout,
	}
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.layout, _ = m.layout.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textInput.Width = m.layout.InputWidth()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case settingsSavedMsg:
		m.status = "Saved."
		m.state = SettingsStateList
		m.layout = m.layout.ClearError()
		return m, nil

	case settingsErrorMsg:
		m.layout = m.layout.SetError(msg.err)
		return m, nil
	}

	return m, nil
}

func (m *SettingsModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case SettingsStateList:
		return m.handleListKeys(msg)
	case SettingsStateEdit:
		return m.handleEditKeys(msg)
	case SettingsStateDeleteTokenConfirm:
		return m.handleDeleteConfirmKeys(msg)
	}
	return m, nil
}

func (m *SettingsModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < optionCount-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.selectOption(m.cursor)
	case "esc", "q":
		return m, func() tea.Msg { return helpers.NavigateToMainMenuMsg{} }
	}
	return m, nil
}

func (m *SettingsModel) selectOption(opt settingsOption) (tea.Model, tea.Cmd) {
	m.status = ""
	m.option = opt
	m.logger.LogUserAction("settings_select", optionLabel(opt))

	switch opt {
	case OptionDeleteToken:
		if !m.creds.HasToken() {
			m.layout = m.layout.SetError(fmt.Errorf("no token is stored"))
			return m, nil
		}
		m.state = SettingsStateDeleteTokenConfirm
		return m, nil

	case OptionUpdateToken:
		m.state = SettingsStateEdit
		m.textInput.SetValue("")
		m.textInput.Placeholder = "perm:..."
		m.textInput.EchoMode = textinput.EchoPassword
		m.textInput.Focus()
		return m, textinput.Blink

	default:
		m.state = SettingsStateEdit
		m.textInput.SetValue(m.currentValue(opt))
		m.textInput.Placeholder = ""
		m.textInput.EchoMode = textinput.EchoNormal
		m.textInput.CursorEnd()
		m.textInput.Focus()
		return m, textinput.Blink
	}
}

func (m *SettingsModel) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.textInput.Value())
		return m, m.applyEdit(m.option, value)

	case "esc":
		m.state = SettingsStateList
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

func (m *SettingsModel) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		return m, func() tea.Msg {
			if err := m.creds.DeleteToken(); err != nil {
				return settingsErrorMsg{err}
			}
			return settingsSavedMsg{}
		}
	case "esc", "n":
		m.state = SettingsStateList
		return m, nil
	}
	return m, nil
}

// applyEdit validates and persists one setting.
func (m *SettingsModel) applyEdit(opt settingsOption, value string) tea.Cmd {
	return func() tea.Msg {
		switch opt {
		case OptionClientBin:
			if value == "" {
				return settingsErrorMsg{fmt.Errorf("client binary cannot be empty")}
			}
			m.cfg.ClientBin = value

		case OptionClientConfig:
			if value == "" {
				return settingsErrorMsg{fmt.Errorf("client config path cannot be empty")}
			}
			m.cfg.ClientConfig = value

		case OptionMCPName:
			if value == "" {
				return settingsErrorMsg{fmt.Errorf("MCP server name cannot be empty")}
			}
			m.cfg.MCPName = value

		case OptionDefaultProject:
			m.cfg.DefaultProject = value

		case OptionYouTrackURL:
			m.cfg.YouTrackURL = value

		case OptionTimeout:
			seconds, err := strconv.Atoi(value)
			if err != nil || seconds <= 0 {
				return settingsErrorMsg{fmt.Errorf("timeout must be a positive number of seconds")}
			}
			m.cfg.TimeoutSeconds = seconds

		case OptionUpdateToken:
			if err := m.creds.StoreToken(value); err != nil {
				return settingsErrorMsg{err}
			}
			return settingsSavedMsg{}
		}

		if err := m.cfg.Save(); err != nil {
			return settingsErrorMsg{fmt.Errorf("failed to save configuration: %w", err)}
		}
		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) currentValue(opt settingsOption) string {
	switch opt {
	case OptionClientBin:
		return m.cfg.ClientBin
	case OptionClientConfig:
		return m.cfg.ClientConfig
	case OptionMCPName:
		return m.cfg.MCPName
	case OptionDefaultProject:
		return m.cfg.DefaultProject
	case OptionYouTrackURL:
		return m.cfg.YouTrackURL
	case OptionTimeout:
		return strconv.Itoa(m.cfg.TimeoutSeconds)
	}
	return ""
}

func optionLabel(opt settingsOption) string {
	switch opt {
	case OptionClientBin:
		return "Client binary"
	case OptionClientConfig:
		return "Client config file"
	case OptionMCPName:
		return "MCP server name"
	case OptionDefaultProject:
		return "Default project"
	case OptionYouTrackURL:
		return "YouTrack URL"
	case OptionTimeout:
		return "Invocation timeout (seconds)"
	case OptionUpdateToken:
		return "Update YouTrack token"
	case OptionDeleteToken:
		return "Delete YouTrack token"
	}
	return ""
}

// Views

func (m *SettingsModel) View() string {
	switch m.state {
	case SettingsStateEdit:
		return m.viewEdit()
	case SettingsStateDeleteTokenConfirm:
		return m.viewDeleteConfirm()
	default:
		return m.viewList()
	}
}

func (m *SettingsModel) viewList() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "⚙️  Settings",
		Subtitle: "Invocation configuration and credentials",
		HelpText: "↑/↓ to navigate • Enter to edit • Esc to return to menu",
	})

	var content strings.Builder
	for opt := settingsOption(0); opt < optionCount; opt++ {
		cursor := "  "
		if opt == m.cursor {
			cursor = "> "
		}

		line := cursor + optionLabel(opt)
		switch opt {
		case OptionUpdateToken, OptionDeleteToken:
			if m.creds.HasToken() {
				line += styles.MutedStyle.Render("  (token stored)")
			} else {
				line += styles.MutedStyle.Render("  (no token)")
			}
		default:
			if v := m.currentValue(opt); v != "" {
				line += styles.MutedStyle.Render("  " + v)
			}
		}

		if opt == m.cursor {
			line = styles.HighlightStyle.Render(line)
		}
		content.WriteString(line + "\n")
	}

	if m.status != "" {
		content.WriteString("\n" + styles.SuccessStyle.Render(m.status))
	}

	return m.layout.Render(content.String())
}

func (m *SettingsModel) viewEdit() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "✏️  " + optionLabel(m.option),
		Subtitle: "Enter a new value",
		HelpText: "Enter to save • Esc to cancel",
	})

	var content strings.Builder
	content.WriteString(styles.InputStyle.Render(m.textInput.View()))

	if m.option == OptionUpdateToken {
		content.WriteString("\n\n")
		content.WriteString(styles.MutedStyle.Render("💡 The token is stored in the OS keyring, never in the config file."))
	}

	return m.layout.Render(content.String())
}

func (m *SettingsModel) viewDeleteConfirm() string {
	m.layout = m.layout.SetConfig(components.LayoutConfig{
		Title:    "🗑  Delete YouTrack Token",
		Subtitle: "The token will be removed from the OS keyring",
		HelpText: "Enter/y to delete • Esc/n to cancel",
	})

	return m.layout.Render("Tool invocations will fall back to the credentials\nconfigured in the external client.")
}

// State exposes the current flow state for tests.
func (m *SettingsModel) State() SettingsState { return m.state }

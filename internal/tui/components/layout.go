package components

import (
	"strings"

	"ytmenu/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

type LayoutConfig struct {
	Title    string
	Subtitle string
	HelpText string
	MarginX  int
	MarginY  int
	MaxWidth int
}

type LayoutModel struct {
	config LayoutConfig
	width  int
	height int
	err    error
}

func NewLayout(config LayoutConfig) LayoutModel {
	if config.MarginX == 0 {
		config.MarginX = 2
	}
	if config.MarginY == 0 {
		config.MarginY = 1
	}
	if config.MaxWidth == 0 {
		config.MaxWidth = 100
	}

	return LayoutModel{config: config}
}

func (m LayoutModel) Update(msg tea.Msg) (LayoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LayoutModel) SetError(err error) LayoutModel {
	if err != nil {
		m.err = err
	}
	return m
}

func (m LayoutModel) ClearError() LayoutModel {
	m.err = nil
	return m
}

func (m LayoutModel) GetError() error {
	return m.err
}

func (m LayoutModel) SetConfig(config LayoutConfig) LayoutModel {
	// Preserve defaults for zero values
	if config.MarginX == 0 {
		config.MarginX = m.config.MarginX
	}
	if config.MarginY == 0 {
		config.MarginY = m.config.MarginY
	}
	if config.MaxWidth == 0 {
		config.MaxWidth = m.config.MaxWidth
	}
	m.config = config
	return m
}

// Render the complete layout with content
func (m LayoutModel) Render(content string) string {
	sections := []string{}
	contentWidth := m.ContentWidth()

	if m.config.Title != "" {
		sections = append(sections, styles.TitleStyle.Render(m.wrapText(m.config.Title, contentWidth)))
	}

	if m.config.Subtitle != "" {
		sections = append(sections, styles.SubtitleStyle.Render(m.wrapText(m.config.Subtitle, contentWidth)))
	}

	if content != "" {
		sections = append(sections, styles.NormalTextStyle.Render(m.wrapText(content, contentWidth)))
	}

	if m.err != nil {
		errorText := "Error: " + m.err.Error()
		sections = append(sections, styles.ErrorStyle.Render(m.wrapText(errorText, contentWidth)))
	}

	if m.config.HelpText != "" {
		sections = append(sections, styles.HelpStyle.Render(m.wrapText(m.config.HelpText, contentWidth)))
	}

	joined := strings.Join(sections, "\n\n")
	return m.addMargins(joined)
}

// wrapText word-wraps while preserving manual line breaks.
func (m LayoutModel) wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			wrapped = append(wrapped, "")
			continue
		}
		wrapped = append(wrapped, wordwrap.String(line, width))
	}

	return strings.Join(wrapped, "\n")
}

func (m LayoutModel) addMargins(content string) string {
	lines := strings.Split(content, "\n")
	marginLeft := strings.Repeat(" ", m.config.MarginX)

	for i, line := range lines {
		lines[i] = marginLeft + line
	}

	marginTop := strings.Repeat("\n", m.config.MarginY)
	marginBottom := strings.Repeat("\n", m.config.MarginY)
	return marginTop + strings.Join(lines, "\n") + marginBottom
}

// Helper methods for responsive design
func (m LayoutModel) ContentWidth() int {
	available := m.width - (m.config.MarginX * 2)
	if available > m.config.MaxWidth {
		return m.config.MaxWidth
	}
	if available < 40 {
		return 40 // Minimum readable width
	}
	return available
}

func (m LayoutModel) ContentHeight() int {
	return m.height - (m.config.MarginY * 2) - 6 // Reserve space for sections
}

// Input width calculation for forms
func (m LayoutModel) InputWidth() int {
	inputWidth := m.ContentWidth() - 8

	if inputWidth > 80 {
		return 80 // Maximum input width for readability
	}
	if inputWidth < 30 {
		return 30 // Minimum input width
	}
	return inputWidth
}

package toolform

import (
	"testing"

	"ytmenu/internal/catalog"
	"ytmenu/internal/config"
	"ytmenu/internal/logging"
	"ytmenu/internal/tui/helpers"

	tea "github.com/charmbracelet/bubbletea"
)

func testContext(t *testing.T) helpers.UIContext {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.ClientConfig = "/etc/mcp/servers.json"
	logger, _ := logging.NewTestLogger()
	return helpers.NewUIContext(100, 40, &cfg, logger)
}

func mustFind(t *testing.T, name string) catalog.Tool {
	t.Helper()

	tool, ok := catalog.Find(name)
	if !ok {
		t.Fatalf("%s missing from catalog", name)
	}
	return tool
}

func typeText(m *Model, text string) *Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(*Model)
}

func pressEnter(m *Model) (*Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(*Model), cmd
}

func pressEsc(m *Model) (*Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	return updated.(*Model), cmd
}

func TestRequiredParameterCannotBeSkipped(t *testing.T) {
	m := NewModel(testContext(t), mustFind(t, "get_issue"))

	m, cmd := pressEnter(m)
	if cmd != nil {
		t.Error("empty required parameter should not advance")
	}
	if m.index != 0 {
		t.Errorf("index = %d, want 0", m.index)
	}
	if m.layout.GetError() == nil {
		t.Error("expected a validation error to be shown")
	}
}

func TestSubmitEmitsCollectedKwargs(t *testing.T) {
	m := NewModel(testContext(t), mustFind(t, "add_tag_to_issue"))

	m = typeText(m, "DEMO-123")
	m, _ = pressEnter(m)

	m = typeText(m, "deploy")
	_, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected submit command after last parameter")
	}

	msg, ok := cmd().(helpers.ToolSubmittedMsg)
	if !ok {
		t.Fatalf("expected ToolSubmittedMsg, got %T", cmd())
	}
	if msg.Tool.Name != "add_tag_to_issue" {
		t.Errorf("submitted tool = %q, want add_tag_to_issue", msg.Tool.Name)
	}
	if msg.Kwargs["issue_id"] != "DEMO-123" {
		t.Errorf("issue_id = %v, want DEMO-123", msg.Kwargs["issue_id"])
	}
	if msg.Kwargs["tag_name"] != "deploy" {
		t.Errorf("tag_name = %v, want deploy", msg.Kwargs["tag_name"])
	}
}

func TestOptionalParameterSkippedWhenEmpty(t *testing.T) {
	// get_available_tags: optional query filter, then a limit with a default.
	m := NewModel(testContext(t), mustFind(t, "get_available_tags"))

	m, _ = pressEnter(m) // skip the filter

	if _, present := m.values["query"]; present {
		t.Error("skipped optional parameter should not be collected")
	}

	// The limit prompt is pre-seeded with the catalog default.
	if got := m.textInput.Value(); got != "50" {
		t.Errorf("limit seeded with %q, want the default 50", got)
	}

	_, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg := cmd().(helpers.ToolSubmittedMsg)
	if msg.Kwargs["limit"] != 50 {
		t.Errorf("limit = %v, want 50", msg.Kwargs["limit"])
	}
}

func TestListParameterIsSplit(t *testing.T) {
	m := NewModel(testContext(t), mustFind(t, "set_issue_tags"))

	m = typeText(m, "DEMO-123")
	m, _ = pressEnter(m)

	m = typeText(m, "deploy, urgent")
	_, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected submit command")
	}

	msg := cmd().(helpers.ToolSubmittedMsg)
	tags, ok := msg.Kwargs["tag_names"].([]string)
	if !ok {
		t.Fatalf("tag_names = %T, want []string", msg.Kwargs["tag_names"])
	}
	if len(tags) != 2 || tags[0] != "deploy" || tags[1] != "urgent" {
		t.Errorf("tag_names = %v, want [deploy urgent]", tags)
	}
}

func TestInvalidIntShowsError(t *testing.T) {
	m := NewModel(testContext(t), mustFind(t, "get_projects"))

	m.textInput.SetValue("lots")
	m, cmd := pressEnter(m)
	if cmd != nil {
		t.Error("invalid int should not advance")
	}
	if m.layout.GetError() == nil {
		t.Error("expected a parse error to be shown")
	}
}

func TestEscOnFirstParameterReturnsToMenu(t *testing.T) {
	m := NewModel(testContext(t), mustFind(t, "get_issue"))

	_, cmd := pressEsc(m)
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if _, ok := cmd().(helpers.NavigateToMainMenuMsg); !ok {
		t.Errorf("expected NavigateToMainMenuMsg, got %T", cmd())
	}
}

func TestEscStepsBackToPreviousParameter(t *testing.T) {
	m := NewModel(testContext(t), mustFind(t, "add_tag_to_issue"))

	m = typeText(m, "DEMO-123")
	m, _ = pressEnter(m)
	if m.index != 1 {
		t.Fatalf("index = %d, want 1", m.index)
	}

	m, cmd := pressEsc(m)
	if cmd != nil {
		t.Error("stepping back should not navigate away")
	}
	if m.index != 0 {
		t.Errorf("index = %d, want 0", m.index)
	}
	if got := m.textInput.Value(); got != "DEMO-123" {
		t.Errorf("previous answer %q lost on step back", got)
	}
}

func TestProjectParameterSeededFromConfig(t *testing.T) {
	ctx := testContext(t)
	ctx.Config.DefaultProject = "DEMO"

	m := NewModel(ctx, mustFind(t, "get_custom_fields"))

	if got := m.textInput.Value(); got != "DEMO" {
		t.Errorf("project seeded with %q, want DEMO", got)
	}
}

func TestZeroParamToolSubmitsOnEnter(t *testing.T) {
	tool := catalog.Tool{Name: "ping", Category: "Misc", Description: "No parameters."}
	m := NewModel(testContext(t), tool)

	_, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(helpers.ToolSubmittedMsg)
	if !ok {
		t.Fatalf("expected ToolSubmittedMsg, got %T", cmd())
	}
	if len(msg.Kwargs) != 0 {
		t.Errorf("kwargs = %v, want empty", msg.Kwargs)
	}
}

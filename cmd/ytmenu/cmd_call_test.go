package main

import (
	"testing"

	"ytmenu/internal/catalog"
)

func mustFind(t *testing.T, name string) catalog.Tool {
	t.Helper()

	tool, ok := catalog.Find(name)
	if !ok {
		t.Fatalf("%s missing from catalog", name)
	}
	return tool
}

func TestParseParams(t *testing.T) {
	tool := mustFind(t, "search_issues")

	kwargs, err := parseParams(tool, []string{
		"query=project: DEMO #Unresolved",
		"limit=5",
	})
	if err != nil {
		t.Fatalf("parseParams failed: %v", err)
	}

	if kwargs["query"] != "project: DEMO #Unresolved" {
		t.Errorf("query = %v", kwargs["query"])
	}
	if kwargs["limit"] != 5 {
		t.Errorf("limit = %v (%T), want int 5", kwargs["limit"], kwargs["limit"])
	}
}

func TestParseParamsListValues(t *testing.T) {
	tool := mustFind(t, "set_issue_tags")

	kwargs, err := parseParams(tool, []string{
		"issue_id=DEMO-123",
		"tag_names=deploy,urgent",
	})
	if err != nil {
		t.Fatalf("parseParams failed: %v", err)
	}

	tags, ok := kwargs["tag_names"].([]string)
	if !ok || len(tags) != 2 {
		t.Fatalf("tag_names = %v, want two entries", kwargs["tag_names"])
	}
}

func TestParseParamsRejectsMalformedEntry(t *testing.T) {
	tool := mustFind(t, "get_issue")

	if _, err := parseParams(tool, []string{"issue_id"}); err == nil {
		t.Error("expected error for entry without '='")
	}
}

func TestParseParamsRejectsUnknownName(t *testing.T) {
	tool := mustFind(t, "get_issue")

	if _, err := parseParams(tool, []string{"bogus=1"}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestParseParamsSkipsEmptyValues(t *testing.T) {
	tool := mustFind(t, "update_issue")

	kwargs, err := parseParams(tool, []string{
		"issue_id=DEMO-123",
		"summary=",
	})
	if err != nil {
		t.Fatalf("parseParams failed: %v", err)
	}
	if _, present := kwargs["summary"]; present {
		t.Error("empty value should be omitted from kwargs")
	}
}

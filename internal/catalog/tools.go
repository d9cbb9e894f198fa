package catalog

// The tool surface of the YouTrack MCP server, by category. Descriptions and
// parameter hints mirror the server's own tool definitions so the interactive
// prompts and the server docs stay in agreement.

const (
	CategoryIssues       = "Issues"
	CategoryCustomFields = "Custom Fields"
	CategoryTags         = "Tags"
	CategoryProjects     = "Projects"
)

var issueIDParam = Param{
	Name:        "issue_id",
	Prompt:      "Issue ID",
	Description: "Issue identifier like 'DEMO-123' or 'PROJECT-456'",
	Required:    true,
}

var tools = []Tool{
	// Issues
	{
		Name:        "create_issue",
		Category:    CategoryIssues,
		Description: "Create a new issue in a project.",
		Example:     `create_issue(project="DEMO", summary="Login page crashes")`,
		Params: []Param{
			{Name: "project", Prompt: "Project", Description: "Project SHORT name like 'DEMO', not the full display name", Required: true},
			{Name: "summary", Prompt: "Summary", Description: "One-line issue summary", Required: true},
			{Name: "description", Prompt: "Description", Description: "Optional longer description, markdown allowed"},
		},
	},
	{
		Name:        "get_issue",
		Category:    CategoryIssues,
		Description: "Get basic information about an issue.",
		Example:     `get_issue(issue_id="DEMO-123")`,
		Params:      []Param{issueIDParam},
	},
	{
		Name:        "get_issue_raw",
		Category:    CategoryIssues,
		Description: "Get detailed issue data including full custom field values.",
		Example:     `get_issue_raw(issue_id="DEMO-123")`,
		Params:      []Param{issueIDParam},
	},
	{
		Name:        "update_issue",
		Category:    CategoryIssues,
		Description: "Update the summary and/or description of an issue.",
		Example:     `update_issue(issue_id="DEMO-123", summary="New summary")`,
		Params: []Param{
			issueIDParam,
			{Name: "summary", Prompt: "Summary", Description: "New one-line summary, leave empty to keep"},
			{Name: "description", Prompt: "Description", Description: "New description, leave empty to keep"},
		},
	},
	{
		Name:        "add_comment",
		Category:    CategoryIssues,
		Description: "Add a comment to an issue.",
		Example:     `add_comment(issue_id="DEMO-123", text="Fixed in build 42")`,
		Params: []Param{
			issueIDParam,
			{Name: "text", Prompt: "Comment", Description: "Comment text, markdown allowed", Required: true},
		},
	},
	{
		Name:        "search_issues",
		Category:    CategoryIssues,
		Description: "Search issues using YouTrack query syntax.",
		Example:     `search_issues(query="project: DEMO #Unresolved", limit=10)`,
		Params: []Param{
			{Name: "query", Prompt: "Query", Description: "YouTrack search query, e.g. 'project: DEMO assignee: me'", Required: true},
			{Name: "limit", Prompt: "Limit", Description: "Maximum number of issues to return (default: 10)", Kind: KindInt, Default: "10"},
		},
	},
	{
		Name:        "update_issue_type",
		Category:    CategoryIssues,
		Description: "Change the Type field of an issue.",
		Example:     `update_issue_type(issue_id="DEMO-123", type="Bug")`,
		Params: []Param{
			issueIDParam,
			{Name: "type", Prompt: "Type", Description: "Exact type name, e.g. 'Bug' or 'Task'. Check allowed values first.", Required: true},
		},
	},

	// Custom fields
	{
		Name:        "get_custom_fields",
		Category:    CategoryCustomFields,
		Description: "List the custom fields configured for a project.",
		Example:     `get_custom_fields(project_id="DEMO")`,
		Params: []Param{
			{Name: "project_id", Prompt: "Project", Description: "Project SHORT name like 'DEMO', not the full display name", Required: true},
		},
	},
	{
		Name:        "get_custom_field_allowed_values",
		Category:    CategoryCustomFields,
		Description: "Get the allowed values for a project custom field.",
		Example:     `get_custom_field_allowed_values(project_id="DEMO", field_name="Priority")`,
		Params: []Param{
			{Name: "project_id", Prompt: "Project", Description: "Project SHORT name like 'DEMO'", Required: true},
			{Name: "field_name", Prompt: "Field name", Description: "Exact custom field name, e.g. 'Priority' or 'Type'", Required: true},
		},
	},
	{
		Name:        "get_available_custom_field_values",
		Category:    CategoryCustomFields,
		Description: "Get the values currently assignable to a field of a specific issue.",
		Example:     `get_available_custom_field_values(issue_id="DEMO-123", field_name="State")`,
		Params: []Param{
			issueIDParam,
			{Name: "field_name", Prompt: "Field name", Description: "Exact custom field name, e.g. 'State'", Required: true},
		},
	},
	{
		Name:        "update_custom_fields",
		Category:    CategoryCustomFields,
		Description: "Update one or more custom fields of an issue.",
		Example:     `update_custom_fields(issue_id="DEMO-123", custom_fields={"Priority": "Critical"})`,
		Params: []Param{
			issueIDParam,
			{Name: "custom_fields", Prompt: "Fields (JSON)", Description: `JSON object of field name to value, e.g. {"Priority": "Critical", "State": "In Progress"}`, Kind: KindJSON, Required: true},
		},
	},

	// Tags
	{
		Name:        "get_available_tags",
		Category:    CategoryTags,
		Description: "Get all tags owned by or shared with the current user.",
		Example:     `get_available_tags(query="deploy", limit=20)`,
		Params: []Param{
			{Name: "query", Prompt: "Filter", Description: "Optional query to filter tags by name"},
			{Name: "limit", Prompt: "Limit", Description: "Maximum number of tags to return (default: 50)", Kind: KindInt, Default: "50"},
		},
	},
	{
		Name:        "get_issue_tags",
		Category:    CategoryTags,
		Description: "Get all tags currently assigned to an issue.",
		Example:     `get_issue_tags(issue_id="DEMO-123")`,
		Params:      []Param{issueIDParam},
	},
	{
		Name:        "add_tag_to_issue",
		Category:    CategoryTags,
		Description: "Add a tag to an issue by tag name. The tag must already exist; existing tags remain.",
		Example:     `add_tag_to_issue(issue_id="DEMO-123", tag_name="deploy")`,
		Params: []Param{
			issueIDParam,
			{Name: "tag_name", Prompt: "Tag name", Description: "Exact tag name to add (case-sensitive). Use get_available_tags to see options.", Required: true},
		},
	},
	{
		Name:        "remove_tag_from_issue",
		Category:    CategoryTags,
		Description: "Remove a specific tag from an issue by tag name.",
		Example:     `remove_tag_from_issue(issue_id="DEMO-123", tag_name="deploy")`,
		Params: []Param{
			issueIDParam,
			{Name: "tag_name", Prompt: "Tag name", Description: "Name of the tag to remove", Required: true},
		},
	},
	{
		Name:        "set_issue_tags",
		Category:    CategoryTags,
		Description: "Set all tags for an issue, replacing any existing tags.",
		Example:     `set_issue_tags(issue_id="DEMO-123", tag_names=["deploy", "urgent"])`,
		Params: []Param{
			issueIDParam,
			{Name: "tag_names", Prompt: "Tag names", Description: "Comma-separated list of tag names to set", Kind: KindList, Required: true},
		},
	},
	{
		Name:        "remove_all_tags_from_issue",
		Category:    CategoryTags,
		Description: "Remove all tags from an issue.",
		Example:     `remove_all_tags_from_issue(issue_id="DEMO-123")`,
		Params:      []Param{issueIDParam},
	},
	{
		Name:        "find_tag_by_name",
		Category:    CategoryTags,
		Description: "Find a tag by its exact name.",
		Example:     `find_tag_by_name(tag_name="deploy")`,
		Params: []Param{
			{Name: "tag_name", Prompt: "Tag name", Description: "Name of the tag to find", Required: true},
		},
	},

	// Projects
	{
		Name:        "get_projects",
		Category:    CategoryProjects,
		Description: "List the projects visible to the current user.",
		Example:     `get_projects(limit=25)`,
		Params: []Param{
			{Name: "limit", Prompt: "Limit", Description: "Maximum number of projects to return (default: 25)", Kind: KindInt, Default: "25"},
		},
	},
	{
		Name:        "get_project_issues",
		Category:    CategoryProjects,
		Description: "List recent issues of a project.",
		Example:     `get_project_issues(project_id="DEMO", limit=10)`,
		Params: []Param{
			{Name: "project_id", Prompt: "Project", Description: "Project SHORT name like 'DEMO'", Required: true},
			{Name: "limit", Prompt: "Limit", Description: "Maximum number of issues to return (default: 10)", Kind: KindInt, Default: "10"},
		},
	},
}

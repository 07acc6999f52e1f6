package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Argument names match the request structs in handlers.go.

var addToolDef = mcp.NewTool("note_add",
	mcp.WithDescription("Append a note to the end of the list. "+
		"Title and content are trimmed; if either is empty the list is left unchanged and added is false."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
	mcp.WithString("content", mcp.Required(), mcp.Description("Note body (Markdown)")),
)

var listToolDef = mcp.NewTool("note_list",
	mcp.WithDescription("List notes in display order. Each item carries its current index, "+
		"which shifts when an earlier note is deleted; use the id for a stable reference."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 50, max 500)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip (default 0)")),
	mcp.WithBoolean("include_content", mcp.Description("Return full notes instead of previews")),
)

var getToolDef = mcp.NewTool("note_get",
	mcp.WithDescription("Fetch one note by index or id."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithNumber("index", mcp.Description("Zero-based list position")),
	mcp.WithString("id", mcp.Description("Note id")),
)

var deleteToolDef = mcp.NewTool("note_delete",
	mcp.WithDescription("Delete one note by index or id. Later notes move up by one."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithNumber("index", mcp.Description("Zero-based list position")),
	mcp.WithString("id", mcp.Description("Note id")),
)

var editToolDef = mcp.NewTool("note_edit",
	mcp.WithDescription("Replace the title and/or content of one note, addressed by index or id. "+
		"Omitted fields keep their value. Values are stored as given, including empty strings."),
	mcp.WithNumber("index", mcp.Description("Zero-based list position")),
	mcp.WithString("id", mcp.Description("Note id")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("content", mcp.Description("New content")),
)

var exportToolDef = mcp.NewTool("note_export",
	mcp.WithDescription("Write every note to a JSON or YAML file. "+
		"Defaults to ~/.jot/exports/notes-<timestamp>.json."),
	mcp.WithString("path", mcp.Description("Destination .json/.yaml file directly in ~/.jot/exports or an allowed_paths directory")),
	mcp.WithString("format", mcp.Enum("json", "yaml"), mcp.Description("File format (default: from extension)")),
)

var importToolDef = mcp.NewTool("note_import",
	mcp.WithDescription("Append the notes of an export file (or a bare snapshot list) to the list. "+
		"Blank notes are skipped. Not atomic: notes imported before a failure stay, "+
		"and the error result reports them under \"partial\"."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Source .json/.yaml file directly in ~/.jot/exports or an allowed_paths directory")),
	mcp.WithString("format", mcp.Enum("json", "yaml"), mcp.Description("File format (default: from extension)")),
)

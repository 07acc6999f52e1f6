package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/ops"
	"github.com/hpungsan/jot/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.Store
	paths ops.PathPolicy // export/import scope; default exports go to paths.BaseDir
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(s *store.Store, paths ops.PathPolicy) *Handlers {
	return &Handlers{store: s, paths: paths}
}

// Request types for each tool

// AddRequest represents the arguments for note_add.
type AddRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListRequest represents the arguments for note_list.
type ListRequest struct {
	Limit          int  `json:"limit,omitempty"`
	Offset         int  `json:"offset,omitempty"`
	IncludeContent bool `json:"include_content,omitempty"`
}

// AddressRequest represents the arguments for note_get and note_delete.
type AddressRequest struct {
	Index *int   `json:"index,omitempty"`
	ID    string `json:"id,omitempty"`
}

// EditRequest represents the arguments for note_edit.
type EditRequest struct {
	Index   *int    `json:"index,omitempty"`
	ID      string  `json:"id,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// FileRequest represents the arguments for note_export and note_import.
type FileRequest struct {
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`
}

// Handler implementations

// HandleAdd handles the note_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Add(ctx, h.store, ops.AddInput{Title: input.Title, Content: input.Content})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleList handles the note_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return successResult(ops.List(h.store, ops.ListInput{
		Limit:          input.Limit,
		Offset:         input.Offset,
		IncludeContent: input.IncludeContent,
	}))
}

// HandleGet handles the note_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.store, ops.FetchInput{Index: input.Index, ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDelete handles the note_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.store, ops.DeleteInput{Index: input.Index, ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEdit handles the note_edit tool call.
func (h *Handlers) HandleEdit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EditRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Edit(ctx, h.store, ops.EditInput{
		Index:   input.Index,
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleExport handles the note_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	format := ops.ExportFormat(input.Format)
	path := input.Path
	if path == "" {
		path = ops.DefaultExportPath(h.paths.BaseDir, format, time.Now())
	}

	result, err := ops.Export(ctx, h.store, h.paths, ops.ExportInput{Path: path, Format: format})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleImport handles the note_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Import(ctx, h.store, h.paths, ops.ImportInput{
		Path:   input.Path,
		Format: ops.ExportFormat(input.Format),
	})
	if err != nil {
		if result != nil {
			return errorResultWithPartial(err, result), nil
		}
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are never exposed; they may carry file paths or SQL errors.
func errorResult(err error) *mcp.CallToolResult {
	return errorResultWithPartial(err, nil)
}

// errorResultWithPartial is errorResult plus, when non-nil, the work done
// before the failure under "partial".
func errorResultWithPartial(err error, partial any) *mcp.CallToolResult {
	var payload map[string]any

	var jErr *errors.JotError
	if stderrors.As(err, &jErr) && jErr.Code != errors.ErrInternal {
		errorObj := map[string]any{
			"code":    jErr.Code,
			"message": jErr.Message,
			"status":  jErr.Status,
		}
		if jErr.Details != nil {
			errorObj["details"] = jErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	if partial != nil {
		payload["partial"] = partial
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

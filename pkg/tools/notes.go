package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/attio-mcp/pkg/attio"
)

// CreateNote builds the create_note tool, a thin wrapper over Attio's note
// endpoint; no translation involved.
func CreateNote(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "create_note",
			Description: "Attach a plaintext note to an Attio record.",
			Annotations: &mcp.ToolAnnotations{Title: "Create Note"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"parent_object": map[string]any{
						"type":        "string",
						"description": "Object slug of the record, e.g. 'people'",
					},
					"parent_record_id": map[string]any{
						"type":        "string",
						"description": "Record ID (UUID) to attach the note to",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "Note title",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Note body, plaintext",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
				"required": []string{"parent_object", "parent_record_id", "title", "content"},
			},
		},
		Group: GroupWrite,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			params := attio.NoteParams{}
			var err error
			if params.ParentObject, err = ReadString(input, "parent_object", true); err != nil {
				return Failuref("", "%s", err), nil
			}
			if params.ParentRecordID, err = ReadString(input, "parent_record_id", true); err != nil {
				return Failuref("", "%s", err), nil
			}
			if params.Title, err = ReadString(input, "title", true); err != nil {
				return Failuref("", "%s", err), nil
			}
			if params.Content, err = ReadString(input, "content", true); err != nil {
				return Failuref("", "%s", err), nil
			}
			created, err := deps.client(input).CreateNote(ctx, params)
			if err != nil {
				return Failure(err), nil
			}
			return OKf(created, "note %q created on %s %s", params.Title, params.ParentObject, params.ParentRecordID), nil
		},
	}
}

// AddToList builds the add_to_list tool, a thin wrapper over Attio's list
// entry endpoint; no translation involved.
func AddToList(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "add_to_list",
			Description: "Add an existing record to an Attio list.",
			Annotations: &mcp.ToolAnnotations{Title: "Add To List"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"list_id": map[string]any{
						"type":        "string",
						"description": "List ID or slug",
					},
					"parent_object": map[string]any{
						"type":        "string",
						"description": "Object slug of the record, e.g. 'companies'",
					},
					"parent_record_id": map[string]any{
						"type":        "string",
						"description": "Record ID (UUID) to add",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
				"required": []string{"list_id", "parent_object", "parent_record_id"},
			},
		},
		Group: GroupWrite,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			listID, err := ReadString(input, "list_id", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			parentObject, err := ReadString(input, "parent_object", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			parentRecordID, err := ReadString(input, "parent_record_id", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			entry, err := deps.client(input).AddToList(ctx, listID, parentObject, parentRecordID)
			if err != nil {
				return Failure(err), nil
			}
			return OKf(entry, "added %s %s to list %s", parentObject, parentRecordID, listID), nil
		},
	}
}

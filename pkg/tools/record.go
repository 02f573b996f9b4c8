package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/attio-mcp/pkg/attio"
)

// GetRecord builds the get_record tool: fetch one record by ID and flatten
// its values.
func GetRecord(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "get_record",
			Description: "Fetch a single Attio record by ID, returning flattened attribute values.",
			Annotations: &mcp.ToolAnnotations{Title: "Get Record"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"object_type": map[string]any{
						"type":        "string",
						"description": "Object slug, e.g. 'people'",
					},
					"record_id": map[string]any{
						"type":        "string",
						"description": "Record ID (UUID)",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
				"required": []string{"object_type", "record_id"},
			},
		},
		Group: GroupQuery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			objectType, err := ReadString(input, "object_type", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			recordID, err := ReadString(input, "record_id", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			client := deps.client(input)
			schema, err := client.ObjectSchema(ctx, objectType)
			if err != nil {
				return Failure(err), nil
			}
			raw, err := client.GetRecord(ctx, objectType, recordID)
			if err != nil {
				return Failure(err), nil
			}
			for record, err := range attio.Project(schema, []attio.RawRecord{*raw}) {
				if err != nil {
					return Failure(err), nil
				}
				return OKf(map[string]any{"record": record}, "fetched record %s", recordID), nil
			}
			return Failuref("check the record ID", "record %s not found", recordID), nil
		},
	}
}

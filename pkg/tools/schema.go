package tools

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetAttributes builds the get_attributes tool: list an object's or list's
// declared attributes with their types.
func GetAttributes(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name: "get_attributes",
			Description: "List the attributes an Attio object type or list declares: slug, title, " +
				"type, and whether the attribute is multi-valued. Use this before building filters.",
			Annotations: &mcp.ToolAnnotations{Title: "Get Attributes"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"object_type": map[string]any{
						"type":        "string",
						"description": "Object slug, e.g. 'people'. Mutually exclusive with list_id.",
					},
					"list_id": map[string]any{
						"type":        "string",
						"description": "List ID or slug. Mutually exclusive with object_type.",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
			},
		},
		Group: GroupDiscovery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			objectType, _ := ReadString(input, "object_type", false)
			listID, _ := ReadString(input, "list_id", false)
			client := deps.client(input)

			var src = client.Object(objectType)
			switch {
			case objectType != "" && listID != "":
				return Failuref("pass exactly one of object_type or list_id", "object_type and list_id are mutually exclusive"), nil
			case objectType == "" && listID == "":
				return Failuref("pass object_type (e.g. 'people') or list_id", "one of object_type or list_id is required"), nil
			case listID != "":
				src = client.List(listID)
			}

			schema, err := src.Schema(ctx)
			if err != nil {
				return Failure(err), nil
			}

			type attributeRow struct {
				Slug        string `json:"slug"`
				Title       string `json:"title"`
				Type        string `json:"type"`
				MultiValued bool   `json:"multi_valued"`
			}
			rows := make([]attributeRow, 0, len(schema))
			for slug, info := range schema {
				rows = append(rows, attributeRow{
					Slug:        slug,
					Title:       info.Title,
					Type:        string(info.Type),
					MultiValued: info.MultiValued,
				})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].Slug < rows[j].Slug })
			return OKf(map[string]any{
				"attributes": rows,
				"count":      len(rows),
			}, "%s declares %d attributes", src.Scope(), len(rows)), nil
		},
	}
}

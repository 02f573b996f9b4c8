package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/attio-mcp/pkg/attio"
)

// GetSelectOptions builds the get_select_options tool: list the valid
// options of a select attribute with their IDs.
func GetSelectOptions(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name: "get_select_options",
			Description: "List the options of a select attribute: label, opaque option ID, and " +
				"archived flag. Attio filters select attributes by ID, not label.",
			Annotations: &mcp.ToolAnnotations{Title: "Get Select Options"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"object_type": map[string]any{
						"type":        "string",
						"description": "Object slug the attribute belongs to",
					},
					"attribute": map[string]any{
						"type":        "string",
						"description": "Attribute slug of the select attribute",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
				"required": []string{"object_type", "attribute"},
			},
		},
		Group: GroupDiscovery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			objectType, err := ReadString(input, "object_type", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			attribute, err := ReadString(input, "attribute", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			options, err := deps.client(input).SelectOptions(ctx, objectType, attribute)
			if err != nil {
				return Failure(err), nil
			}
			return optionsResult(attribute, options), nil
		},
	}
}

// GetListStatuses builds the get_list_statuses tool: list the stages of a
// list's status attribute.
func GetListStatuses(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name: "get_list_statuses",
			Description: "List the statuses of a list's status attribute: label, opaque status ID, " +
				"and archived flag. Attio filters status attributes by ID, not label.",
			Annotations: &mcp.ToolAnnotations{Title: "Get List Statuses"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"list_id": map[string]any{
						"type":        "string",
						"description": "List ID or slug",
					},
					"attribute": map[string]any{
						"type":        "string",
						"description": "Status attribute slug (default 'stage')",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
				"required": []string{"list_id"},
			},
		},
		Group: GroupDiscovery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			listID, err := ReadString(input, "list_id", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			attribute := ReadStringDefault(input, "attribute", "stage")
			statuses, err := deps.client(input).ListStatuses(ctx, listID, attribute)
			if err != nil {
				return Failure(err), nil
			}
			return optionsResult(attribute, statuses), nil
		},
	}
}

func optionsResult(attribute string, options []attio.SelectOption) *Result {
	return OKf(map[string]any{
		"attribute": attribute,
		"options":   options,
		"count":     len(options),
	}, "%d options for %q", len(options), attribute)
}

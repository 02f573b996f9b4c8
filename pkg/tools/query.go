package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/attio-mcp/pkg/attio"
)

var filterProperty = map[string]any{
	"type": "object",
	"description": "Filter expression: attribute slug to {operator: value} constraints, " +
		"combined with AND. Operators: eq, ne, gt, lt, gte, lte, contains. " +
		"Status/select values may be labels; they are resolved to option IDs automatically.",
	"additionalProperties": map[string]any{
		"type":                 "object",
		"additionalProperties": true,
	},
}

// QueryRecords builds the query_records tool: translate the filter, run the
// query, unwrap every returned value.
func QueryRecords(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name: "query_records",
			Description: "Query records of an Attio object type (e.g. people, companies, deals) " +
				"with typed filters, returning flattened attribute values.",
			Annotations: &mcp.ToolAnnotations{Title: "Query Records"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"object_type": map[string]any{
						"type":        "string",
						"description": "Object slug, e.g. 'people' or 'companies'",
					},
					"filter": filterProperty,
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum records to return (1-100, default 25)",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
				"required": []string{"object_type"},
			},
		},
		Group: GroupQuery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			objectType, err := ReadString(input, "object_type", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			src := deps.client(input).Object(objectType)
			return runQuery(ctx, src, input)
		},
	}
}

// QueryListEntries builds the query_list_entries tool, the same pipeline
// pointed at a list's entries.
func QueryListEntries(deps *Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name: "query_list_entries",
			Description: "Query entries of an Attio list with typed filters, returning flattened " +
				"entry values. Status attributes filter by stage label or ID.",
			Annotations: &mcp.ToolAnnotations{Title: "Query List Entries"},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"list_id": map[string]any{
						"type":        "string",
						"description": "List ID or slug",
					},
					"filter": filterProperty,
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum entries to return (1-100, default 25)",
					},
					"api_key": map[string]any{
						"type":        "string",
						"description": "Optional override credential for this call",
					},
				},
				"required": []string{"list_id"},
			},
		},
		Group: GroupQuery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			listID, err := ReadString(input, "list_id", true)
			if err != nil {
				return Failuref("", "%s", err), nil
			}
			src := deps.client(input).List(listID)
			return runQuery(ctx, src, input)
		},
	}
}

// runQuery is the shared translate-execute-project pipeline.
func runQuery(ctx context.Context, src attio.Source, input map[string]any) (*Result, error) {
	rawFilter, err := ReadMap(input, "filter", false)
	if err != nil {
		return Failuref("", "%s", err), nil
	}
	filter, err := parseFilter(rawFilter)
	if err != nil {
		return Failuref("", "%s", err), nil
	}
	limit := ReadIntDefault(input, "limit", 25)

	schema, err := src.Schema(ctx)
	if err != nil {
		return Failure(err), nil
	}
	wire, err := attio.NewTranslator(src).TranslateUsing(ctx, schema, filter, limit)
	if err != nil {
		return Failure(err), nil
	}
	raw, err := src.Query(ctx, wire)
	if err != nil {
		return Failure(err), nil
	}

	records := make([]*attio.Record, 0, len(raw))
	for record, err := range attio.Project(schema, raw) {
		if err != nil {
			return Failure(err), nil
		}
		records = append(records, record)
	}
	return OKf(map[string]any{
		"records": records,
		"count":   len(records),
	}, "found %d records", len(records)), nil
}

// parseFilter shapes the caller's raw filter object into a FilterExpression.
func parseFilter(raw map[string]any) (attio.FilterExpression, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	filter := make(attio.FilterExpression, len(raw))
	for attribute, constraints := range raw {
		m, ok := constraints.(map[string]any)
		if !ok {
			return nil, &attio.MalformedValueError{
				Attribute: attribute,
				Value:     constraints,
				Reason:    "each filter entry must be an object of {operator: value}",
			}
		}
		filter[attribute] = m
	}
	return filter, nil
}

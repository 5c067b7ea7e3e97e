package monitors

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/esumerfd/datadog-mcp/pkg/api"
)

func getMonitorTool() api.ServerTool {
	return api.ServerTool{
		Tool: api.Tool{
			Name:        "get_monitor",
			Description: "Get details for a specific Datadog monitor by ID.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"monitor_id": {
						Type:        "integer",
						Description: "The numeric ID of the monitor to fetch.",
					},
					"format": {
						Type:        "string",
						Description: "Output format",
						Enum:        []any{"table", "json"},
						Default:     json.RawMessage(`"table"`),
					},
				},
				Required:             []string{"monitor_id"},
				AdditionalProperties: falseSchema(),
			},
		},
		Handler: getMonitor,
	}
}

func getMonitor(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	monitorID, ok := params.OptionalInt("monitor_id")
	if !ok {
		return api.NewToolCallError("Error: monitor_id is required"), nil
	}
	format := params.GetString("format", "table")

	monitor, err := params.Monitors.FetchMonitor(params, monitorID)
	if err != nil {
		return errorResult(err), nil
	}

	if format == "json" {
		data, err := json.MarshalIndent(monitor, "", "  ")
		if err != nil {
			return errorResult(fmt.Errorf("failed to encode monitor: %w", err)), nil
		}
		return api.NewToolCallResult(string(data)), nil
	}

	return api.NewToolCallResult(formatMonitorTable(monitorID, monitor)), nil
}

// formatMonitorTable renders the fixed-label details block
func formatMonitorTable(id int, monitor map[string]any) string {
	var b strings.Builder
	b.WriteString("Monitor Details\n")
	b.WriteString(strings.Repeat("=", 15) + "\n\n")
	fmt.Fprintf(&b, "ID:       %d\n", id)
	fmt.Fprintf(&b, "Name:     %s\n", stringField(monitor, "name", "Unnamed"))
	fmt.Fprintf(&b, "Type:     %s\n", stringField(monitor, "type", "unknown"))
	fmt.Fprintf(&b, "State:    %s\n", stringField(monitor, "overall_state", "unknown"))
	fmt.Fprintf(&b, "Priority: %s\n", formatPriority(monitor["priority"]))
	fmt.Fprintf(&b, "Tags:     %s\n", formatTags(stringSliceField(monitor, "tags")))
	fmt.Fprintf(&b, "Query:    %s\n", stringField(monitor, "query", "N/A"))
	fmt.Fprintf(&b, "Message:  %s\n", formatMessage(stringField(monitor, "message", "")))
	return b.String()
}

package monitors

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/esumerfd/datadog-mcp/pkg/api"
)

func monitorEditTool() api.ServerTool {
	return api.ServerTool{
		Tool: api.Tool{
			Name:        "monitor_edit",
			Description: "Update basic fields of an existing Datadog monitor. At least one update field must be provided.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"monitor_id": {
						Type:        "integer",
						Description: "The numeric ID of the monitor to update.",
					},
					"name": {
						Type:        "string",
						Description: "New name for the monitor.",
					},
					"message": {
						Type:        "string",
						Description: "New message/description for the monitor.",
					},
					"tags": {
						Type:        "array",
						Items:       &jsonschema.Schema{Type: "string"},
						Description: "New list of tags for the monitor.",
					},
					"priority": {
						Type:        "integer",
						Minimum:     f64(1),
						Maximum:     f64(5),
						Description: "New priority level (1-5) for the monitor.",
					},
				},
				Required:             []string{"monitor_id"},
				AdditionalProperties: falseSchema(),
			},
		},
		Handler: monitorEdit,
	}
}

func monitorEdit(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	monitorID, ok := params.OptionalInt("monitor_id")
	if !ok {
		return api.NewToolCallError("Error: monitor_id is required"), nil
	}

	var patch api.MonitorPatch
	if priority, ok := params.OptionalInt("priority"); ok {
		if priority < 1 || priority > 5 {
			return api.NewToolCallError("Invalid priority: must be 1-5"), nil
		}
		patch.Priority = &priority
	}
	if name, ok := params.OptionalString("name"); ok {
		patch.Name = &name
	}
	if message, ok := params.OptionalString("message"); ok {
		patch.Message = &message
	}
	if tags, ok := params.OptionalStringSlice("tags"); ok {
		patch.Tags = &tags
	}

	if patch.IsEmpty() {
		return api.NewToolCallError("At least one field to update is required"), nil
	}

	if _, err := params.Monitors.UpdateMonitor(params, monitorID, patch); err != nil {
		return errorResult(err), nil
	}

	return api.NewToolCallResult(fmt.Sprintf("Monitor %d updated successfully", monitorID)), nil
}

package monitors

import (
	"github.com/esumerfd/datadog-mcp/pkg/api"
	"github.com/esumerfd/datadog-mcp/pkg/toolsets"
)

func init() {
	toolsets.Register(&MonitorsToolset{})
}

type MonitorsToolset struct{}

func (t *MonitorsToolset) Name() string {
	return "monitors"
}

func (t *MonitorsToolset) Description() string {
	return "Tools for reading and editing Datadog monitors"
}

func (t *MonitorsToolset) GetTools() []api.ServerTool {
	return []api.ServerTool{
		getMonitorTool(),
		monitorEditTool(),
	}
}

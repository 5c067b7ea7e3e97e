package api

import "context"

// MonitorsClient abstracts access to the Datadog monitors API
type MonitorsClient interface {
	// FetchMonitor retrieves a single monitor by ID
	FetchMonitor(ctx context.Context, id int) (map[string]any, error)

	// UpdateMonitor applies the patch to a monitor. The remote API
	// requires a full record on write, so the implementation reads the
	// current record first and sends the merged result.
	UpdateMonitor(ctx context.Context, id int, patch MonitorPatch) (map[string]any, error)
}

// MonitorPatch holds the editable monitor fields a caller wants
// overwritten. Nil means the field was not provided; a pointer to the
// zero value (empty string, empty slice) is a provided value.
type MonitorPatch struct {
	Name     *string
	Message  *string
	Tags     *[]string
	Priority *int
}

// IsEmpty reports whether no field was provided
func (p MonitorPatch) IsEmpty() bool {
	return p.Name == nil && p.Message == nil && p.Tags == nil && p.Priority == nil
}

// Fields maps the provided fields to their wire names and values
func (p MonitorPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Message != nil {
		fields["message"] = *p.Message
	}
	if p.Tags != nil {
		fields["tags"] = *p.Tags
	}
	if p.Priority != nil {
		fields["priority"] = *p.Priority
	}
	return fields
}

package monitors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/esumerfd/datadog-mcp/pkg/api"
	"github.com/esumerfd/datadog-mcp/pkg/datadog"
)

const (
	maxTagsShown     = 5
	maxMessageLength = 100
)

// errorResult converts a remote-client failure into the user-facing
// result both tools share: 404 and 403 get fixed texts, everything
// else surfaces the underlying message.
func errorResult(err error) *api.ToolCallResult {
	var statusErr *datadog.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Kind() {
		case datadog.ErrorNotFound:
			return api.NewToolCallError("Monitor not found")
		case datadog.ErrorPermissionDenied:
			return api.NewToolCallError("Permission denied")
		}
	}
	return api.NewToolCallError(fmt.Sprintf("Error: %v", err))
}

// stringField extracts a string attribute from a monitor record. The
// default applies only when the attribute is absent or not a string;
// an explicitly empty string passes through.
func stringField(record map[string]any, key, defaultValue string) string {
	if s, ok := record[key].(string); ok {
		return s
	}
	return defaultValue
}

// stringSliceField extracts a string-array attribute from a monitor record
func stringSliceField(record map[string]any, key string) []string {
	raw, ok := record[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// formatPriority renders the priority attribute, "N/A" when absent or null
func formatPriority(v any) string {
	switch p := v.(type) {
	case nil:
		return "N/A"
	case float64:
		return strconv.Itoa(int(p))
	case int:
		return strconv.Itoa(p)
	default:
		return fmt.Sprintf("%v", p)
	}
}

// formatTags joins the first 5 tags and notes how many were omitted
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	shown := tags
	if len(tags) > maxTagsShown {
		shown = tags[:maxTagsShown]
	}
	out := strings.Join(shown, ", ")
	if len(tags) > maxTagsShown {
		out += fmt.Sprintf(" (+%d more)", len(tags)-maxTagsShown)
	}
	return out
}

// formatMessage collapses newlines and truncates the message to 100
// characters so it fits on one table line
func formatMessage(message string) string {
	if message == "" {
		return "None"
	}
	message = strings.ReplaceAll(message, "\n", " ")
	if runes := []rune(message); len(runes) > maxMessageLength {
		message = string(runes[:maxMessageLength]) + "..."
	}
	return message
}

// falseSchema matches nothing; used to reject unknown input fields
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

func f64(v float64) *float64 {
	return &v
}

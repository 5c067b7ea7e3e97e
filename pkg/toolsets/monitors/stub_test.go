package monitors

import (
	"context"

	"go.uber.org/zap"

	"github.com/esumerfd/datadog-mcp/pkg/api"
)

// fakeRequest implements api.ToolCallRequest for handler tests
type fakeRequest struct {
	args map[string]any
}

func (f *fakeRequest) GetArguments() map[string]any {
	return f.args
}

// stubClient is a canned api.MonitorsClient recording what it was asked
type stubClient struct {
	monitor   map[string]any
	fetchErr  error
	updateErr error

	fetchCalls  int
	updateCalls int
	lastID      int
	lastPatch   api.MonitorPatch
}

func (s *stubClient) FetchMonitor(ctx context.Context, id int) (map[string]any, error) {
	s.fetchCalls++
	s.lastID = id
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.monitor, nil
}

func (s *stubClient) UpdateMonitor(ctx context.Context, id int, patch api.MonitorPatch) (map[string]any, error) {
	s.updateCalls++
	s.lastID = id
	s.lastPatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.monitor, nil
}

func callParams(client api.MonitorsClient, args map[string]any) api.ToolHandlerParams {
	return api.ToolHandlerParams{
		Context:         context.Background(),
		Monitors:        client,
		Logger:          zap.NewNop(),
		ToolCallRequest: &fakeRequest{args: args},
	}
}

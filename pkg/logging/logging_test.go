package logging

import (
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "defaults", opts: Options{}},
		{name: "debug level", opts: Options{Level: "debug"}},
		{name: "with file sink", opts: Options{Level: "info", Filename: filepath.Join(t.TempDir(), "mcp.log")}},
		{name: "invalid level", opts: Options{Level: "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("New() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			logger.Info("probe")
			logger.Sync()
		})
	}
}

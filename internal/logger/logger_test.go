package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		json    bool
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "info_console", level: "info", enabled: zapcore.InfoLevel},
		{name: "debug_json", level: "debug", json: true, enabled: zapcore.DebugLevel},
		{name: "warn_upper_case", level: "WARN", enabled: zapcore.WarnLevel},
		{name: "unknown_level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.json)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.enabled-1))
		})
	}
}

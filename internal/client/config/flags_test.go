package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://localhost:8080", "-t", "5s", "-d", "x.db", "-w", "img", "-l=-6.2,106.8", "-s", "25", "-log-level", "debug", "-log-backend", "zap"},
			expected: &Config{
				APIBaseURL:   "http://localhost:8080",
				HTTPTimeout:  5 * time.Second,
				DatabasePath: "x.db",
				WorkDir:      "img",
				Location:     "-6.2,106.8",
				FeedPageSize: 25,
				LogLevel:     "debug",
				LogBackend:   "zap",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "conf.json", "-env", ".env", "-a", "http://x"},
			expected: &Config{APIBaseURL: "http://x"},
		},
		{name: "bad duration", args: []string{"-t", "abc"}, wantErr: true},
		{name: "bad page size", args: []string{"-s", "many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

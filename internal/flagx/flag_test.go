package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cfgFlags := []string{"-c", "-config"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "storyshare.json", "-a", "http://localhost:8080"},
			allowed: cfgFlags,
			want:    []string{"-c", "storyshare.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-d", "x.db"},
			allowed: cfgFlags,
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "negative coordinate needs equals form",
			args:    []string{"-l", "-6.2,106.8", "-l=-6.2,106.8"},
			allowed: []string{"-l"},
			want:    []string{"-l", "-l=-6.2,106.8"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "-y=2", "upload"},
			allowed: cfgFlags,
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-s"},
			allowed: []string{"-s"},
			want:    []string{"-s"},
		},
		{
			name:    "order and repeats preserved",
			args:    []string{"-w", "img", "-t", "5s", "-w", "img2", "-env", ".env"},
			allowed: []string{"-w", "-t"},
			want:    []string{"-w", "img", "-t", "5s", "-w", "img2"},
		},
		{
			name:    "nil args",
			allowed: cfgFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigFilePath([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigFilePath([]string{"-config", "/path/long.json"}))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigFilePath([]string{"-x", "1", "-y", "2"}))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigFilePath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}

func TestEnvFilePath(t *testing.T) {
	assert.Equal(t, "prod.env", EnvFilePath([]string{"-a", "http://x", "-env", "prod.env"}))
	assert.Empty(t, EnvFilePath([]string{"-c", "conf.json"}))
}

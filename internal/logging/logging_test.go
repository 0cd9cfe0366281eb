package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "default config",
			cfg:  Config{Level: "INFO"},
		},
		{
			name: "debug level",
			cfg:  Config{Level: "DEBUG"},
		},
		{
			name: "structured JSON",
			cfg:  Config{Level: "INFO", Structured: true, StructuredFormat: "json"},
		},
		{
			name: "structured text",
			cfg:  Config{Level: "INFO", Structured: true, StructuredFormat: "keyvalue"},
		},
		{
			name: "with extra fields",
			cfg: Config{
				Level:       "INFO",
				ExtraFields: map[string]string{"site": "test-lab", "bridge_id": "dev-1"},
			},
		},
		{
			name: "with PID",
			cfg:  Config{Level: "INFO", IncludePID: true},
		},
		{
			name: "with component",
			cfg:  Config{Level: "INFO", Component: "mdnsbridged"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Configure(tt.cfg)
			require.NotNil(t, logger)
		})
	}
}

func TestConfigure_JSONOutputCarriesComponentAndExtraFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{
		Level:            "INFO",
		Structured:       true,
		StructuredFormat: "json",
		Component:        "mdnsbridged",
		ExtraFields:      map[string]string{"site": "test-lab"},
		Output:           &buf,
	}).Info("listener starting", "addr", "224.0.0.251:5353")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "mdnsbridged", record["component"])
	assert.Equal(t, "test-lab", record["site"])
	assert.Equal(t, "224.0.0.251:5353", record["addr"])
	assert.Equal(t, "listener starting", record["msg"])
}

func TestConfigure_ComponentOmittedWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{
		Level:            "INFO",
		Structured:       true,
		StructuredFormat: "json",
		Output:           &buf,
	}).Info("no component set")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	_, hasComponent := record["component"]
	assert.False(t, hasComponent)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DEBUG", "DEBUG"},
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"info", "INFO"},
		{"WARN", "WARN"},
		{"warn", "WARN"},
		{"WARNING", "WARN"},
		{"ERROR", "ERROR"},
		{"error", "ERROR"},
		{"invalid", "INFO"}, // default
		{"", "INFO"},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			assert.Equal(t, tt.want, level.String())
		})
	}
}

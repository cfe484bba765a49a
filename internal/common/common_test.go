package common

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&LoggingOpts{JSON: true, Service: "filedrop", Version: "v1", Output: &buf})

	log.Debug("hidden")
	log.Info("hello", "key", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "filedrop", line["service"])
	assert.Equal(t, "v1", line["version"])
	assert.Equal(t, "abc", line["key"])
}

func TestSetupLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&LoggingOpts{Debug: true, Output: &buf})

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "service=")
}

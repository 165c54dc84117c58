package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := setup(&buf, "warn", FormatJSON, "")
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("component", "publisher").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "publisher", entry["component"])
	assert.Equal(t, "shown", entry["message"])
}

func TestSetupConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := setup(&buf, "debug", FormatConsole, "")
	require.NoError(t, err)

	logger.Debug().Msg("hello console")
	assert.Contains(t, buf.String(), "hello console")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "complaintdesk.log")
	var buf bytes.Buffer
	logger, closer, err := setup(&buf, "info", FormatJSON, path)
	require.NoError(t, err)

	logger.Info().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, buf.String(), "to file")
}

func TestSetupRejectsBadInput(t *testing.T) {
	_, _, err := setup(&bytes.Buffer{}, "loud", FormatJSON, "")
	assert.Error(t, err)

	_, _, err = setup(&bytes.Buffer{}, "info", "xml", "")
	assert.Error(t, err)
}

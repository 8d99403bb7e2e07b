package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	logger, closer, err := Setup("debug", "text", "")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.Level)
	assert.Equal(t, os.Stderr, logger.Out)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestSetupJSON(t *testing.T) {
	logger, closer, err := Setup("warn", "JSON", "")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.WarnLevel, logger.Level)
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestSetupInvalid(t *testing.T) {
	_, _, err := Setup("loud", "text", "")
	assert.Error(t, err)

	_, _, err = Setup("info", "xml", "")
	assert.Error(t, err)
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merchdash.log")
	logger, closer, err := Setup("info", "json", path)
	require.NoError(t, err)

	logger.WithField("endpoint", "/merchants").Info("request finished")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"loglevel":"info"`)
	assert.Contains(t, string(data), `"endpoint":"/merchants"`)
}

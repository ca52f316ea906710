package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdpp/internal/logging"
)

func TestParseLevel(t *testing.T) {
	l, err := logging.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	lg, err := logging.New(&buf, "info", "json")
	require.NoError(t, err)
	lg.Debug("hidden")
	lg.Info("shown", "k", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"k":2`)

	buf.Reset()
	lg, err = logging.New(&buf, "warn", "text")
	require.NoError(t, err)
	lg.Warn("careful")
	assert.Contains(t, buf.String(), "msg=careful")

	_, err = logging.New(&buf, "info", "xml")
	assert.ErrorIs(t, err, logging.ErrUnknownFormat)
}

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithoutDebug(t *testing.T) {
	require.NoError(t, Setup(false))
	t.Cleanup(func() { _ = Close() })

	assert.False(t, DebugEnabled())
	assert.Nil(t, logFile, "no log file is opened unless debugging")
	assert.NotPanics(t, func() { Printf("dropped %d", 1) })
	assert.NoError(t, Close())
}

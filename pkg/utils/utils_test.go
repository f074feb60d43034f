package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFingerprint(t *testing.T) {
	assert.Len(t, Fingerprint("0400 000 000"), 12)
	assert.Equal(t, Fingerprint("0400 000 000"), Fingerprint("0400000000"))
	assert.Equal(t, Fingerprint("Jane@Example.com"), Fingerprint("jane@example.com"))
	assert.NotEqual(t, Fingerprint("0400000000"), Fingerprint("0400000001"))
	assert.Empty(t, Fingerprint("   "))
}

func TestNewLogger_Levels(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("bogus")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

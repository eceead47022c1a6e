package logging

import (
	"errors"
	"testing"

	"github.com/kevin07696/unit-client/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAdapter_ConvertsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Info("payment created", ports.String("payment_id", "42"), ports.Int("amount", 500))
	logger.Error("call failed", ports.Err(errors.New("boom")))
	logger.Debug("debug line")
	logger.Warn("no idempotency key", ports.Bool("book", true))

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, "payment created", entries[0].Message)
	assert.Equal(t, "42", entries[0].ContextMap()["payment_id"])
	assert.EqualValues(t, 500, entries[0].ContextMap()["amount"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Equal(t, true, entries[3].ContextMap()["book"])
}

func TestNewZapLoggerFromLevel(t *testing.T) {
	logger, err := NewZapLoggerFromLevel("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Zap().Core().Enabled(zapcore.WarnLevel))

	_, err = NewZapLoggerFromLevel("loud", false)
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type syncBuffer struct {
	bytes.Buffer
	syncs int
}

func (b *syncBuffer) Sync() error {
	b.syncs++
	return nil
}

func TestExitCodeFlushesLogger(t *testing.T) {
	buf := &syncBuffer{}
	logger := zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), buf, zap.InfoLevel))

	assert.Equal(t, 1, exitCode(logger, errors.New("listen tcp :8080: address already in use")))
	assert.Contains(t, buf.String(), "server stopped")
	assert.Contains(t, buf.String(), "address already in use")
	assert.Equal(t, 1, buf.syncs)

	assert.Equal(t, 0, exitCode(logger, nil))
	assert.Equal(t, 2, buf.syncs)
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	log := Noop()
	assert.NotPanics(t, func() {
		log.Debug("debug")
		log.Info("info", zap.String("k", "v"))
		log.Warn("warn")
		log.Error("error")
		log.With(zap.String("scope", "test")).Info("scoped")
	})
}

func TestNewReturnsUsableLogger(t *testing.T) {
	log := New(false)
	assert.NotNil(t, log)
	assert.NotPanics(t, func() {
		log.Info("scan started", zap.Int("files", 3))
	})
}

package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestNew_WritesToConfiguredPath(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/out.log"
	l, err := logger.New(logger.Config{Level: "debug", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.With(logger.String("service", "comment-tagger")).Info("hello",
		logger.CommentID("c1"),
		logger.Error(errors.New("boom")),
	)
	_ = l.Sync()
}

func TestNop_IsSafe(t *testing.T) {
	t.Parallel()

	l := logger.NewNop()
	l.Debug("d")
	l.Fatal("does not exit")
	assert.Equal(t, l, l.With(logger.Int("n", 1)))
	assert.NoError(t, l.Sync())
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{OutputPaths: []string{t.TempDir() + "/ctx.log"}})
	require.NoError(t, err)

	ctx := logger.WithContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
	assert.NotNil(t, logger.FromContext(context.Background()))
}

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SHEETD_ADDR", "")
		t.Setenv("SHEETD_LOG_LEVEL", "")
		t.Setenv(gin.EnvGinMode, "")

		assert.Equal(t, Config{
			ListenAddr: DefaultListenAddr,
			LogLevel:   slog.LevelInfo,
			GinMode:    gin.ReleaseMode,
		}, LoadConfig())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("SHEETD_ADDR", "127.0.0.1:9000")
		t.Setenv("SHEETD_LOG_LEVEL", "debug")
		t.Setenv(gin.EnvGinMode, gin.DebugMode)

		assert.Equal(t, Config{
			ListenAddr: "127.0.0.1:9000",
			LogLevel:   slog.LevelDebug,
			GinMode:    gin.DebugMode,
		}, LoadConfig())
	})
}

func TestRunApp(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	config := Config{ListenAddr: "127.0.0.1:0", LogLevel: slog.LevelInfo, GinMode: gin.TestMode}

	t.Run("stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- RunApp(ctx, config, logger)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * shutdownTimeout):
			t.Fatal("RunApp did not return after cancel")
		}
	})

	t.Run("fail", func(t *testing.T) {
		bad := config
		bad.ListenAddr = "no-port"

		err := RunApp(context.Background(), bad, logger)
		assert.Error(t, err)
	})
}

func TestHandleExitError(t *testing.T) {
	var errStream bytes.Buffer

	assert.Equal(t, 0, HandleExitError(&errStream, nil))
	assert.Empty(t, errStream.String())

	assert.Equal(t, ExitCodeMainError, HandleExitError(&errStream, errors.New("boom")))
	assert.Equal(t, "boom\n", errStream.String())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alexsander-ggo/Exsel/packages/server"
	"github.com/Alexsander-ggo/Exsel/packages/spreadsheet"
)

const ExitCodeMainError = 1

const DefaultListenAddr = ":8080"

const shutdownTimeout = 5 * time.Second

type Config struct {
	ListenAddr string
	LogLevel   slog.Level
	GinMode    string
}

func LoadConfig() Config {
	config := Config{
		ListenAddr: os.Getenv("SHEETD_ADDR"),
		LogLevel:   server.ParseLevel(os.Getenv("SHEETD_LOG_LEVEL")),
		GinMode:    os.Getenv(gin.EnvGinMode),
	}
	if config.ListenAddr == "" {
		config.ListenAddr = DefaultListenAddr
	}
	if config.GinMode == "" {
		config.GinMode = gin.ReleaseMode
	}
	return config
}

func RunApp(ctx context.Context, config Config, logger *slog.Logger) error {
	gin.SetMode(config.GinMode)

	controller := server.NewApiController(spreadsheet.NewSheet(), logger)
	httpServer := &http.Server{
		Addr:    config.ListenAddr,
		Handler: server.SetupRouter(controller, logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", config.ListenAddr))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}
	return 0
}

func main() {
	config := LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := RunApp(ctx, config, logger)
	stop()
	os.Exit(HandleExitError(os.Stderr, err))
}

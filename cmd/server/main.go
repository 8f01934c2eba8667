package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"uigen-bridge/internal/di"
	"uigen-bridge/internal/infrastructure/env"
	"uigen-bridge/internal/infrastructure/httpapi"
)

const serviceName = "uigen-bridge"

func main() {
	envService := env.NewEnvService()

	cfg := di.Config{
		AppEnv:          envService.GetWithDefault("APP_ENV", "dev"),
		TargetURL:       envService.GetWithDefault("GENERATOR_URL", "https://v0.dev"),
		PromptSelector:  envService.GetWithDefault("GENERATOR_PROMPT_SELECTOR", "textarea"),
		Headless:        envService.GetBool("BROWSER_HEADLESS", true),
		SessionFile:     envService.GetWithDefault("SESSION_FILE", "session.json"),
		DebugDir:        envService.GetWithDefault("DEBUG_DIR", "log"),
		PollDeadline:    time.Duration(envService.GetInt("POLL_DEADLINE_SECONDS", 180)) * time.Second,
		PollInterval:    time.Duration(envService.GetInt("POLL_INTERVAL_SECONDS", 3)) * time.Second,
		ExtractStrategy: envService.GetWithDefault("EXTRACT_STRATEGY", "clipboard"),
		ExtractAttempts: envService.GetInt("EXTRACT_ATTEMPTS", 5),
		ExtractDelay:    time.Duration(envService.GetInt("EXTRACT_DELAY_SECONDS", 2)) * time.Second,
	}

	// The remote automation backend needs both secrets; set
	// BROWSER_REMOTE=false to drive a locally launched browser instead.
	if envService.GetBool("BROWSER_REMOTE", true) {
		apiKey := envService.MustGet("BROWSERBASE_API_KEY")
		projectID := envService.MustGet("BROWSERBASE_PROJECT_ID")
		cfg.ControlURL = fmt.Sprintf("wss://connect.browserbase.com?apiKey=%s&projectId=%s", apiKey, projectID)
	}

	container, err := di.NewContainer(envService, cfg)
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer container.Close()

	handler := httpapi.NewHandler(container.Executor, container.Logger)
	router := httpapi.NewRouter(handler, serviceName)

	preferred := envService.GetInt("PORT", 3000)
	listener, port, err := httpapi.Listen(preferred, 10, container.Logger)
	if err != nil {
		container.Logger.Error("No port available", "error", err)
		os.Exit(1)
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Printf("%s listening on http://localhost:%d\n", serviceName, port)
	container.Logger.Info("Server started", "port", port, "target", cfg.TargetURL)

	server := &http.Server{Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	container.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Warn("Shutdown incomplete", "error", err)
	}
}

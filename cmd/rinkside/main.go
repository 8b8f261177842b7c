package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fortuna/rinkside/internal/api/rest"
	"github.com/fortuna/rinkside/internal/api/websocket"
	"github.com/fortuna/rinkside/internal/cache"
	"github.com/fortuna/rinkside/internal/nhl"
	"github.com/fortuna/rinkside/internal/pipeline"
	"github.com/fortuna/rinkside/internal/season"
)

const (
	serviceName    = "rinkside"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NHL Team Season Dashboard", serviceName, serviceVersion)

	// Load configuration from environment
	config := loadConfig()

	// Initialize the NHL API client, with Redis payload caching when available
	client := nhl.New(config.NHLAPIBase)
	if config.RedisURL != "" {
		payloadCache, err := cache.NewRedisCache(config.RedisURL, config.CacheTTL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v (continuing without payload cache)", err)
		} else {
			defer payloadCache.Close()
			client = client.WithCache(payloadCache)
			log.Println("✓ Connected to Redis payload cache")
		}
	}

	pipe := pipeline.New(client, pipeline.Config{
		TeamAbbrev:   config.TeamAbbrev,
		SeasonID:     config.SeasonID,
		AnchorDate:   config.AnchorDate,
		WindowSize:   config.WindowSize,
		FetchWorkers: config.FetchWorkers,
	})

	svc := season.NewService(pipe, nil)
	log.Printf("✓ Season service ready (team=%s season=%s)", config.TeamAbbrev, config.SeasonID)

	// WebSocket server streams refresh progress to dashboard clients
	wsServer := websocket.NewServer()
	svc.AddReporter(websocket.NewProgressReporter(wsServer.Hub()))
	log.Println("✓ WebSocket progress stream ready")

	// Kick off the initial ingestion in the background so the HTTP
	// surface comes up immediately.
	if err := svc.StartRefresh(context.Background()); err != nil {
		log.Printf("⚠️  Initial refresh not started: %v", err)
	} else {
		log.Println("✓ Initial season refresh started")
	}

	restServer := rest.NewServer(config.HTTPPort, svc, wsServer)
	go func() {
		log.Printf("Starting HTTP server on port %s", config.HTTPPort)
		if err := restServer.Start(); err != nil {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  Dashboard: http://0.0.0.0:%s", config.HTTPPort)
	log.Printf("  Progress:  ws://0.0.0.0:%s/ws/refresh", config.HTTPPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down rinkside gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("rinkside stopped")
}

type Config struct {
	TeamAbbrev   string
	SeasonID     string
	AnchorDate   string
	WindowSize   int
	FetchWorkers int
	NHLAPIBase   string
	RedisURL     string
	CacheTTL     time.Duration
	HTTPPort     string
}

func loadConfig() Config {
	return Config{
		TeamAbbrev:   getEnv("TEAM_ABBREV", "EDM"),
		SeasonID:     getEnv("SEASON_ID", "20232024"),
		AnchorDate:   getEnv("ANCHOR_DATE", "2023-10-11"),
		WindowSize:   getEnvInt("WINDOW_SIZE", 82),
		FetchWorkers: getEnvInt("FETCH_WORKERS", 4),
		NHLAPIBase:   getEnv("NHL_API_BASE", nhl.BaseURL),
		RedisURL:     getEnv("REDIS_URL", ""),
		CacheTTL:     time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, value, defaultValue)
	}
	return defaultValue
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/girify/streetquiz/config"
	"github.com/girify/streetquiz/logger"
	"github.com/girify/streetquiz/monitor"
	"github.com/girify/streetquiz/persistence"
	"github.com/girify/streetquiz/server"
	"github.com/girify/streetquiz/services"
	"github.com/girify/streetquiz/session"
	"github.com/girify/streetquiz/streets"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Load the street pool
	pool, err := streets.LoadPool(cfg.Game.StreetsFile)
	if err != nil {
		logger.Log.Fatalf("Failed to load street pool: %v", err)
	}
	logger.Log.Infof("Loaded %d streets", len(pool))

	// Initialize the durable store
	db, err := persistence.NewGormPostgreSQL(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
	)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Log.Info("Database connection successful.")

	// Initialize the ephemeral session store
	ephemeral, err := persistence.NewRedisStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to redis: %v", err)
	}
	logger.Log.Info("Redis connection successful.")

	mon := monitor.NewMonitor("streetquiz")
	sessions := session.NewService(ephemeral, db, cfg.Game.SessionTTL, cfg.Game.StartTimeout, mon.Metrics())
	leaderboard := services.NewLeaderboardService(db)

	gameServer, err := server.NewGameServer(
		cfg.Server.HTTPAddress,
		cfg.Server.RPCAddress,
		pool,
		sessions,
		leaderboard,
		mon,
		cfg.Game,
	)
	if err != nil {
		logger.Log.Fatalf("Failed to create game server: %v", err)
	}

	// Shut down cleanly on SIGINT/SIGTERM
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		gameServer.Shutdown(ctx)
		_ = ephemeral.Close()
		_ = db.Close()
	}()

	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

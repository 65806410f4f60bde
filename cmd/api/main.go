package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmberStudioApps/studio-booking/internal/cache"
	"github.com/AmberStudioApps/studio-booking/internal/config"
	dbpkg "github.com/AmberStudioApps/studio-booking/internal/db"
	"github.com/AmberStudioApps/studio-booking/internal/logger"
	"github.com/AmberStudioApps/studio-booking/internal/middleware"
	"github.com/AmberStudioApps/studio-booking/internal/reaper"
	"github.com/AmberStudioApps/studio-booking/internal/routes"
)

func main() {
	cfg := config.Load()

	log := logger.Init()
	defer log.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	pendingTTL := time.Duration(cfg.PendingTTLMinutes) * time.Minute
	reaper.New(db, pendingTTL, log).Start(context.Background())

	log.Info("server starting", zap.String("addr", cfg.Addr()))

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

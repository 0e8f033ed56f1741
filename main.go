package main

import (
	"context"
	"log"
	"time"

	"linkbio/config"
	"linkbio/database"
	routes "linkbio/internal/app/http"
	"linkbio/internal/app/http/middleware"
	"linkbio/internal/domain/analytics"
	"linkbio/internal/infra/chat"
	"linkbio/internal/infra/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	logger, err := logging.New(config.LOG_LEVEL)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	database.InitDB()

	if config.CHAT_API_KEY != "" {
		completer, err := chat.NewCompleter(config.CHAT_PROVIDER, config.CHAT_API_KEY, config.CHAT_BASE_URL, config.CHAT_MODEL)
		if err != nil {
			logger.Fatal("chat provider", zap.Error(err))
		}
		chat.Default = completer
		logger.Info("chat enabled", zap.String("provider", config.CHAT_PROVIDER))
	} else {
		logger.Info("chat disabled, CHAT_API_KEY not set")
	}

	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc("@daily", pruneAnalytics); err != nil {
		logger.Fatal("schedule analytics prune", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	if err := r.Run(":" + config.PORT); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func pruneAnalytics() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -config.ANALYTICS_RETENTION_DAYS)
	n, err := analytics.Prune(ctx, database.DB, cutoff)
	if err != nil {
		zap.L().Error("analytics prune failed", zap.Error(err))
		return
	}
	zap.L().Info("analytics pruned", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
}

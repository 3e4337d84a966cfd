package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"meeting-sync/config"
	"meeting-sync/constant"
	webhookHandler "meeting-sync/handler"
	"meeting-sync/pkg/telegram"
	"meeting-sync/pkg/zoom"
	"meeting-sync/repository"
	"meeting-sync/service"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(SetupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.WaitForPostgres(ctx, cfg.DB); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("WaitForPostgres")
	}

	repo := repository.NewRepo(cfg.DB)
	notifier := telegram.NewNotifier(cfg.Telegram)
	zoomClient := zoom.NewClient(cfg.Zoom)
	syncService := service.NewSyncService(repo, zoomClient, notifier)

	deps := webhookHandler.Dependencies{
		Config:   cfg,
		Repo:     repo,
		Sync:     syncService,
		Notifier: notifier,
	}

	r := gin.Default()
	r.Use(requestLogger(ctx))
	addHealth(r)
	r.POST("/webhooks/zoom", webhookHandler.ZoomEvent(deps))
	r.POST("/sync", webhookHandler.ManualSync(deps))
	r.GET("/meetings", webhookHandler.ListMeetings(deps))

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := handler.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

// requestLogger attaches a per-request logger with a request id to the
// request context so handlers can use zerolog.Ctx.
func requestLogger(ctx context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zerolog.Ctx(ctx).With().
			Str("request_id", uuid.NewString()).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

// SetupLogger builds the process logger and returns a context carrying it.
func SetupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}

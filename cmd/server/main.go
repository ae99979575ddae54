package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"mygames/internal/config"
	"mygames/internal/email"
	apphttp "mygames/internal/http"
	"mygames/internal/repository/sqlite"
	"mygames/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	lookupRepo := sqlite.NewLookupRepository(db)
	gameRepo := sqlite.NewGameRepository(db)
	myGameRepo := sqlite.NewMyGameRepository(db)
	tokenRepo := sqlite.NewPasswordResetTokenRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := lookupRepo.Init(ctx); err != nil {
		logger.Fatalf("init lookup repository: %v", err)
	}
	if err := gameRepo.Init(ctx); err != nil {
		logger.Fatalf("init game repository: %v", err)
	}
	if err := myGameRepo.Init(ctx); err != nil {
		logger.Fatalf("init my game repository: %v", err)
	}
	if err := tokenRepo.Init(ctx); err != nil {
		logger.Fatalf("init reset token repository: %v", err)
	}

	userService := service.NewUserService(userRepo, logger)
	tokenService := service.NewTokenService(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	lookupService := service.NewLookupService(lookupRepo)
	gameService := service.NewGameService(gameRepo, lookupRepo)
	myGameService := service.NewMyGameService(myGameRepo, userRepo, gameRepo, lookupRepo)

	mailer := email.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	resetService := service.NewPasswordResetService(tokenRepo, userRepo, mailer, service.PasswordResetConfig{
		AppName:     cfg.App.Name,
		FrontendURL: cfg.App.FrontendURL,
		TokenExpiry: time.Duration(cfg.PasswordReset.TokenExpiryHours) * time.Hour,
	}, logger)

	if cfg.Admin.Enabled {
		if err := userService.BootstrapAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Fatalf("bootstrap admin: %v", err)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.PasswordReset.CleanupCron, func() {
		if _, err := resetService.PurgeExpired(context.Background()); err != nil {
			logger.Warnf("purge expired reset tokens: %v", err)
		}
	}); err != nil {
		logger.Fatalf("schedule reset token cleanup: %v", err)
	}
	scheduler.Start()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		tokenService,
		resetService,
		myGameService,
		gameService,
		lookupService,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	<-scheduler.Stop().Done()

	logger.Info("bye")
}

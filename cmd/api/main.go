package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dealspot/internal/core/auth"
	"dealspot/internal/core/cache"
	"dealspot/internal/core/config"
	"dealspot/internal/core/database"
	"dealspot/internal/core/logger"
	"dealspot/internal/core/server"
	"dealspot/internal/domain"
	"dealspot/internal/repo"
	"dealspot/internal/service"
	"dealspot/internal/transport/http/handler"
	"dealspot/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Deal{}, &domain.Vote{}, &domain.Comment{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	userRepo := repo.NewUserRepo(db)
	dealRepo := repo.NewDealRepo(db)
	voteRepo := repo.NewVoteRepo(db)
	commentRepo := repo.NewCommentRepo(db)

	authSvc := service.NewAuthService(userRepo, jwter)
	dealSvc := service.NewDealService(dealRepo, commentRepo, voteRepo)
	voteSvc := service.NewVoteService(voteRepo)
	commentSvc := service.NewCommentService(commentRepo, dealRepo)

	if cfg.Cache.Enable {
		rdb := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		dealSvc.WithCache(rdb,
			time.Duration(cfg.Cache.DealTTLSec)*time.Second,
			time.Duration(cfg.Cache.ListTTLSec)*time.Second,
		)
		voteSvc.WithCache(rdb)
		commentSvc.WithCache(rdb)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	r := router.NewAPIEngine(log,
		handler.NewAuthHandler(authSvc, jwter, log),
		handler.NewDealHandler(dealSvc, voteSvc, jwter, log),
		handler.NewCommentHandler(commentSvc, jwter, log),
	)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

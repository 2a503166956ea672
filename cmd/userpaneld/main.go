package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/undiziwa/userpanel/internal/handler"
	"github.com/undiziwa/userpanel/internal/models"
	"github.com/undiziwa/userpanel/internal/repository"
	"github.com/undiziwa/userpanel/internal/service"
	"github.com/undiziwa/userpanel/pkg/config"
	"github.com/undiziwa/userpanel/pkg/database"
	"github.com/undiziwa/userpanel/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	var store service.UserStore
	if cfg.Database.URL != "" {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to database", "error", err)
		}
		defer db.Close()
		store = repository.NewUserRepository(db)
	} else {
		mem := repository.NewMemoryStore()
		seedAdmin(mem)
		store = mem
		logr.Info("no DATABASE_URL configured, using in-memory store")
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	mailer := service.NewLogMailer(logr)
	authSvc := service.NewAuthService(store, validate, logr, cfg.JWT)
	userSvc := service.NewUserService(store, mailer, validate, logr, cfg.Mail.ResetBaseURL)

	r := handler.Router(cfg, logr, authSvc, userSvc, metrics)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// seedAdmin gives a fresh in-memory store one super admin so the panel
// can log in. Password: admin.
func seedAdmin(store *repository.MemoryStore) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	store.Seed([]models.User{{
		Username:     "admin",
		FullName:     "Administrator",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}})
}

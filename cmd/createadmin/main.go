package main

import (
	"context"
	"flag"
	stdLog "log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/avoronov/library-catalog/config"
	"github.com/avoronov/library-catalog/internal/model"
	"github.com/avoronov/library-catalog/internal/repository"
	"github.com/avoronov/library-catalog/internal/service/auth"
	"github.com/avoronov/library-catalog/migrations"
	"github.com/avoronov/library-catalog/pkg/logger"
	"github.com/avoronov/library-catalog/pkg/postgres"
)

// Administrative bootstrap: creates a staff/superuser account, the only
// path that may set role flags.
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	username := flag.String("username", "", "admin username (optional)")
	flag.Parse()

	if *email == "" || *password == "" {
		stdLog.Fatal("email and password are required")
	}

	if err := godotenv.Load(); err != nil {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig()
	log := logger.NewLogger(cfg.Log, "createadmin")

	ctx := context.Background()
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	defer db.Close()

	repo, err := repository.NewUserRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	if err := auth.ValidatePassword(*password); err != nil {
		log.Fatal("weak password", zap.Error(err))
	}
	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("hash password", zap.Error(err))
	}

	admin := model.User{
		Email:        *email,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if *username != "" {
		admin.Username = username
	}

	created, err := repo.Create(ctx, admin)
	if err != nil {
		log.Fatal("create admin", zap.Error(err))
	}
	log.Info("admin created", zap.Int64("id", created.ID), zap.String("email", created.Email))
}

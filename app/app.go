package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/avoronov/library-catalog/config"
	"github.com/avoronov/library-catalog/internal/handler"
	"github.com/avoronov/library-catalog/internal/repository"
	"github.com/avoronov/library-catalog/internal/server"
	"github.com/avoronov/library-catalog/internal/service/auth"
	"github.com/avoronov/library-catalog/internal/service/book"
	"github.com/avoronov/library-catalog/internal/service/user"
	"github.com/avoronov/library-catalog/migrations"
	"github.com/avoronov/library-catalog/pkg/kafka"
	"github.com/avoronov/library-catalog/pkg/logger"
	"github.com/avoronov/library-catalog/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	userRepo, err := repository.NewUserRepository(db, log)
	if err != nil {
		log.Fatal("user repo", zap.Error(err))
	}
	bookRepo, err := repository.NewBookRepository(db, log)
	if err != nil {
		log.Fatal("book repo", zap.Error(err))
	}

	var producer sarama.SyncProducer
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
	}

	authSvc := auth.NewService(userRepo, cfg.JWT, log)
	userSvc := user.NewService(userRepo, cfg.Media, log)
	bookSvc := book.NewService(bookRepo, producer, log)

	h := handler.New(authSvc, userSvc, bookSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g := new(errgroup.Group)
	g.Go(srv.Run)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = g.Wait(); err != nil {
		log.Error("server run", zap.Error(err))
	}
	if producer != nil {
		if err = producer.Close(); err != nil {
			log.Error("producer close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

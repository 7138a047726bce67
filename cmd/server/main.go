package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todolist/internal/auth"
	"todolist/internal/config"
	"todolist/internal/db"
	"todolist/internal/httpserver"
	"todolist/internal/logger"
	"todolist/repository"
)

func main() {
	log := logger.New("todolist")

	cfg := config.Load()
	log.Infof("configuration loaded: %v", cfg)

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Fatal("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.WithError(err).Warn("close db")
		}
	}()

	users := repository.NewUserRepository(d)
	sessions := repository.NewSessionRepository(d)
	tasks := repository.NewTaskRepository(d)

	creds := auth.NewCredentialService(users)
	sessionMgr := auth.NewSessionManager(sessions, users)

	e := httpserver.New(creds, sessionMgr, tasks, log)
	shutdown, err := httpserver.Start(cfg, e, log)
	if err != nil {
		log.WithError(err).Fatal("start http server")
	}
	log.Infof("http server listening on %s", cfg.HTTP.Address)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

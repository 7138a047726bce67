package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"todolist/internal/auth"
	"todolist/internal/config"
	"todolist/repository"
)

// Server bundles the dependencies the route handlers need.
type Server struct {
	creds    *auth.CredentialService
	sessions *auth.SessionManager
	tasks    repository.TaskRepositoryI
	log      *logrus.Logger
}

// New builds the echo router with all routes and middleware registered.
// The returned echo instance is ready to serve (or to be driven directly
// in tests via ServeHTTP).
func New(creds *auth.CredentialService, sessions *auth.SessionManager, tasks repository.TaskRepositoryI, log *logrus.Logger) *echo.Echo {
	s := &Server{creds: creds, sessions: sessions, tasks: tasks, log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newRenderer()

	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	e.Use(s.resolveSession)

	e.GET("/", s.home)
	e.GET("/home", s.home)
	e.GET("/login", s.loginForm)
	e.GET("/register", s.registerForm)
	e.GET("/logout", s.logout)
	e.GET("/tasks", s.tasksPage)

	e.POST("/register", s.register)
	e.POST("/login", s.login)
	e.POST("/add_task", s.addTask)
	e.POST("/mark_complete", s.markComplete)
	e.POST("/mark_incomplete", s.markIncomplete)

	return e
}

// Start begins serving on the configured address and returns a shutdown
// function that drains in-flight requests until ctx expires.
func Start(cfg *config.Config, e *echo.Echo, log *logrus.Logger) (func(context.Context) error, error) {
	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server stopped")
		}
	}()

	return e.Shutdown, nil
}

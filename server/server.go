// Package server wires the HTTP surface: the fiber app, route
// registration, and error rendering.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phreshco/phresh/auth"
	"github.com/phreshco/phresh/store"
)

// Server is the HTTP front of the application.
type Server struct {
	app           *fiber.App
	authenticator *auth.Authenticator
	repos         store.RepositoryManager
	logger        auth.Logger
}

type Option func(*Server)

func WithLogger(logger auth.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(authenticator *auth.Authenticator, repos store.RepositoryManager, opts ...Option) *Server {
	s := &Server{
		authenticator: authenticator,
		repos:         repos,
		logger:        noopLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "phresh",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	s.routes()

	return s
}

// App exposes the underlying fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	ar := api.Group("/auth")
	ar.Post("/register", s.register)
	ar.Post("/login", s.login)
	ar.Post("/logout", s.logout)
	ar.Post("/forgot-password", s.forgotPassword)
	ar.Post("/reset-password", s.resetPassword)
	ar.Post("/request-verify", s.requestVerify)
	ar.Post("/verify", s.verify)

	protected := s.authenticator.Protected()

	users := api.Group("/users")
	users.Get("/me", protected, s.me)

	cln := api.Group("/cleanings", protected)
	cln.Get("/", s.listCleanings)
	cln.Post("/", s.createCleaning)
	cln.Get("/:id", s.getCleaning)
	cln.Put("/:id", s.updateCleaning)
	cln.Delete("/:id", s.deleteCleaning)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

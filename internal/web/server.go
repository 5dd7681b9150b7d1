// Package web serves the shopping list page and its JSON API.
package web

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"vocalcart/internal/application"
)

//go:embed static
var staticFiles embed.FS

type Options struct {
	AllowedOrigins string
	AuthToken      string
	RateLimit      int
	RateWindow     time.Duration
	AccessLog      bool
}

type Server struct {
	app     *fiber.App
	engine  *application.Engine
	limiter *RateLimiter
	logger  *slog.Logger
}

func New(engine *application.Engine, opts Options, logger *slog.Logger) *Server {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 30
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}
	if opts.AllowedOrigins == "" {
		opts.AllowedOrigins = "*"
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			ErrorHandler:          ErrorHandler,
			DisableStartupMessage: true,
			Immutable:             true,
		}),
		engine:  engine,
		limiter: NewRateLimiter(opts.RateLimit, opts.RateWindow),
		logger:  logger,
	}

	s.app.Use(recover.New())
	if opts.AccessLog {
		s.app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Auth-Token",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	s.routes(opts)
	return s
}

func (s *Server) routes(opts Options) {
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api", requireToken(opts.AuthToken))
	limited := s.limiter.Middleware()

	api.Get("/view", s.handleView)
	api.Put("/language", s.handleSetLanguage)

	api.Post("/commands", limited, s.handleCommand)
	api.Post("/suggestions", limited, s.handleAddSuggestion)

	api.Post("/capture/start", s.handleCaptureStart)
	api.Post("/capture/interim", s.handleCaptureInterim)
	api.Post("/capture/stop", limited, s.handleCaptureStop)
	api.Post("/capture/error", s.handleCaptureError)
	api.Post("/capture/unsupported", s.handleCaptureUnsupported)

	api.Post("/items/:id/toggle", s.handleToggle)
	api.Post("/items/:id/quantity", limited, s.handleQuantity)
	api.Delete("/items/:id", limited, s.handleRemove)

	s.app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFiles),
		PathPrefix: "static",
	}))
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP server starting", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

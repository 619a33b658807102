// Package web assembles the HTTP API of the catalog service.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/offering-catalog/catalog-api/internal/config"
	fiberlogger "github.com/offering-catalog/catalog-api/internal/logger/adapter/fiber"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
	"github.com/offering-catalog/catalog-api/internal/web/handler/activity"
	"github.com/offering-catalog/catalog-api/internal/web/handler/admin/stats"
	oidchandler "github.com/offering-catalog/catalog-api/internal/web/handler/auth/oidc"
	"github.com/offering-catalog/catalog-api/internal/web/handler/brand"
	"github.com/offering-catalog/catalog-api/internal/web/handler/country"
	"github.com/offering-catalog/catalog-api/internal/web/handler/logout"
	"github.com/offering-catalog/catalog-api/internal/web/handler/offering"
	"github.com/offering-catalog/catalog-api/internal/web/handler/pricing"
	"github.com/offering-catalog/catalog-api/internal/web/handler/product"
	"github.com/offering-catalog/catalog-api/internal/web/handler/staffing"
	"github.com/offering-catalog/catalog-api/internal/web/handler/wbs"
	authmw "github.com/offering-catalog/catalog-api/internal/web/middleware/auth"
)

const (
	// HealthPath answers load balancer probes.
	HealthPath = "/health"

	// MetricsPath exposes the Prometheus metrics.
	MetricsPath = "/metrics"
)

// Version is reported by the root route, set at build time.
var Version = "dev" //nolint:gochecknoglobals

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Info is the body of the root route.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so the health check returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates the web service and registers every route.
func New(deps handler.Deps) (*Service, error) {
	if !deps.Valid() {
		return nil, handler.ErrNotConfigured
	}

	cfg := deps.Cfg

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			UnescapePath:   true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{cfg: cfg, App: app}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log, CheckAliveURI: HealthPath}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Frontend.URL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey(cfg.Webserver.CookieEncryptionKey)}))

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.JSON(Info{Name: cfg.Title, Version: Version})
	})
	app.Get(HealthPath, service.health)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(cfg.Webserver.APIPrefix)

	// login flow, outside the session middleware
	public := []handler.Service{&oidchandler.Handler, &logout.Handler}
	for _, svc := range public {
		if err := svc.Init(api, deps); err != nil {
			return nil, err
		}
	}

	protected := api.Group("", authmw.New(deps.Sessions))

	services := []handler.Service{
		&country.Handler,
		&brand.Handler,
		&product.Handler,
		&offering.Handler,
		&activity.Handler,
		&staffing.Handler,
		&pricing.Handler,
		&wbs.Handler,
		&stats.Handler,
	}

	for _, svc := range services {
		if err := svc.Init(protected, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *Service) health(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "shutting down"})
	}

	return c.JSON(fiber.Map{"status": "healthy"})
}

// cookieKey returns the configured key or a random one, which does not survive a restart.
func cookieKey(configured string) string {
	if configured != "" {
		return configured
	}

	log.Warn().Msg("no cookie encryption key configured, sessions end with the process")

	return encryptcookie.GenerateKey()
}

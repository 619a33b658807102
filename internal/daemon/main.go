// Package daemon wires configuration, database, directory, identity provider and web service.
package daemon

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/offering-catalog/catalog-api/internal/auth"
	"github.com/offering-catalog/catalog-api/internal/config"
	"github.com/offering-catalog/catalog-api/internal/db/dsn"
	"github.com/offering-catalog/catalog-api/internal/db/models"
	"github.com/offering-catalog/catalog-api/internal/directory"
	"github.com/offering-catalog/catalog-api/internal/web"
	"github.com/offering-catalog/catalog-api/internal/web/handler"
	"github.com/offering-catalog/catalog-api/internal/web/session"
)

// sessionTable holds the session records in postgres and mysql.
const sessionTable = "sessions"

// ErrConfigNil is returned when New gets no configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it stops.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
}

// App exposes the fiber app, used by tests.
func (d *Daemon) App() *fiber.App {
	return d.webService.App
}

// New connects every collaborator described by cfg.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = seed(db); err != nil {
		return nil, err
	}

	oracle, err := directory.New(cfg.Directory, cfg.DevMode)
	if err != nil {
		return nil, err
	}

	if cfg.Directory.Static.AllowAll {
		log.Warn().Msg("dev mode: every user is member of every group")
	}

	resolver := auth.NewResolver(oracle, cfg.Directory.AdminGroup, cfg.Directory.SolutionArchitectGroup)

	sessions := session.NewStore(sessionStorage(cfg), session.Options{
		Expiry:   cfg.Webserver.Session.ExpiryTime,
		Secure:   !cfg.DevMode,
		SameSite: cfg.Webserver.Session.SameSite,
	})

	ws, err := web.New(handler.Deps{
		Cfg:      cfg,
		DB:       db,
		Gate:     auth.NewGate(resolver),
		Sessions: sessions,
		IdP:      auth.NewOIDCProvider(cfg.OIDC),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Str("directory", cfg.Directory.Kind).
		Str("prefix", cfg.Webserver.APIPrefix).
		Msg("daemon initialized")

	return &Daemon{cfg: cfg, db: db, webService: ws}, nil
}

// OpenDB opens the database of the configured gorm engine.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	source := dsn.Create(cfg)

	switch cfg.DB.GormEngine {
	case "postgres":
		dialector = gormpostgres.Open(source)
	case "mysql":
		dialector = gormmysql.Open(source)
	case "sqlite":
		dialector = sqlite.Open(source)
	default:
		return nil, config.ErrUnknownGormEngine
	}

	level := gormlogger.Warn
	if cfg.DevMode {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if cfg.DB.GormEngine == "sqlite" {
		// each connection to a memory database is a database of its own
		sqlDB, errDB := db.DB()
		if errDB != nil {
			return nil, errDB
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// sessionStorage keeps sessions next to the catalog, sqlite deployments keep them in memory.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case "postgres":
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.SessionURI(cfg),
			Table:         sessionTable,
		})
	case "mysql":
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.SessionURI(cfg),
			Table:         sessionTable,
		})
	default:
		log.Warn().Msg("sessions are kept in memory and end with the process")

		return session.NewMemoryStorage()
	}
}

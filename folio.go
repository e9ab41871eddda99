// Package folio is the JSON API behind a photography portfolio and blog.
// It serves the public gallery, blog and about page, and a bearer-token
// protected admin surface for uploading photos and editing posts.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/eringen/folio/auth"
	"github.com/eringen/folio/media"
)

// App wires together the store, cache, media store, token issuer and the
// echo server.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *ContentCache
	Media  media.Store
	Tokens *auth.TokenIssuer
	Log    *logrus.Logger

	loginLimiter *LoginLimiter
	now          func() time.Time
	initialized  bool
}

// New creates an App with the given configuration. Call Init (or Start) to
// open the database and register routes.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Log == nil {
		a.Log = newLogger(cfg)
	}
	return a
}

// Init opens the store and media backend, seeds defaults, and registers
// middleware and routes. It is safe to call more than once.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	tokens, err := auth.NewTokenIssuer(a.Config.JWTSecret, a.Config.TokenTTL)
	if err != nil {
		return fmt.Errorf("folio: %w", err)
	}
	a.Tokens = tokens

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	if a.Media == nil {
		m, err := newMediaStore(a.Config)
		if err != nil {
			return fmt.Errorf("folio: init media: %w", err)
		}
		a.Media = m
	}

	seeded, err := a.Store.SeedCategories(defaultCategories)
	if err != nil {
		return fmt.Errorf("folio: seed categories: %w", err)
	}
	if seeded {
		a.Log.WithField("count", len(defaultCategories)).Info("created default categories")
	}
	if err := a.bootstrapAdmin(); err != nil {
		return fmt.Errorf("folio: bootstrap admin: %w", err)
	}

	a.Cache = NewContentCache(a.Store, a.Config.CacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	a.initialized = true
	return nil
}

func newMediaStore(cfg Config) (media.Store, error) {
	switch cfg.MediaDriver {
	case media.DriverCloudinary:
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			return nil, errors.New("cloudinary driver needs cloud name, api key and api secret")
		}
		return media.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	default:
		return media.NewLocal(cfg.UploadDir, cfg.UploadURL)
	}
}

// bootstrapAdmin creates the configured admin account if it does not exist
// yet. An existing account keeps its password.
func (a *App) bootstrapAdmin() error {
	if a.Config.AdminUsername == "" || a.Config.AdminPassword == "" {
		n, err := a.Store.CountAdmins()
		if err != nil {
			return err
		}
		if n == 0 {
			a.Log.Warn("no admin accounts: set admin_username and admin_password or run `folio admin set-password`")
		}
		return nil
	}
	if _, err := a.Store.GetAdmin(a.Config.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(a.Config.AdminPassword)
	if err != nil {
		return err
	}
	created, err := a.Store.CreateAdmin(Admin{
		Username:     a.Config.AdminUsername,
		PasswordHash: hash,
		CreatedAt:    formatTime(a.now()),
	})
	if err != nil {
		return err
	}
	if created {
		a.Log.WithField("username", a.Config.AdminUsername).Info("created admin account")
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	if local, ok := a.Media.(*media.Local); ok {
		e.Static(a.Config.UploadURL, local.Dir())
	}
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	api := e.Group("/api")

	// Public
	api.GET("/health", a.handleHealth)
	api.POST("/login", a.handleLogin)
	api.GET("/categories", a.handleListCategories)
	api.GET("/photos", a.handleListPhotos)
	api.GET("/posts", a.handleListPosts)
	api.GET("/posts/:slug", a.handleGetPost)
	api.GET("/about", a.handleGetAbout)

	// Admin
	api.POST("/categories", a.handleCreateCategory, a.requireAuth)
	api.POST("/upload", a.handleUpload, a.requireAuth)
	api.DELETE("/photos", a.handleDeletePhoto, a.requireAuth)
	api.POST("/posts", a.handleCreatePost, a.requireAuth)
	api.PUT("/posts", a.handleUpdatePost, a.requireAuth)
	api.DELETE("/posts", a.handleDeletePost, a.requireAuth)
	api.POST("/about", a.handleSaveAbout, a.requireAuth)
}

// Start initializes the app and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Log.WithFields(logrus.Fields{
		"addr":  a.Config.Addr,
		"media": a.Media.Name(),
		"db":    a.Config.DatabasePath,
	}).Info("server listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases the database and background workers.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

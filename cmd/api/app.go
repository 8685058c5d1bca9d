package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"geolocator/internal/config"
	"geolocator/internal/location"
	"geolocator/internal/providers"
	"geolocator/internal/providers/geoip"
	"geolocator/internal/providers/ipinfo"
	"geolocator/internal/providers/openstreetmap"
	"geolocator/internal/timezone"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	locationService location.Service
	timezoneService timezone.Service
	cfg             *config.Config
	closers         []io.Closer
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	httpOpts := providers.HTTPOptions{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
	}

	var closers []io.Closer
	var ipProvider location.IPLookupProvider
	switch strings.ToLower(cfg.Providers.IPBackend) {
	case config.IPBackendGeoIP:
		db, err := geoip.Open(cfg.Providers.GeoIPDatabase, logger)
		if err != nil {
			return nil, err
		}
		closers = append(closers, db)
		ipProvider = db
	default:
		ipProvider = ipinfo.NewClient(cfg.Providers.IPProviderURL, cfg.Providers.IPProviderToken, httpOpts, logger)
	}

	reverseProvider := openstreetmap.NewClient(cfg.Providers.ReverseGeocodeProviderURL, httpOpts, logger)

	// Initialize timezone service
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}

	app, err := newApp(cfg, logger, location.NewLocationService(reverseProvider, ipProvider, logger), tzSvc)
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}
	app.closers = closers

	logger.Info("application initialized",
		"ip_backend", cfg.Providers.IPBackend,
		"reverse_geocode_url", cfg.Providers.ReverseGeocodeProviderURL,
	)

	return app, nil
}

func newApp(cfg *config.Config, logger *slog.Logger, locationService location.Service, timezoneService timezone.Service) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// ClientIP only honours forwarding headers from these proxies
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Add middleware
	router.Use(gin.Recovery())

	app := &App{
		router:          router,
		logger:          logger,
		locationService: locationService,
		timezoneService: timezoneService,
		cfg:             cfg,
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
// Request contexts derive from ctx so in-flight resolutions are cancelled.
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     app.router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases provider resources
func (app *App) Close() error {
	return closeAll(app.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Package app wires the service together: flags, config file,
// logging, cache, HTTP server, and shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kglotfelty/lut-data-service/internal/api"
	"github.com/kglotfelty/lut-data-service/internal/cache"
	"github.com/kglotfelty/lut-data-service/internal/config"
	"github.com/kglotfelty/lut-data-service/ui"
)

func Run() {
	cfg := ParseCLI()

	logger := NewLogger(cfg.Debug)
	defer logger.Sync()

	locations, err := ParseConfigFile(cfg.ConfigFile)
	if err != nil {
		logger.Fatal("could not load config file",
			zap.String("config_file", cfg.ConfigFile),
			zap.Error(err),
		)
	}
	cfg.LocationDetails = locations

	if cfg.UseCache {
		SetupCache(logger, cfg.CacheLocation, cfg.CachePollingInterval, cfg.CacheMaxBytes)
	}

	lutapi := api.NewAPI(&cfg, logger)
	e := SetupServer(lutapi)

	address := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			logger.Info("shutting down the server", zap.Error(err))
		}
	}()

	// Wait for interrupt, then give in-flight requests 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
}

func ParseCLI() config.Config {
	cfg := config.Config{}
	pflag.StringVarP(&cfg.Host, "host", "i", "0.0.0.0", "Host where the server will run")
	pflag.IntVarP(&cfg.Port, "port", "p", 5055, "Port where the server will run")
	pflag.BoolVarP(&cfg.Debug, "debug", "d", false, "Whether or not to enable debug logging")
	pflag.StringVarP(&cfg.ConfigFile, "config", "c", "./ldsConfig.json", "Location of LDS config file")
	pflag.BoolVarP(&cfg.UseCache, "use-cache", "u", true, "Use the local file cache for remote color tables")
	pflag.StringVarP(&cfg.CacheLocation, "cache-location", "C", "./ldscache/", "Where the cache will be stored")
	pflag.IntVarP(&cfg.CachePollingInterval, "cache-polling-interval", "P", 60, "How often to check the cache (in seconds)")
	pflag.Int64VarP(&cfg.CacheMaxBytes, "cache-max-bytes", "m", 100000000, "How large to allow the cache to be")
	pflag.Parse()

	return cfg
}

// NewLogger builds the service logger; debug mode switches to the
// human-oriented development config.
func NewLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// ParseConfigFile reads the location details. viper handles both JSON
// and YAML, keyed off the file extension.
func ParseConfigFile(cfgfile string) ([]config.Location, error) {
	v := viper.New()
	v.SetConfigFile(cfgfile)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg.LocationDetails, nil
}

func SetupServer(a *api.API) *echo.Echo {
	e := echo.New()

	e.Debug = a.Cfg.Debug
	e.HideBanner = true

	// Setup Middleware
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Location and file routes
	e.GET("/lut/fs", a.GetFileLocations)
	e.GET("/lut/fs/:location", a.GetLUTList)
	e.GET("/lut/table/:location/*", a.GetTable)
	e.GET("/lut/sample/:location/*", a.GetSample)

	// Gradient routes
	e.GET("/lut/ramp", a.GetRamp)
	e.GET("/lut/colors", a.GetColorNames)

	// Statistics routes
	e.POST("/lut/boxwhisker", a.PostBoxWhisker)

	// LUT picker page
	pickerFS := http.FileServer(ui.GetFileSystem())
	e.GET("/ui/", echo.WrapHandler(http.StripPrefix("/ui/", pickerFS)))
	e.GET("/ui/*", echo.WrapHandler(http.StripPrefix("/ui/", pickerFS)))

	// Add Prometheus as middleware for metrics gathering
	p := prometheus.NewPrometheus("lut_data_service", nil)
	p.Use(e)

	return e
}

// SetupCache creates the cache directory and starts the background
// size check.
func SetupCache(logger *zap.Logger, cacheLocation string, cachePollingInterval int, cacheMaxBytes int64) {
	objectDir := filepath.Join(cacheLocation, cache.ObjectSubdir)
	if err := os.MkdirAll(objectDir, 0o755); err != nil {
		logger.Error("error creating cache directory",
			zap.String("path", objectDir),
			zap.Error(err),
		)
		return
	}
	go cache.Check(logger, objectDir, cachePollingInterval, cacheMaxBytes)
}

// Package api exposes the color-table service over HTTP for the
// plotting client.
package api

import (
	"go.uber.org/zap"

	"github.com/kglotfelty/lut-data-service/internal/cache"
	"github.com/kglotfelty/lut-data-service/internal/config"
	"github.com/kglotfelty/lut-data-service/internal/datasource"
)

type API struct {
	Cfg    *config.Config
	Cache  *cache.Cache
	Source *datasource.Source
	Logger *zap.Logger
}

func NewAPI(cfg *config.Config, logger *zap.Logger) *API {
	c := &cache.Cache{Location: cfg.CacheLocation}
	return &API{
		Cfg:    cfg,
		Cache:  c,
		Source: datasource.New(cfg, c, logger),
		Logger: logger,
	}
}

// Package datasource resolves color-table names against the
// configured locations: ordered local directories and minio buckets
// fronted by the local file cache.
package datasource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/kglotfelty/lut-data-service/internal/cache"
	"github.com/kglotfelty/lut-data-service/internal/config"
)

// Suffix of color-table files.
const LUTSuffix = ".lut"

// ErrNotFound reports that a table name resolved nowhere.
type ErrNotFound struct {
	Location string
	Name     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("could not find lookup table %q in location %q, maybe try the full name", e.Name, e.Location)
}

// Source holds everything needed to resolve and fetch tables.
type Source struct {
	Cfg    *config.Config
	Cache  *cache.Cache
	Logger *zap.Logger
}

func New(cfg *config.Config, c *cache.Cache, logger *zap.Logger) *Source {
	return &Source{Cfg: cfg, Cache: c, Logger: logger}
}

func (s *Source) location(name string) (config.Location, bool) {
	for i := range s.Cfg.LocationDetails {
		if s.Cfg.LocationDetails[i].LocationName == name {
			return s.Cfg.LocationDetails[i], true
		}
	}
	return config.Location{}, false
}

// OpenLUT opens the named color table within a configured location.
// The bare name is tried first, then name + ".lut"; first success
// wins, exhaustive failure is an ErrNotFound.
func (s *Source) OpenLUT(ctx context.Context, locationName, name string) (io.ReadCloser, error) {
	loc, ok := s.location(locationName)
	if !ok {
		return nil, fmt.Errorf("unknown location %q", locationName)
	}

	candidates := []string{name}
	if !strings.HasSuffix(name, LUTSuffix) {
		candidates = append(candidates, name+LUTSuffix)
	}

	switch loc.LocationType {
	case "localFile":
		for _, cand := range candidates {
			full := filepath.Join(loc.Path, cand)
			file, err := os.Open(full)
			if err == nil {
				s.Logger.Info("reading local color table",
					zap.String("location_name", locationName),
					zap.String("path", full),
				)
				return file, nil
			}
		}
		return nil, &ErrNotFound{Location: locationName, Name: name}
	case "minio":
		for _, cand := range candidates {
			rc, err := s.openMinio(ctx, loc, cand)
			if err == nil {
				return rc, nil
			}
			s.Logger.Debug("minio candidate missed",
				zap.String("object", cand),
				zap.Error(err),
			)
		}
		return nil, &ErrNotFound{Location: locationName, Name: name}
	default:
		return nil, fmt.Errorf("unsupported location type %q", loc.LocationType)
	}
}

// openMinio fetches one object, by way of the local cache.
func (s *Source) openMinio(ctx context.Context, loc config.Location, object string) (io.ReadCloser, error) {
	key := cache.KeyFromPath(filepath.Join(loc.MinioBucket, object))
	if file, err := s.Cache.GetItem(key, cache.ObjectSubdir); err == nil {
		return file, nil
	}

	start := time.Now()
	client, err := minio.New(loc.Location, &minio.Options{
		Creds:  credentials.NewStaticV4(loc.MinioAccessKey, loc.MinioSecretKey, ""),
		Secure: loc.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error establishing connection to minio: %w", err)
	}

	obj, err := client.GetObject(ctx, loc.MinioBucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("fetched color table from minio",
		zap.String("bucket", loc.MinioBucket),
		zap.String("object", object),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := s.Cache.PutItem(key, cache.ObjectSubdir, data); err != nil {
		s.Logger.Warn("could not cache minio object", zap.Error(err))
	}
	return s.Cache.GetItem(key, cache.ObjectSubdir)
}

// ListLUTs names every color table available in a location, sorted.
func (s *Source) ListLUTs(ctx context.Context, locationName string) ([]string, error) {
	loc, ok := s.location(locationName)
	if !ok {
		return nil, fmt.Errorf("unknown location %q", locationName)
	}

	var names []string
	switch loc.LocationType {
	case "localFile":
		entries, err := os.ReadDir(loc.Path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), LUTSuffix) {
				continue
			}
			names = append(names, strings.TrimSuffix(entry.Name(), LUTSuffix))
		}
	case "minio":
		client, err := minio.New(loc.Location, &minio.Options{
			Creds:  credentials.NewStaticV4(loc.MinioAccessKey, loc.MinioSecretKey, ""),
			Secure: loc.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		for obj := range client.ListObjects(ctx, loc.MinioBucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				return nil, obj.Err
			}
			if strings.HasSuffix(obj.Key, LUTSuffix) {
				names = append(names, strings.TrimSuffix(obj.Key, LUTSuffix))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported location type %q", loc.LocationType)
	}
	sort.Strings(names)
	return names, nil
}

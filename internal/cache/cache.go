// Package cache is a size-bounded local file cache for color tables
// fetched from remote locations.
package cache

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Subdirectory of the cache location that holds fetched objects.
const ObjectSubdir = "objects"

type Cache struct {
	Location string
}

// KeyFromPath flattens a bucket-qualified object path into a single
// cache file name.
func KeyFromPath(path string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "?", "_", "&", "", "=", "")
	return replacer.Replace(path)
}

// GetItem opens a cached file. The returned error is the os.Open
// error, so a miss shows up as fs.ErrNotExist.
func (c *Cache) GetItem(key string, subDir string) (*os.File, error) {
	return os.Open(filepath.Join(c.Location, subDir, key))
}

// PutItem writes data into the cache, creating the subdirectory as
// needed.
func (c *Cache) PutItem(key string, subDir string, data []byte) error {
	dir := filepath.Join(c.Location, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, key), data, 0o644)
}

// Check runs forever, polling the cache directory every
// checkInterval seconds and removing the oldest file whenever the
// total size exceeds maxBytes. Run it in its own goroutine.
func Check(logger *zap.Logger, cachePath string, checkInterval int, maxBytes int64) {
	for {
		entries, err := os.ReadDir(cachePath)
		if err != nil {
			logger.Warn("cache check failed", zap.String("path", cachePath), zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		var currentBytes int64
		var oldest os.FileInfo
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			currentBytes += info.Size()
			if oldest == nil || info.ModTime().Before(oldest.ModTime()) {
				oldest = info
			}
		}

		if currentBytes > maxBytes && oldest != nil {
			logger.Info("cache over maximum, removing oldest file",
				zap.String("file", oldest.Name()),
				zap.Int64("current_bytes", currentBytes),
				zap.Int64("max_bytes", maxBytes),
			)
			if err := os.Remove(filepath.Join(cachePath, oldest.Name())); err != nil {
				logger.Error("error removing cache file", zap.Error(err))
			}
			// Re-check immediately in case one eviction was not enough.
			continue
		}

		time.Sleep(time.Duration(checkInterval) * time.Second)
	}
}

package app_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kglotfelty/lut-data-service/internal/api"
	"github.com/kglotfelty/lut-data-service/internal/app"
	"github.com/kglotfelty/lut-data-service/internal/cache"
	"github.com/kglotfelty/lut-data-service/internal/config"
)

const testConfig = `{
	"locationDetails": [
		{
			"locationName": "TestDir",
			"locationType": "localFile",
			"path": "./luts/"
		},
		{
			"locationName": "TestMinio",
			"locationType": "minio",
			"location": "localhost:9000",
			"minioBucket": "luts",
			"minioAccessKey": "minioadmin",
			"minioSecretKey": "minioadmin",
			"minioUseSSL": false
		}
	]
}`

func TestParseConfigFile(t *testing.T) {
	cfgfile := filepath.Join(t.TempDir(), "ldsConfig.json")
	require.NoError(t, os.WriteFile(cfgfile, []byte(testConfig), 0o644))

	locations, err := app.ParseConfigFile(cfgfile)
	require.NoError(t, err)
	require.Len(t, locations, 2)

	assert.Equal(t, "TestDir", locations[0].LocationName)
	assert.Equal(t, "localFile", locations[0].LocationType)
	assert.Equal(t, "./luts/", locations[0].Path)

	assert.Equal(t, "TestMinio", locations[1].LocationName)
	assert.Equal(t, "minio", locations[1].LocationType)
	assert.Equal(t, "luts", locations[1].MinioBucket)
	assert.False(t, locations[1].MinioUseSSL)
}

func TestParseConfigFileMissing(t *testing.T) {
	_, err := app.ParseConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestSetupServerRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gray.lut"), []byte("0 0 0\n1 1 1\n"), 0o644))

	cfg := &config.Config{
		CacheLocation: t.TempDir(),
		LocationDetails: []config.Location{
			{LocationName: "TestDir", LocationType: "localFile", Path: dir},
		},
	}
	e := app.SetupServer(api.NewAPI(cfg, zap.NewNop()))

	cases := []struct {
		path string
		want int
	}{
		{"/lut/fs", http.StatusOK},
		{"/lut/fs/TestDir", http.StatusOK},
		{"/lut/table/TestDir/gray", http.StatusOK},
		{"/lut/sample/TestDir/gray?num=2", http.StatusOK},
		{"/lut/ramp?colors=red,blue&num=4", http.StatusOK},
		{"/lut/colors", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/lut/table/TestDir/missing", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, tc.path)
	}
}

func TestSetupCache(t *testing.T) {
	logger := zap.NewNop()
	location := filepath.Join(t.TempDir(), "ldscache")
	app.SetupCache(logger, location, 60, 1000000)

	info, err := os.Stat(filepath.Join(location, cache.ObjectSubdir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

package datasource_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kglotfelty/lut-data-service/internal/cache"
	"github.com/kglotfelty/lut-data-service/internal/config"
	"github.com/kglotfelty/lut-data-service/internal/datasource"
)

func localSource(t *testing.T) (*datasource.Source, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		LocationDetails: []config.Location{
			{LocationName: "TestDir", LocationType: "localFile", Path: dir},
			{LocationName: "Broken", LocationType: "carrierpigeon"},
		},
	}
	c := &cache.Cache{Location: t.TempDir()}
	return datasource.New(cfg, c, zap.NewNop()), dir
}

func writeLUT(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenLUTLocal(t *testing.T) {
	src, dir := localSource(t)
	writeLUT(t, dir, "gray.lut", "0 0 0\n1 1 1\n")

	// Both the bare name and the suffixed name resolve.
	for _, name := range []string{"gray", "gray.lut"} {
		rc, err := src.OpenLUT(context.Background(), "TestDir", name)
		if err != nil {
			t.Fatalf("OpenLUT(%q): %v", name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "0 0 0\n1 1 1\n" {
			t.Errorf("OpenLUT(%q) returned %q", name, data)
		}
	}
}

func TestOpenLUTNotFound(t *testing.T) {
	src, _ := localSource(t)
	_, err := src.OpenLUT(context.Background(), "TestDir", "nope")
	var nf *datasource.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if nf.Name != "nope" || nf.Location != "TestDir" {
		t.Errorf("ErrNotFound carries %q in %q", nf.Name, nf.Location)
	}
}

func TestOpenLUTUnknownLocation(t *testing.T) {
	src, _ := localSource(t)
	if _, err := src.OpenLUT(context.Background(), "Nowhere", "gray"); err == nil {
		t.Error("unknown location should fail")
	}
	var nf *datasource.ErrNotFound
	_, err := src.OpenLUT(context.Background(), "Nowhere", "gray")
	if errors.As(err, &nf) {
		t.Error("unknown location is a config error, not a lookup miss")
	}
}

func TestOpenLUTUnsupportedType(t *testing.T) {
	src, _ := localSource(t)
	if _, err := src.OpenLUT(context.Background(), "Broken", "gray"); err == nil {
		t.Error("unsupported location type should fail")
	}
}

func TestListLUTs(t *testing.T) {
	src, dir := localSource(t)
	writeLUT(t, dir, "zebra.lut", "0 0 0\n")
	writeLUT(t, dir, "autumn.lut", "0 0 0\n")
	writeLUT(t, dir, "notes.txt", "not a table")
	if err := os.Mkdir(filepath.Join(dir, "sub.lut"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := src.ListLUTs(context.Background(), "TestDir")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "autumn" || names[1] != "zebra" {
		t.Errorf("expected sorted table names without suffixes, got %v", names)
	}
}

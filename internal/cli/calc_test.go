package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ybensalah/mawarith/internal/engine"
	"github.com/ybensalah/mawarith/internal/model"
	"github.com/ybensalah/mawarith/internal/tree"
)

func TestBuildConfig_ResolvesCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	if !cfg.Cache.Enabled {
		t.Fatal("cache must be enabled by default")
	}
	want := filepath.Join(home, ".mawarith", "cache")
	if cfg.Cache.Dir != want {
		t.Errorf("cache dir %q, want %q", cfg.Cache.Dir, want)
	}
}

func TestBuildConfig_DefaultRunPersistsDivision(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	tr := tree.New()
	d, err := tr.AddPerson("Omar", model.SexMale, true)
	if err != nil {
		t.Fatal(err)
	}
	son, err := tr.AddPerson("Khalid", model.SexMale, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.AddRelationship(d, son, model.RelParent); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetDeceased(d); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.New(cfg).Divide(context.Background(), tr); err != nil {
		t.Fatalf("divide: %v", err)
	}

	// The division must survive the run on disk
	entries, err := os.ReadDir(cfg.Cache.Dir)
	if err != nil {
		t.Fatalf("cache dir unreadable after default run: %v", err)
	}
	cached := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".cache") {
			cached++
		}
	}
	if cached == 0 {
		t.Error("default-config run left no cached division on disk")
	}
}

func TestBuildConfig_NoCacheSkipsResolution(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	noCache = true
	defer func() { noCache = false }()

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("--no-cache must disable the cache")
	}
	if cfg.Cache.Dir != "" {
		t.Errorf("disabled cache should not resolve a dir, got %q", cfg.Cache.Dir)
	}
}

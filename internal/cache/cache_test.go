package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ybensalah/mawarith/internal/model"
)

func TestDivisionKey(t *testing.T) {
	a := DivisionKey("fp1", "standard")
	if a != DivisionKey("fp1", "standard") {
		t.Error("key must be deterministic")
	}
	if a == DivisionKey("fp2", "standard") {
		t.Error("different fingerprints must produce different keys")
	}
	if a == DivisionKey("fp1", "hanafi") {
		t.Error("different doctrines must produce different keys")
	}
	if !strings.HasPrefix(a, "mawarith:v1:") {
		t.Errorf("key missing version prefix: %s", a)
	}
}

func TestEncodeDecodeDivision(t *testing.T) {
	d := &model.EstateDivision{
		Doctrine:   "standard",
		AwlApplied: true,
		Entries: []model.ShareEntry{
			{PersonID: "h", Name: "Omar", Category: model.CategoryHusband, Fraction: model.NewFraction(3, 7), Kind: model.ShareFixed},
		},
		Exclusions: []model.Exclusion{
			{Excluded: model.CategoryGrandson, By: model.CategorySon, Condition: "always"},
		},
	}

	data, err := EncodeDivision(d)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeDivision(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Doctrine != "standard" || !got.AwlApplied {
		t.Error("metadata lost in round trip")
	}
	if len(got.Entries) != 1 || !got.Entries[0].Fraction.Equal(model.NewFraction(3, 7)) {
		t.Errorf("entries lost in round trip: %+v", got.Entries)
	}
	if len(got.Exclusions) != 1 || got.Exclusions[0].By != model.CategorySon {
		t.Errorf("exclusions lost in round trip: %+v", got.Exclusions)
	}
}

func TestDecodeDivision_Corrupt(t *testing.T) {
	if _, err := DecodeDivision([]byte("not json")); err == nil {
		t.Error("expected error for corrupt payload")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit on empty cache")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("get after set: found=%v val=%q", found, val)
	}

	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("hit after delete")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	key := DivisionKey("fp", "standard")
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A second cache over the same dir sees the entry
	if val, found := NewDiskCache(dir, time.Hour).Get(key); !found || string(val) != "payload" {
		t.Errorf("get across instances: found=%v val=%q", found, val)
	}

	// No torn temp file left behind
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	c.Delete(key)
	if _, found := c.Get(key); found {
		t.Error("hit after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry must be a miss")
	}
}

func TestDiskCache_CorruptEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	path := filepath.Join(dir, "bad.cache")
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, found := c.Get("bad"); found {
		t.Error("corrupt entry must be a miss")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry must be removed")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed only the disk layer, then read through a fresh layered cache
	if err := NewDiskCache(dir, time.Hour).Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Fatalf("layered get: found=%v val=%q", found, val)
	}

	// After promotion the entry survives losing the disk layer
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); !found {
		t.Error("promoted entry must be served from memory")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	if val, found := NewDiskCache(dir, time.Hour).Get("k"); !found || string(val) != "v" {
		t.Errorf("disk layer missing entry: found=%v val=%q", found, val)
	}

	c.Clear()
	if _, found := c.Get("k"); found {
		t.Error("hit after clear")
	}
}

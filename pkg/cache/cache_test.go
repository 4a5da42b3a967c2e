package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/causalid/pkg/observability"
	"github.com/matzehuels/causalid/pkg/smcm"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestModelHash(t *testing.T) {
	g := smcm.MustNew([][]int{{0, 1}, {-1, 0}})
	h1 := ModelHash(g, []string{"x", "y"})
	h2 := ModelHash(smcm.MustNew([][]int{{0, 1}, {-1, 0}}), []string{"x", "y"})
	if h1 != h2 {
		t.Error("ModelHash should depend only on matrix and labels")
	}
	if h1 == ModelHash(g, []string{"a", "b"}) {
		t.Error("ModelHash should change with labels")
	}
	if h1 == ModelHash(smcm.MustNew([][]int{{0, 2}, {-2, 0}}), []string{"x", "y"}) {
		t.Error("ModelHash should change with edge codes")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ik1 := k.IdentifyKey("hash123", IdentifyKeyOpts{X: 0, Hedge: "direct"})
	ik2 := k.IdentifyKey("hash123", IdentifyKeyOpts{X: 0, Hedge: "component"})
	if ik1 == ik2 {
		t.Error("Different IdentifyKeyOpts should produce different keys")
	}
	if ik1 != k.IdentifyKey("hash123", IdentifyKeyOpts{X: 0, Hedge: "direct"}) {
		t.Error("IdentifyKey should be deterministic")
	}
	if !strings.HasPrefix(ik1, "identify:") {
		t.Errorf("IdentifyKey unexpected: %s", ik1)
	}

	dk1 := k.DiagramKey("hash123", DiagramKeyOpts{Format: "svg", Highlight: -1})
	dk2 := k.DiagramKey("hash123", DiagramKeyOpts{Format: "png", Highlight: -1})
	if dk1 == dk2 {
		t.Error("Different DiagramKeyOpts should produce different keys")
	}
	if dk1 == k.DiagramKey("hash456", DiagramKeyOpts{Format: "svg", Highlight: -1}) {
		t.Error("Different model hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1.0.0:")

	key := scoped.IdentifyKey("hash", IdentifyKeyOpts{})
	if !strings.HasPrefix(key, "v1.0.0:identify:") {
		t.Errorf("ScopedKeyer IdentifyKey should be prefixed: %s", key)
	}
	if keyType(key) != "identify" {
		t.Errorf("keyType(%q) = %q, want identify", key, keyType(key))
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.DiagramKey("hash", DiagramKeyOpts{Format: "svg"})
	if !strings.HasPrefix(key, "prefix:diagram:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "identify:a"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "identify:a", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "identify:a")
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get = %q, %v, %v; want value, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "identify:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "identify:a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "identify:a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("Clear should keep the cache directory: %v", err)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir("causalid")
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "causalid") {
		t.Errorf("DefaultDir = %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = DefaultDir("causalid")
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if dir != filepath.Join(home, ".cache", "causalid") {
		t.Errorf("DefaultDir = %q, want under %s/.cache", dir, home)
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestInstrument(t *testing.T) {
	h := &countingHooks{}
	observability.SetCacheHooks(h)
	defer observability.Reset()

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := Instrument(fc)

	_, _, _ = c.Get(ctx, "identify:x")
	_ = c.Set(ctx, "identify:x", []byte("1"), 0)
	_, _, _ = c.Get(ctx, "identify:x")

	if h.misses != 1 || h.sets != 1 || h.hits != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d sets; want 1 each", h.hits, h.misses, h.sets)
	}
}

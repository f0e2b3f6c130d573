package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("Get on empty cache should miss")
	}
	if err := c.Set(ctx, "layout:abc", []byte(`{"nodes":[]}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit || string(data) != `{"nodes":[]}` {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed")
	}
}

func TestFileCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("{garbage"), 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v; want miss", hit, err)
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1, h2, h3 := Hash([]byte("hello")), Hash([]byte("hello")), Hash([]byte("world"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("snap1", LayoutKeyOpts{Options: "w180"})
	lk2 := k.LayoutKey("snap1", LayoutKeyOpts{Options: "w200"})
	lk3 := k.LayoutKey("snap2", LayoutKeyOpts{Options: "w180"})
	if lk1 == lk2 || lk1 == lk3 {
		t.Error("different inputs should produce different layout keys")
	}
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey = %q, want layout: prefix", lk1)
	}
	if lk1 != k.LayoutKey("snap1", LayoutKeyOpts{Options: "w180"}) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey(lk1, ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey(lk1, ArtifactKeyOpts{Format: "json"})
	if ak1 == ak2 || !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey = %q, %q", ak1, ak2)
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(nil, "tree:smith:")
	base := NewDefaultKeyer()

	if got, want := k.LayoutKey("h", LayoutKeyOpts{}), "tree:smith:"+base.LayoutKey("h", LayoutKeyOpts{}); got != want {
		t.Errorf("LayoutKey = %q, want %q", got, want)
	}
	if got := k.ArtifactKey("l", ArtifactKeyOpts{Format: "svg"}); !strings.HasPrefix(got, "tree:smith:artifact:") {
		t.Errorf("ArtifactKey = %q", got)
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "://nope"); err == nil {
		t.Error("NewRedisCache() expected error for malformed URL")
	}
}

func TestRedisCacheFromClient_CloseKeepsClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	c := NewRedisCacheFromClient(client)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("client closed by RedisCache.Close: %v", err)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	testEnv(t)
	t.Setenv("FAMILYTREE_CACHE_DIR", "/srv/familytree-cache")

	c := New(os.Stderr, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/familytree-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

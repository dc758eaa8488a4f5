package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ellemenno/loomtasks/internal/errors"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestResolveHome_Unset(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv("USERPROFILE", "")
	t.Setenv("home", "")

	_, err := ResolveHome()
	if err == nil {
		t.Skip("home resolved without HOME on this platform")
	}
	if !errors.Is(err, ErrHomeDirNotFound) {
		t.Errorf("unexpected error type: %v", err)
	}
}

func TestLoomLayout(t *testing.T) {
	home := filepath.FromSlash("/home/dev")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"loom dir", LoomDir(home), "/home/dev/.loom"},
		{"sdks dir", SDKsDir(home), "/home/dev/.loom/sdks"},
		{"global config", GlobalConfigFile(home), "/home/dev/.loom/loom.config"},
		{"project config", ProjectConfigFile(filepath.FromSlash("/src/lib")), "/src/lib/loom.config"},
		{"project settings", ProjectSettingsPath(filepath.FromSlash("/src/lib")), "/src/lib/.loomtasks.yml"},
		{"main binary", MainBinary(filepath.FromSlash("/src/lib")), "/src/lib/bin/Main.loom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if want := filepath.FromSlash(tt.want); tt.got != want {
				t.Errorf("got %q, want %q", tt.got, want)
			}
		})
	}
}

func TestAppConfigDir(t *testing.T) {
	got := AppConfigDir()
	if !filepath.IsAbs(got) {
		t.Errorf("AppConfigDir() = %q, want absolute path", got)
	}
	if filepath.Base(got) != AppName {
		t.Errorf("AppConfigDir() = %q, want base %q", got, AppName)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

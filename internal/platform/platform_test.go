package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestName(t *testing.T) {
	tests := map[string]string{
		"windows": Windows,
		"linux":   Linux,
		"darwin":  Darwin,
		"freebsd": "Freebsd",
		"":        "",
	}
	for goos, want := range tests {
		if diff := cmp.Diff(want, Name(goos)); diff != "" {
			t.Errorf("Name(%q) mismatch (-want +got):\n%s", goos, diff)
		}
	}
}

func TestDetect(t *testing.T) {
	info := Detect()
	if info.PlatformName != Name(runtime.GOOS) {
		t.Errorf("PlatformName = %q, want %q", info.PlatformName, Name(runtime.GOOS))
	}
	wantOS := "posix"
	if runtime.GOOS == "windows" {
		wantOS = "nt"
	}
	if info.OSName != wantOS {
		t.Errorf("OSName = %q, want %q", info.OSName, wantOS)
	}
}

func TestIsVcpkgRoot(t *testing.T) {
	dir := t.TempDir()
	if IsVcpkgRoot(dir, Windows) {
		t.Error("empty directory reported as vcpkg root")
	}

	if err := os.WriteFile(filepath.Join(dir, "vcpkg.exe"), nil, 0755); err != nil {
		t.Fatal(err)
	}
	if !IsVcpkgRoot(dir, Windows) {
		t.Error("directory with vcpkg.exe not reported as Windows vcpkg root")
	}
	if IsVcpkgRoot(dir, Linux) {
		t.Error("vcpkg.exe should not satisfy a Linux vcpkg root")
	}

	if err := os.Mkdir(filepath.Join(dir, "vcpkg"), 0755); err != nil {
		t.Fatal(err)
	}
	if IsVcpkgRoot(dir, Linux) {
		t.Error("a directory named vcpkg is not the executable")
	}
}

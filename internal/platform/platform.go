// Package platform detects the host operating system the way the cache records it.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform names stored under platform_name.
const (
	Windows = "Windows"
	Linux   = "Linux"
	Darwin  = "Darwin"
)

// Info describes the host as persisted in the settings cache.
type Info struct {
	OSName       string // "nt" or "posix"
	PlatformName string // "Windows", "Linux", "Darwin", ...
	Release      string // kernel or OS release, may be empty
}

// Detect inspects the running host.
func Detect() Info {
	return Info{
		OSName:       osName(runtime.GOOS),
		PlatformName: Name(runtime.GOOS),
		Release:      release(),
	}
}

func osName(goos string) string {
	if goos == "windows" {
		return "nt"
	}
	return "posix"
}

// Name maps a GOOS value to its display name.
func Name(goos string) string {
	switch goos {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	case "":
		return ""
	}
	return strings.ToUpper(goos[:1]) + goos[1:]
}

// VcpkgExecutable is the file that marks a vcpkg root directory.
func VcpkgExecutable(platformName string) string {
	if platformName == Windows {
		return "vcpkg.exe"
	}
	return "vcpkg"
}

// IsVcpkgRoot reports whether dir contains the vcpkg executable for platformName.
func IsVcpkgRoot(dir, platformName string) bool {
	info, err := os.Stat(filepath.Join(dir, VcpkgExecutable(platformName)))
	return err == nil && !info.IsDir()
}

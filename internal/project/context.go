// Package project derives the filesystem layout of the native project from the
// cached settings. A Context is computed per invocation and never persisted.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
)

// BuildType is the CMake configuration passed to --config.
type BuildType string

const (
	Debug   BuildType = "Debug"
	Release BuildType = "Release"
)

// DefaultBuildType is used when neither the cache nor the caller names one.
const DefaultBuildType = Debug

// ErrInvalidBuildType is returned for any build type other than Debug or Release.
var ErrInvalidBuildType = errors.New("invalid build type")

// ParseBuildType validates s. Matching is exact.
func ParseBuildType(s string) (BuildType, error) {
	switch BuildType(s) {
	case Debug, Release:
		return BuildType(s), nil
	}
	return "", fmt.Errorf("%w %q (want %s or %s)", ErrInvalidBuildType, s, Debug, Release)
}

// Layout holds the fixed directory naming conventions under the source root.
type Layout struct {
	SourceDir    string `yaml:"source_dir"`    // relative to the tool directory, or absolute
	BuildDir     string `yaml:"build_dir"`     // CMake binary tree
	BinarySuffix string `yaml:"binary_suffix"` // output dir is <BuildType>-<BinarySuffix>
	InstallDir   string `yaml:"install_dir"`   // install prefix root
}

// DefaultLayout matches a tool living in <source>/Tools.
func DefaultLayout() Layout {
	return Layout{
		SourceDir:    "..",
		BuildDir:     "build",
		BinarySuffix: "Build",
		InstallDir:   "Install",
	}
}

// WithDefaults fills empty fields from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	if l.SourceDir == "" {
		l.SourceDir = d.SourceDir
	}
	if l.BuildDir == "" {
		l.BuildDir = d.BuildDir
	}
	if l.BinarySuffix == "" {
		l.BinarySuffix = d.BinarySuffix
	}
	if l.InstallDir == "" {
		l.InstallDir = d.InstallDir
	}
	return l
}

// Inputs are the values a Context is derived from.
type Inputs struct {
	ToolDir   string
	Platform  string
	VcpkgRoot string
	BuildType string
	Layout    Layout
}

// Context is the resolved set of paths for one command invocation.
type Context struct {
	Platform      string
	BuildType     BuildType
	SourceDir     string
	BuildDir      string
	BinaryDir     string
	InstallRoot   string
	InstallDir    string
	ToolchainFile string
}

// NewContext resolves every path to an absolute one. An empty build type
// falls back to DefaultBuildType; any other invalid value is rejected.
func NewContext(in Inputs) (Context, error) {
	bt := DefaultBuildType
	if in.BuildType != "" {
		var err error
		if bt, err = ParseBuildType(in.BuildType); err != nil {
			return Context{}, err
		}
	}
	if in.Platform == "" {
		return Context{}, errors.New("platform is not set")
	}

	layout := in.Layout.WithDefaults()
	source := layout.SourceDir
	if !filepath.IsAbs(source) {
		source = filepath.Join(in.ToolDir, source)
	}
	source, err := filepath.Abs(source)
	if err != nil {
		return Context{}, fmt.Errorf("resolve source dir: %w", err)
	}

	ctx := Context{
		Platform:    in.Platform,
		BuildType:   bt,
		SourceDir:   source,
		BuildDir:    filepath.Join(source, layout.BuildDir),
		BinaryDir:   filepath.Join(source, string(bt)+"-"+layout.BinarySuffix),
		InstallRoot: filepath.Join(source, layout.InstallDir),
	}
	ctx.InstallDir = filepath.Join(ctx.InstallRoot, in.Platform, string(bt))

	if in.VcpkgRoot != "" {
		tc, err := filepath.Abs(ToolchainFile(in.VcpkgRoot))
		if err != nil {
			return Context{}, fmt.Errorf("resolve toolchain file: %w", err)
		}
		ctx.ToolchainFile = tc
	}
	return ctx, nil
}

// ToolchainFile is the vcpkg CMake toolchain under root.
func ToolchainFile(root string) string {
	return filepath.Join(root, "scripts", "buildsystems", "vcpkg.cmake")
}

// Package preset holds the named CMake generator/compiler combinations used to
// configure the project.
package preset

import (
	"errors"
	"fmt"
	"strings"

	"project-setup/internal/platform"
)

// Built-in preset names.
const (
	MSVC  = "nt/msvc"
	Clang = "unix/clang"
	GCC   = "unix/gcc"
)

// ErrUnknownPreset is returned when a name matches no registered preset.
var ErrUnknownPreset = errors.New("invalid build preset")

// Preset is a fixed combination of generator and compiler flags.
type Preset struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Generator   string   `yaml:"generator"`
	CCompiler   string   `yaml:"c_compiler"`
	CXXCompiler string   `yaml:"cxx_compiler"`
	Toolchain   bool     `yaml:"toolchain"`   // pass the vcpkg toolchain file
	Definitions []string `yaml:"definitions"` // extra NAME=VALUE cache entries
}

// Builtin returns the presets every installation knows.
func Builtin() []Preset {
	return []Preset{
		{
			Name:        MSVC,
			Description: "Windows, MSVC compiler",
			Generator:   "Visual Studio 17 2022",
			Toolchain:   true,
		},
		{
			Name:        Clang,
			Description: "Unix, Clang compiler",
			Generator:   "Ninja",
			CCompiler:   "clang",
			CXXCompiler: "clang++",
		},
		{
			Name:        GCC,
			Description: "Unix, GCC compiler",
			Generator:   "Ninja",
			CCompiler:   "gcc",
			CXXCompiler: "g++",
		},
	}
}

// Validate checks that p can produce a configure command.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset name is empty")
	}
	if strings.TrimSpace(p.Generator) == "" {
		return fmt.Errorf("preset %q: generator is empty", p.Name)
	}
	for _, d := range p.Definitions {
		name, _, ok := strings.Cut(d, "=")
		if !ok || name == "" {
			return fmt.Errorf("preset %q: definition %q is not NAME=VALUE", p.Name, d)
		}
	}
	return nil
}

// ConfigureArgs returns the cmake arguments for configuring source into build.
// The order is fixed: source, build, generator, toolchain, compilers, definitions.
// The toolchain flag is omitted when toolchainFile is empty.
func (p Preset) ConfigureArgs(source, build, toolchainFile string) []string {
	args := []string{
		"-S", source,
		"-B", build,
		"-G", p.Generator,
	}
	if p.Toolchain && toolchainFile != "" {
		args = append(args, "-DCMAKE_TOOLCHAIN_FILE="+toolchainFile)
	}
	if p.CCompiler != "" {
		args = append(args, "-DCMAKE_C_COMPILER="+p.CCompiler)
	}
	if p.CXXCompiler != "" {
		args = append(args, "-DCMAKE_CXX_COMPILER="+p.CXXCompiler)
	}
	for _, d := range p.Definitions {
		args = append(args, "-D"+d)
	}
	return args
}

// DefaultFor picks the preset used by the interactive configure entry.
func DefaultFor(platformName string) string {
	switch platformName {
	case platform.Windows:
		return MSVC
	case platform.Darwin:
		return Clang
	}
	return GCC
}

// Registry is an ordered set of presets keyed by name.
type Registry struct {
	presets []Preset
}

// NewRegistry starts from Builtin and applies extra in order. An extra preset
// whose name matches an existing one replaces it in place.
func NewRegistry(extra []Preset) (*Registry, error) {
	r := &Registry{presets: Builtin()}
	for _, p := range extra {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if i := r.index(p.Name); i >= 0 {
			r.presets[i] = p
			continue
		}
		r.presets = append(r.presets, p)
	}
	return r, nil
}

// Lookup returns the preset called name.
func (r *Registry) Lookup(name string) (Preset, error) {
	if i := r.index(name); i >= 0 {
		return r.presets[i], nil
	}
	return Preset{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownPreset, name, strings.Join(r.Names(), ", "))
}

// Names lists preset names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.presets))
	for i, p := range r.presets {
		names[i] = p.Name
	}
	return names
}

// All returns a copy of every preset in registry order.
func (r *Registry) All() []Preset {
	return append([]Preset(nil), r.presets...)
}

func (r *Registry) index(name string) int {
	for i, p := range r.presets {
		if p.Name == name {
			return i
		}
	}
	return -1
}

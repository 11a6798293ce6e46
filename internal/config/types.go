package config

import (
	"project-setup/internal/preset"
	"project-setup/internal/project"
)

// FileName is the optional configuration file kept next to the executable.
const FileName = "setup.yaml"

// Tools names the external executables the tool shells out to.
// Values may be bare names resolved through PATH or absolute paths.
type Tools struct {
	CMake string `yaml:"cmake"`
	Git   string `yaml:"git"`
}

// Config is the parsed setup.yaml. Every field is optional.
//
// Example:
//
//	layout:
//	  source_dir: ..
//	  build_dir: build
//	  install_dir: Install
//	default_preset: unix/clang
//	tools:
//	  cmake: /usr/local/bin/cmake
//	presets:
//	  - name: unix/clang-asan
//	    generator: Ninja
//	    c_compiler: clang
//	    cxx_compiler: clang++
//	    definitions: ["CMAKE_CXX_FLAGS=-fsanitize=address"]
type Config struct {
	Layout        project.Layout  `yaml:"layout"`
	DefaultPreset string          `yaml:"default_preset"`
	Tools         Tools           `yaml:"tools"`
	Presets       []preset.Preset `yaml:"presets"`
}

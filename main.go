package main

import (
	"project-setup/cmd" // CLI commands and execution logic
)

// main delegates to cmd.Execute, which parses arguments and dispatches.
//
// project-setup is the build helper for a native CMake project:
//   - Caches the detected platform, the vcpkg root and the build type in
//     options_cache.json next to the executable
//   - Configures the project with cmake using a named preset (generator and compilers)
//   - Builds and installs it into Install/<platform>/<build type>
//   - Cleans generated build and install trees with git clean after confirmation
//
// With no arguments it runs an interactive menu; every menu entry also has a
// subcommand and a root-level flag for scripted use.
func main() {
	cmd.Execute()
}

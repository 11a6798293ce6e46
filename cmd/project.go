package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"project-setup/internal/dispatch"
)

// projectCmd groups the cmake and git operations on the native project.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Configure, build, install or clean the CMake project",
}

var projectGenerateCmd = &cobra.Command{
	Use:   "generate <preset> <build-type>",
	Short: "Configure the project with a preset and store the build type",
	Long: `Configure the project with cmake.

Presets:
  nt/msvc     Windows, MSVC compiler
  unix/clang  Unix, Clang compiler
  unix/gcc    Unix, GCC compiler

Build types: Debug, Release`,
	Args: cobra.ArbitraryArgs,
	RunE: withArgs(cobra.ExactArgs(2), func(cmd *cobra.Command, args []string) error {
		return run(dispatch.Request{Op: dispatch.OpConfigure, Preset: args[0], BuildType: args[1]})
	}),
}

var projectBuildCmd = &cobra.Command{
	Use:   "build [build-type]",
	Short: "Build the configured project (Debug, Release)",
	Args:  cobra.ArbitraryArgs,
	RunE: withArgs(cobra.MaximumNArgs(1), func(cmd *cobra.Command, args []string) error {
		return run(dispatch.Request{Op: dispatch.OpBuild, BuildType: firstArg(args)})
	}),
}

var projectInstallCmd = &cobra.Command{
	Use:   "install [build-type]",
	Short: "Install the built project under Install/<platform>/<build-type>",
	Args:  cobra.ArbitraryArgs,
	RunE: withArgs(cobra.MaximumNArgs(1), func(cmd *cobra.Command, args []string) error {
		return run(dispatch.Request{Op: dispatch.OpInstall, BuildType: firstArg(args)})
	}),
}

var projectCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove untracked files from the build and install trees (asks first)",
	Args:  cobra.ArbitraryArgs,
	RunE: withArgs(cobra.NoArgs, func(cmd *cobra.Command, args []string) error {
		return run(dispatch.Request{Op: dispatch.OpClean})
	}),
}

// presetsCmd lists built-in and configured presets.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available configure presets",
	Args:  cobra.ArbitraryArgs,
	RunE: withArgs(cobra.NoArgs, func(cmd *cobra.Command, args []string) error {
		d, err := newDispatcher()
		if err != nil {
			return err
		}
		return printPresets(d)
	}),
}

func printPresets(d *dispatch.Dispatcher) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, p := range d.Presets().All() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Generator, p.Description)
	}
	return w.Flush()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	projectCmd.AddCommand(projectGenerateCmd)
	projectCmd.AddCommand(projectBuildCmd)
	projectCmd.AddCommand(projectInstallCmd)
	projectCmd.AddCommand(projectCleanCmd)
}

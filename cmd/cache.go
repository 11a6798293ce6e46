package cmd

import (
	"github.com/spf13/cobra"

	"project-setup/internal/dispatch"
)

// cacheCmd groups the settings cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and edit the settings cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print cache contents",
	Args:  cobra.ArbitraryArgs,
	RunE: withArgs(cobra.NoArgs, func(cmd *cobra.Command, args []string) error {
		return run(dispatch.Request{Op: dispatch.OpShowSettings})
	}),
}

var cacheEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a cache entry or recreate the cache",
	Args:  cobra.ArbitraryArgs,
	RunE: withArgs(cobra.NoArgs, func(cmd *cobra.Command, args []string) error {
		return run(dispatch.Request{Op: dispatch.OpEditSettings})
	}),
}

var cacheGenerateCmd = &cobra.Command{
	Use:   "generate [vcpkg-root]",
	Short: "Create the cache and run first setup",
	Long: `Create the cache if needed and record the platform.
With an argument the vcpkg root is stored without prompting; on Windows
without one you are asked for it.`,
	Args: cobra.ArbitraryArgs,
	RunE: withArgs(cobra.MaximumNArgs(1), func(cmd *cobra.Command, args []string) error {
		req := dispatch.Request{Op: dispatch.OpGenerateCache}
		if len(args) == 1 {
			req.VcpkgRoot = args[0]
		}
		return run(req)
	}),
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value cached under key",
	Args:  cobra.ArbitraryArgs,
	RunE: withArgs(cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error {
		return run(dispatch.Request{Op: dispatch.OpGetSetting, Key: args[0]})
	}),
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheEditCmd)
	cacheCmd.AddCommand(cacheGenerateCmd)
	cacheCmd.AddCommand(cacheGetCmd)
}

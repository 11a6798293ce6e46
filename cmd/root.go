package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"project-setup/internal/config"
	"project-setup/internal/dispatch"
	"project-setup/internal/logger"
	"project-setup/internal/prompt"
	"project-setup/internal/runner"
	"project-setup/internal/settings"
)

// debug enables debug logging via --debug.
var debug bool

// cachePath and configPath override the files kept next to the executable.
var (
	cachePath  string
	configPath string
)

// opFlags are the root-level aliases for each operation.
var opFlags operationFlags

// rootCmd with no arguments runs the interactive menu.
var rootCmd = &cobra.Command{
	Use:   "project-setup",
	Short: "Configure, build, install and clean the CMake project",
	Long: `project-setup caches a few build settings (platform, vcpkg root, build type)
in a JSON file next to the executable and drives cmake and git with them.

Run without arguments for the interactive menu.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		req, ok, err := opFlags.request(cmd.Flags(), args)
		if err != nil {
			logger.Warn("[WARN] %v\n", err)
			return cmd.Help()
		}
		if !ok && len(args) > 0 {
			return cmd.Help()
		}

		d, err := newDispatcher()
		if err != nil {
			return err
		}
		if !ok {
			return d.Menu()
		}
		return dispatch.Report(d.Run(req))
	},
}

// Execute runs the CLI. Only cache corruption and other failures of this
// tool exit non-zero; external tool failures are reported only.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "Path to the settings cache (default: "+settings.FileName+" next to the executable)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config (default: "+config.FileName+" next to the executable)")
	opFlags.register(rootCmd.Flags())

	// Unknown flags print help instead of failing.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		logger.Warn("[WARN] %v\n", err)
		return cmd.Help()
	})

	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(presetsCmd)
}

// withArgs checks positional arguments before running fn. A count mismatch
// prints the command's help and exits 0, like an unknown flag.
func withArgs(validate cobra.PositionalArgs, fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			logger.Warn("[WARN] %v\n", err)
			return cmd.Help()
		}
		return fn(cmd, args)
	}
}

// toolDir is the directory holding the executable; the source layout and the
// default cache and config paths are resolved against it.
func toolDir() (string, error) {
	path, err := settings.DefaultPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// newDispatcher wires the dispatcher to the real terminal, filesystem and processes.
func newDispatcher() (*dispatch.Dispatcher, error) {
	dir, err := toolDir()
	if err != nil {
		return nil, err
	}

	cfgFile := configPath
	if cfgFile == "" {
		cfgFile = filepath.Join(dir, config.FileName)
	}
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	cacheFile := cachePath
	if cacheFile == "" {
		cacheFile = filepath.Join(dir, settings.FileName)
	}
	logger.Debug("[DEBUG] Using cache %s and config %s\n", cacheFile, cfgFile)

	return dispatch.New(dispatch.Options{
		Store:   settings.New(cacheFile),
		Config:  cfg,
		ToolDir: dir,
		Runner:  runner.NewExec(),
		Prompt:  prompt.NewTerminal(os.Stdin, os.Stdout),
		Out:     os.Stdout,
	})
}

// run executes a single request the way every subcommand does.
func run(req dispatch.Request) error {
	d, err := newDispatcher()
	if err != nil {
		return err
	}
	return dispatch.Report(d.Run(req))
}

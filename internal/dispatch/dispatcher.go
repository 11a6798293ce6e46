package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"project-setup/internal/config"
	"project-setup/internal/logger"
	"project-setup/internal/platform"
	"project-setup/internal/preset"
	"project-setup/internal/project"
	"project-setup/internal/prompt"
	"project-setup/internal/runner"
	"project-setup/internal/settings"
)

// ErrAborted is returned when the user declines a confirmation.
var ErrAborted = errors.New("aborted by user")

// Values stored under first_setup.
const (
	firstSetupPending = "False"
	firstSetupDone    = "True"
)

// Options wire a Dispatcher to its collaborators.
type Options struct {
	Store   *settings.Store
	Config  config.Config
	ToolDir string // directory the source layout is resolved against
	Runner  runner.Runner
	Prompt  prompt.Prompter
	Out     io.Writer            // plain output (cache listings, menus); defaults to stdout
	Detect  func() platform.Info // defaults to platform.Detect
}

// Dispatcher executes operations sequentially against one settings cache.
type Dispatcher struct {
	store   *settings.Store
	cfg     config.Config
	planner Planner
	toolDir string
	run     runner.Runner
	prompt  prompt.Prompter
	out     io.Writer
	detect  func() platform.Info
}

// New builds a Dispatcher. It fails only when the configured presets are invalid.
func New(opts Options) (*Dispatcher, error) {
	reg, err := opts.Config.Registry()
	if err != nil {
		return nil, err
	}
	d := &Dispatcher{
		store:   opts.Store,
		cfg:     opts.Config,
		planner: Planner{Presets: reg, Tools: opts.Config.Tools},
		toolDir: opts.ToolDir,
		run:     opts.Runner,
		prompt:  opts.Prompt,
		out:     opts.Out,
		detect:  opts.Detect,
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	if d.detect == nil {
		d.detect = platform.Detect
	}
	return d, nil
}

// Presets returns the registry the dispatcher resolves preset names against.
func (d *Dispatcher) Presets() *preset.Registry {
	return d.planner.Presets
}

// Run executes one request to completion. User-supplied values are validated
// before anything is read, written or spawned.
func (d *Dispatcher) Run(req Request) error {
	logger.Debug("[DEBUG] Dispatching %s %+v\n", req.Op, req)
	if err := d.planner.Validate(req); err != nil {
		return err
	}

	switch req.Op {
	case OpExit:
		return nil
	case OpShowSettings:
		return d.ShowSettings()
	case OpEditSettings:
		return d.EditSettings()
	case OpGenerateCache:
		return d.GenerateCache(req.VcpkgRoot)
	case OpGetSetting:
		return d.GetSetting(req.Key)
	}
	if !req.Op.projectOp() {
		return fmt.Errorf("unsupported operation %s", req.Op)
	}
	return d.runProject(req)
}

func (d *Dispatcher) runProject(req Request) error {
	if err := d.Prepare(); err != nil {
		return err
	}
	ctx, err := d.Context(req.BuildType)
	if err != nil {
		return err
	}

	if req.Op == OpConfigure {
		if req.Preset == "" {
			req.Preset = d.defaultPreset(ctx.Platform)
			logger.Info("[INFO] Using preset %s\n", req.Preset)
		}
		if p, err := d.planner.Presets.Lookup(req.Preset); err == nil && p.Toolchain && ctx.ToolchainFile == "" {
			logger.Warn("[WARN] Preset %s expects a vcpkg toolchain but no vcpkg_root is cached\n", p.Name)
		}
	}

	plan, err := d.planner.Plan(ctx, req)
	if err != nil {
		return err
	}
	return d.execute(plan)
}

func (d *Dispatcher) defaultPreset(platformName string) string {
	if d.cfg.DefaultPreset != "" {
		return d.cfg.DefaultPreset
	}
	return preset.DefaultFor(platformName)
}

// execute applies plan in order: confirmation, directories, cache writes, commands.
// Every command is attempted once even if an earlier one failed.
func (d *Dispatcher) execute(plan Plan) error {
	if plan.Confirm != "" {
		logger.Warn("%s\n", plan.Confirm)
		ok, err := prompt.Confirm(d.prompt, "CONTINUE? (Y/N)\nEnter: ")
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if !ok {
			logger.Info("[INFO] Aborting.\n")
			return ErrAborted
		}
	}

	for _, dir := range plan.Mkdirs {
		logger.Debug("[DEBUG] Creating directory %s\n", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	// Cache writes wait until the directories exist.
	for _, e := range plan.Persist {
		if err := d.store.Set(e.Key, e.Value); err != nil {
			return err
		}
	}

	var errs []error
	for _, c := range plan.Commands {
		if err := d.run.Run(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Context derives the build context from the cache. A non-empty buildType
// overrides the cached one for this invocation only.
func (d *Dispatcher) Context(buildType string) (project.Context, error) {
	info, err := d.Platform()
	if err != nil {
		return project.Context{}, err
	}
	root, _, err := d.store.Get(settings.KeyVcpkgRoot)
	if err != nil {
		return project.Context{}, err
	}
	if buildType == "" {
		if buildType, _, err = d.store.Get(settings.KeyBuildType); err != nil {
			return project.Context{}, err
		}
	}

	ctx, err := project.NewContext(project.Inputs{
		ToolDir:   d.toolDir,
		Platform:  info.PlatformName,
		VcpkgRoot: root,
		BuildType: buildType,
		Layout:    d.cfg.Layout,
	})
	if err != nil {
		return project.Context{}, err
	}
	logger.Debug("[DEBUG] Build context: %+v\n", ctx)
	return ctx, nil
}

// ensureStore creates a missing cache and marks first setup as pending.
func (d *Dispatcher) ensureStore() error {
	existed, err := d.store.EnsureExists()
	if err != nil {
		return err
	}
	if !existed {
		return d.store.Set(settings.KeyFirstSetup, firstSetupPending)
	}
	return nil
}

// Prepare makes sure the cache exists and runs first setup while it is pending.
func (d *Dispatcher) Prepare() error {
	if err := d.ensureStore(); err != nil {
		return err
	}
	state, _, err := d.store.Get(settings.KeyFirstSetup)
	if err != nil {
		return err
	}
	if state == firstSetupPending {
		return d.FirstSetup("")
	}
	return nil
}

// GenerateCache creates the cache if needed and (re)runs first setup.
func (d *Dispatcher) GenerateCache(vcpkgRoot string) error {
	if err := d.ensureStore(); err != nil {
		return err
	}
	return d.FirstSetup(vcpkgRoot)
}

// FirstSetup records the platform and, when one is needed, the vcpkg root.
// A vcpkgRoot argument is stored as given (made absolute); otherwise Windows
// hosts are prompted until a directory containing vcpkg.exe is entered.
func (d *Dispatcher) FirstSetup(vcpkgRoot string) error {
	info, err := d.Platform()
	if err != nil {
		return err
	}

	switch {
	case vcpkgRoot != "":
		abs, err := filepath.Abs(vcpkgRoot)
		if err != nil {
			return fmt.Errorf("resolve vcpkg root: %w", err)
		}
		if err := d.store.Set(settings.KeyVcpkgRoot, abs); err != nil {
			return err
		}
		logger.Info("[INFO] VCPKG root set to %q.\n", abs)
	case info.PlatformName == platform.Windows:
		if err := d.askVcpkgRoot(info.PlatformName); err != nil {
			return err
		}
	}

	return d.store.Set(settings.KeyFirstSetup, firstSetupDone)
}

func (d *Dispatcher) askVcpkgRoot(platformName string) error {
	var root string
	for {
		answer, err := d.prompt.Ask("Enter VCPKG root: ")
		if err != nil {
			return fmt.Errorf("read vcpkg root: %w", err)
		}
		root = filepath.Clean(answer)
		if platform.IsVcpkgRoot(root, platformName) {
			break
		}
		logger.Warn("[WARN] Invalid path. Try again.\n")
	}

	if err := d.store.Set(settings.KeyVcpkgRoot, root); err != nil {
		return err
	}
	logger.Info("[INFO] VCPKG root set to %q.\n", root)
	fmt.Fprintf(d.out, "Additionally, you should set the following environment variables:\n"+
		"CMAKE_TOOLCHAIN_FILE=%s\nVCPKG_ROOT=%s\nVCPKG_DEFAULT_TRIPLET=x64-windows\n",
		project.ToolchainFile(root), root)
	return nil
}

// Platform returns the cached host description, detecting and caching it
// when any of its keys is missing.
func (d *Dispatcher) Platform() (platform.Info, error) {
	keys := []string{settings.KeyOSName, settings.KeyPlatformName, settings.KeyReleaseName}
	values := make([]string, len(keys))
	complete := true
	for i, k := range keys {
		v, ok, err := d.store.Get(k)
		if err != nil {
			return platform.Info{}, err
		}
		complete = complete && ok
		values[i] = v
	}
	if complete {
		return platform.Info{OSName: values[0], PlatformName: values[1], Release: values[2]}, nil
	}

	info := d.detect()
	fmt.Fprintf(d.out, "SYSTEM INFORMATION\nOS: %s, PLATFORM: %s, RELEASE: %s\n",
		info.OSName, info.PlatformName, info.Release)
	for i, v := range []string{info.OSName, info.PlatformName, info.Release} {
		if err := d.store.Set(keys[i], v); err != nil {
			return platform.Info{}, err
		}
	}
	return info, nil
}

// ShowSettings prints every cached entry in insertion order.
func (d *Dispatcher) ShowSettings() error {
	if err := d.ensureStore(); err != nil {
		return err
	}
	entries, err := d.store.List()
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, "Cache contents:")
	for _, e := range entries {
		fmt.Fprintf(d.out, "%s: %s\n", e.Key, e.Value)
	}
	return nil
}

// GetSetting prints the value cached under key.
func (d *Dispatcher) GetSetting(key string) error {
	if err := d.ensureStore(); err != nil {
		return err
	}
	v, ok, err := d.store.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("[WARN] %s is not set\n", key)
		return nil
	}
	fmt.Fprintln(d.out, v)
	return nil
}

// EditSettings shows the cache and runs the edit sub-menu once.
func (d *Dispatcher) EditSettings() error {
	if err := d.ShowSettings(); err != nil {
		return err
	}
	fmt.Fprint(d.out, EditMenu)
	answer, err := d.prompt.Ask("Enter: ")
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}

	action, err := ParseEditChoice(answer)
	if err != nil {
		return err
	}
	switch action {
	case EditEntry:
		return d.editEntry()
	case EditRecreate:
		if err := d.store.Reset(); err != nil {
			return err
		}
		if err := d.store.Set(settings.KeyFirstSetup, firstSetupPending); err != nil {
			return err
		}
		return d.FirstSetup("")
	}
	return nil
}

func (d *Dispatcher) editEntry() error {
	key, err := d.prompt.Ask("Enter key to edit ('0' to exit): ")
	if errors.Is(err, io.EOF) || key == "0" {
		return nil
	}
	if err != nil {
		return err
	}
	value, err := d.prompt.Ask("Enter new value: ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if key == settings.KeyBuildType {
		if _, err := project.ParseBuildType(value); err != nil {
			return err
		}
	}
	if err := d.store.Set(key, value); err != nil {
		return err
	}
	logger.Info("[INFO] Cache updated.\n")
	return nil
}

// Menu runs the interactive loop until the user exits or input ends.
// Only errors Report considers fatal end the loop.
func (d *Dispatcher) Menu() error {
	if err := d.Prepare(); err != nil {
		return err
	}
	for {
		fmt.Fprint(d.out, MainMenu)
		answer, err := d.prompt.Ask("Enter: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		op, err := ParseChoice(answer)
		if err != nil {
			logger.Warn("[WARN] %v\n", err)
			continue
		}
		if op == OpExit {
			return nil
		}
		if err := Report(d.Run(Request{Op: op})); err != nil {
			return err
		}
	}
}

// Report logs err and returns it only when it should end the process:
// validation errors, user aborts and external tool failures are reported
// and swallowed; cache corruption and I/O failures are returned.
func Report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAborted):
		return nil
	case IsLocal(err), runner.IsExternal(err):
		logger.Error("[ERROR] %v\n", err)
		return nil
	}
	return err
}
